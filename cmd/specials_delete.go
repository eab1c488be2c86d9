package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kms.GO/config"
)

var deleteConfirmed bool

var deleteAllCmd = &cobra.Command{
	Use:   "specials:delete-all",
	Short: "Delete every special from the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		if !deleteConfirmed {
			fmt.Println("Refusing to delete the catalog without --yes")
			return
		}
		repo := config.NewStore()
		count, err := repo.Count()
		if err != nil {
			fmt.Printf("Failed to read store: %v\n", err)
			return
		}
		if err := repo.DeleteAll(); err != nil {
			fmt.Printf("Delete failed: %v\n", err)
			return
		}
		fmt.Printf("Deleted %d specials\n", count)
	},
}

func init() {
	deleteAllCmd.Flags().BoolVar(&deleteConfirmed, "yes", false, "Confirm deletion of all specials")
	rootCmd.AddCommand(deleteAllCmd)
}
