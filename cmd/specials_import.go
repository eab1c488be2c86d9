package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kms.GO/config"
	specialService "kms.GO/service/special"
)

var (
	importFile string
	importMode string
)

var importCmd = &cobra.Command{
	Use:   "specials:import",
	Short: "Import specials from an xlsx or CSV file into the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open file: %v\n", err)
			return
		}
		defer f.Close()

		repo := config.NewStore()
		res, err := specialService.ImportSpecials(repo, f, specialService.ImportOptions{
			Mode:     specialService.ParseMode(importMode),
			Filename: importFile,
		})
		if err != nil {
			var vErr *specialService.ValidationError
			if errors.As(err, &vErr) {
				fmt.Printf("Validation failed, nothing imported (%d of %d rows OK):\n", vErr.ValidRows, vErr.TotalRows)
				for _, re := range vErr.RowErrors {
					for _, msg := range re.Errors {
						fmt.Printf("  row %d: %s\n", re.Row, msg)
					}
				}
				return
			}
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		fmt.Printf(`
=== Import Report ===
Rows:       %d
Created:    %d
Updated:    %d
Mode:       %s
Total time: %s
=====================
`, res.TotalRows, res.Created, res.Updated,
			specialService.ParseMode(importMode),
			res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "xlsx or CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().StringVar(&importMode, "mode", "append", "Import mode: append (upsert) or replace")
	rootCmd.AddCommand(importCmd)
}
