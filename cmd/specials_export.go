package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kms.GO/config"
	specialService "kms.GO/service/special"
)

var (
	exportFile   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "specials:export",
	Short: "Export the specials catalog to xlsx, CSV or JSON",
	Run: func(cmd *cobra.Command, args []string) {
		repo := config.NewStore()
		specials, err := repo.ReadAll()
		if err != nil {
			fmt.Printf("Failed to read store: %v\n", err)
			return
		}

		var data []byte
		switch exportFormat {
		case "json":
			data, err = json.MarshalIndent(specials, "", "  ")
		default:
			var export *specialService.Export
			export, err = specialService.ExportSpecials(specials, specialService.ExportFormat(exportFormat))
			if export != nil {
				data = export.Data
			}
		}
		if err != nil {
			fmt.Printf("Export failed: %v\n", err)
			return
		}

		if err := os.WriteFile(exportFile, data, 0o644); err != nil {
			fmt.Printf("Failed to write %s: %v\n", exportFile, err)
			return
		}
		fmt.Printf("Exported %d specials to %s (%s)\n", len(specials), exportFile, exportFormat)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Output file path (required)")
	exportCmd.MarkFlagRequired("file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "Export format: xlsx, csv or json")
	rootCmd.AddCommand(exportCmd)
}
