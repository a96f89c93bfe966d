package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/export"
	"github.com/matsen/hortus/internal/plant"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write CSV to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vault as CSV",
	Long: `Export the full vault as CSV, one row per specimen.

Sequence fields (usda_zones, images, grounding_sources) are emitted
as JSON text cells.

Examples:
  hortus export > vault.csv
  hortus export -o vault.csv`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	db, _ := openVault()
	defer db.Close()

	plants, err := db.ReadAll()
	if plants == nil {
		plants = []plant.Plant{}
	}
	if err != nil {
		warn("reading vault: %v", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, plants); err != nil {
		exitWithError(ExitError, "writing csv: %v", err)
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", len(plants), exportOutput)
	}
	return nil
}
