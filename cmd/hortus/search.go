package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/plant"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search specimens by common or scientific name",
	Long: `Search specimens by common or scientific name.

Matching is case-insensitive substring matching over both name
columns.

Examples:
  hortus search aloe
  hortus search "nepenthes"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	db, _ := openVault()
	defer db.Close()

	plants, err := db.Search(args[0])
	if plants == nil {
		plants = []plant.Plant{}
	}
	if err != nil {
		warn("searching vault: %v", err)
	}

	outputPlants(plants, err)
	return nil
}
