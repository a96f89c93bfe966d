package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/plant"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all archived specimens",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, _ := openVault()
	defer db.Close()

	plants, err := db.ReadAll()
	if plants == nil {
		plants = []plant.Plant{}
	}
	// A read failure degrades to an empty listing; the error is
	// reported but doesn't fail the command.
	if err != nil {
		warn("reading vault: %v", err)
	}

	outputPlants(plants, err)
	return nil
}

// outputPlants renders a listing in the selected output mode.
func outputPlants(plants []plant.Plant, readErr error) {
	if humanOutput {
		if len(plants) == 0 {
			fmt.Println("Archives empty.")
			return
		}
		for _, p := range plants {
			printPlantHuman(p)
			fmt.Println()
		}
		return
	}

	resp := ListResponse{Total: len(plants), Plants: plants}
	if readErr != nil {
		resp.Error = readErr.Error()
	}
	outputJSON(resp)
}
