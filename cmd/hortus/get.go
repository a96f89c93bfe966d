package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single specimen by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	db, _ := openVault()
	defer db.Close()

	p, err := db.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "reading plant: %v", err)
	}
	if p == nil {
		exitWithError(ExitError, "unknown id: %s", args[0])
	}

	if humanOutput {
		printPlantHuman(*p)
	} else {
		outputJSON(p)
	}
	return nil
}
