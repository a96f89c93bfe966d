package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the vault database",
	Long: `Initialize the vault database, creating the plants table.

Safe to run repeatedly; an existing vault is left untouched.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	db, cfg := openVault()
	defer db.Close()

	if humanOutput {
		fmt.Printf("Initialized vault at %s\n", cfg.VaultPath)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   cfg.VaultPath,
		})
	}
	return nil
}
