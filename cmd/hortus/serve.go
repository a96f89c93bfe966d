package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/research"
	"github.com/matsen/hortus/internal/server"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8086", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Run the JSON API server over the vault.

Routes:
  GET  /api/health
  GET  /api/plants           list (optional ?q= name filter)
  GET  /api/plants/:id
  POST /api/plants           direct insert
  POST /api/research         research, merge, persist
  GET  /api/export.csv

Research runs disabled (503) when no Gemini API key is configured.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	db, cfg := openVault()
	defer db.Close()

	var client *research.Client
	rc, err := research.NewClient(context.Background(), cfg)
	switch {
	case err == nil:
		client = rc
		defer client.Close()
	case errors.Is(err, research.ErrAPIKeyMissing):
		fmt.Fprintln(os.Stderr, "warning: no Gemini API key configured; research endpoints disabled")
	default:
		exitWithError(ExitError, "creating research client: %v", err)
	}

	srv := server.New(db, client)
	fmt.Fprintf(os.Stderr, "hortus serving on %s (vault: %s)\n", serveAddr, cfg.VaultPath)
	if err := srv.Router().Run(serveAddr); err != nil {
		exitWithError(ExitError, "server: %v", err)
	}
	return nil
}
