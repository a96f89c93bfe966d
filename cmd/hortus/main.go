// Package main provides the hortus CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/config"
	"github.com/matsen/hortus/internal/vault"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// vaultPath overrides the configured vault database path
var vaultPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hortus",
	Short: "Personal botanical specimen archive",
	Long: `hortus catalogs botanical specimens in a local SQLite vault.

Records can be entered directly or auto-populated by the research
command, which asks Gemini for climate, care, and herbal metadata and
stores the validated result. All commands output JSON by default;
use --human for human-readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for GEMINI_API_KEY)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Path to the vault database (default: configured vault_path)")
	rootCmd.Version = Version
}

// loadConfig resolves configuration, applying the --vault override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if vaultPath != "" {
		cfg.VaultPath = config.ExpandTilde(vaultPath)
	}
	return cfg, nil
}

// openVault opens the vault from resolved configuration, exiting on
// failure. Schema creation happens at open and is idempotent.
func openVault() (*vault.DB, *config.Config) {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if err := os.MkdirAll(vaultDir(cfg.VaultPath), 0755); err != nil {
		exitWithError(ExitError, "creating vault directory: %v", err)
	}

	db, err := vault.OpenDB(cfg.VaultPath)
	if err != nil {
		exitWithError(ExitError, "opening vault: %v", err)
	}
	return db, cfg
}
