package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/hortus/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set global configuration",
	Long: `Get and set global configuration in ` + "`~/.config/hortus/config.yml`" + `.

Keys:
  vault_path       Path to the vault database
  gemini_api_key   Gemini API key (environment GEMINI_API_KEY is the fallback)
  gemini_model     Gemini model name`,
}

// ConfigResponse is the response for config get.
type ConfigResponse struct {
	Path         string `json:"path"`
	VaultPath    string `json:"vault_path,omitempty"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"`
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		fmt.Printf("config:          %s\n", config.GlobalConfigPath())
		fmt.Printf("vault_path:      %s\n", cfg.VaultPath)
		fmt.Printf("gemini_api_key:  %s\n", redactKey(cfg.GeminiAPIKey))
		fmt.Printf("gemini_model:    %s\n", cfg.GeminiModel)
	} else {
		outputJSON(ConfigResponse{
			Path:         config.GlobalConfigPath(),
			VaultPath:    cfg.VaultPath,
			GeminiAPIKey: redactKey(cfg.GeminiAPIKey),
			GeminiModel:  cfg.GeminiModel,
		})
	}
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Edit the raw file so env fallbacks and defaults don't get
	// baked into it.
	path := config.GlobalConfigPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "vault_path":
		cfg.VaultPath = value
	case "gemini_api_key":
		cfg.GeminiAPIKey = value
	case "gemini_model":
		cfg.GeminiModel = value
	default:
		exitWithError(ExitDataError, "unknown config key: %s", key)
	}

	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s\n", key)
	} else {
		displayed := value
		if key == "gemini_api_key" {
			displayed = redactKey(value)
		}
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: displayed})
	}
	return nil
}

// redactKey shows only the tail of a secret for identification.
func redactKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 4) + key[len(key)-4:]
}
