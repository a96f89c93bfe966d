// Package config resolves hortus configuration from the global config
// file and the process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries everything the vault and research client need at
// construction time. It is resolved once at startup and passed into
// constructors; core operations never consult the environment
// themselves.
type Config struct {
	VaultPath    string `yaml:"vault_path,omitempty"`
	GeminiAPIKey string `yaml:"gemini_api_key,omitempty"`
	GeminiModel  string `yaml:"gemini_model,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "hortus"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// DefaultVaultDir is the fallback vault directory under $HOME.
	DefaultVaultDir = ".hortus"
	// DefaultVaultFile is the vault database file name.
	DefaultVaultFile = "hortus.db"

	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	// EnvAPIKey is the environment fallback for the Gemini API key.
	// The config file is checked first.
	EnvAPIKey = "GEMINI_API_KEY"
	// EnvVaultPath overrides the configured vault database path.
	EnvVaultPath = "HORTUS_VAULT"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/hortus/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load resolves the effective configuration: the global config file
// first, then environment fallbacks, then defaults. A missing config
// file is not an error.
func Load() (*Config, error) {
	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// LoadFile reads a config file, returning an empty config when the
// file doesn't exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// applyFallbacks fills unset fields from the environment and defaults.
func (c *Config) applyFallbacks() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv(EnvAPIKey)
	}
	if c.GeminiModel == "" {
		c.GeminiModel = DefaultModel
	}
	if path := os.Getenv(EnvVaultPath); path != "" {
		c.VaultPath = path
	}
	if c.VaultPath == "" {
		c.VaultPath = DefaultVaultPath()
	}
	c.VaultPath = ExpandTilde(c.VaultPath)
}

// Save writes the config file, creating parent directories as needed.
// Only the file-backed fields are written; environment fallbacks are
// re-resolved on every Load.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultVaultPath returns ~/.hortus/hortus.db, or a relative path if
// the home directory can't be resolved.
func DefaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultVaultDir, DefaultVaultFile)
	}
	return filepath.Join(home, DefaultVaultDir, DefaultVaultFile)
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
