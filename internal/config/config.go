package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultVaultPath  = "~/Documents/plans"
	DefaultCanvasPath = "Plan.canvas"
)

// Config holds the vault location and the canvas file, vault-relative.
type Config struct {
	Vault  string `toml:"vault"`
	Canvas string `toml:"canvas"`
}

// Load resolves the configuration: environment variables win over the
// config file, the config file wins over defaults.
func Load() (*Config, error) {
	cfg, err := LoadFrom(defaultConfigPath())
	if err != nil {
		return nil, err
	}

	if env := os.Getenv("PLANVAULT_VAULT"); env != "" {
		cfg.Vault = env
	}
	if env := os.Getenv("PLANVAULT_CANVAS"); env != "" {
		cfg.Canvas = env
	}
	return cfg, nil
}

// LoadFrom reads the config file at path, if present, on top of the
// defaults. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Vault:  DefaultVaultPath,
		Canvas: DefaultCanvasPath,
	}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planvault", "config.toml")
}
