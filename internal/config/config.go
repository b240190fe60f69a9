// Package config loads and saves the user-scoped settings file at
// ~/.qop/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig holds global settings from ~/.qop/config.yaml.
type GlobalConfig struct {
	// Provider overrides the built-in default provider.
	Provider string `yaml:"provider,omitempty"`
	// Device overrides the built-in default device.
	Device string `yaml:"device,omitempty"`
	// Tokens configures token storage.
	Tokens TokenConfig `yaml:"tokens,omitempty"`
	// LocalDB overrides the local backend's ledger path.
	LocalDB string `yaml:"local_db,omitempty"`
}

// TokenConfig holds token storage settings.
type TokenConfig struct {
	// Keeper selects the storage backend: "file" or "keyring".
	Keeper string `yaml:"keeper,omitempty"`
	// Path is the token file location for the file keeper.
	Path string `yaml:"path,omitempty"`
}

// DefaultGlobalConfig returns the default global configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Tokens: TokenConfig{
			Keeper: "file",
		},
	}
}

// LoadGlobal reads ~/.qop/config.yaml and applies environment overrides.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	if data, err := os.ReadFile(GlobalConfigPath()); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", GlobalConfigPath(), err)
		}
	}

	// Apply environment overrides
	if v := os.Getenv("QOP_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("QOP_DEVICE"); v != "" {
		cfg.Device = v
	}
	if v := os.Getenv("QOP_TOKEN_KEEPER"); v != "" {
		cfg.Tokens.Keeper = v
	}
	if v := os.Getenv("QOP_AUTH_PATH"); v != "" {
		cfg.Tokens.Path = v
	}
	if v := os.Getenv("QOP_LOCAL_DB"); v != "" {
		cfg.LocalDB = v
	}

	return cfg, nil
}

// SaveGlobal writes the configuration to ~/.qop/config.yaml.
func SaveGlobal(cfg *GlobalConfig) error {
	dir := GlobalConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(GlobalConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GlobalConfigDir returns the path to ~/.qop.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".qop")
	}
	return filepath.Join(homeDir, ".qop")
}

// GlobalConfigPath returns the path to ~/.qop/config.yaml.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}
