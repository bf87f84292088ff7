package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	env "github.com/caarlos0/env/v11"
)

const (
	// DirName is the per-project state directory, shared with the run ledger.
	DirName = ".crudgen"
	// FileName is the config file inside DirName.
	FileName = "config.json"
	// EnvPrefix prefixes every environment override, e.g. CRUDGEN_REGISTRY_MODE.
	EnvPrefix = "CRUDGEN_"
)

// Config represents the flat crudgen configuration.
// Precedence, lowest first: defaults, .crudgen/config.json, CRUDGEN_* environment, flags.
type Config struct {
	Version         string `json:"version"`
	TypedValidation bool   `json:"typed_validation" env:"TYPED_VALIDATION"` // per-type yup rules
	RegistryMode    string `json:"registry_mode" env:"REGISTRY_MODE"`       // "accumulate" or "replace"
	DisableLedger   bool   `json:"disable_ledger" env:"DISABLE_LEDGER"`     // skip recording runs
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Version:      "1.0",
		RegistryMode: "accumulate",
	}
}

// ConfigPath returns the config file location for a project root.
func ConfigPath(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// LoadConfig reads .crudgen/config.json from the specified directory on top of the defaults.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Resolve returns the effective configuration for a project root:
// defaults, then the config file if present, then environment overrides.
func Resolve(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays CRUDGEN_* environment variables onto cfg.
// Unset variables leave the current values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	stateDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(dir), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
