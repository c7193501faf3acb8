// Package config resolves runtime settings from defaults, an optional TOML
// file under the user config directory, and POULTRYCTL_* environment
// variables, in that order.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the CLI needs to talk to the API and keep its
// local state.
type Config struct {
	APIBaseURL string `toml:"api_base_url" env:"API_BASE_URL, overwrite"`
	APIVersion string `toml:"api_version" env:"API_VERSION, overwrite"`
	DataDir    string `toml:"data_dir" env:"DATA_DIR, overwrite"`
	LogLevel   string `toml:"log_level" env:"LOG_LEVEL, overwrite"`
	LogPretty  bool   `toml:"log_pretty" env:"LOG_PRETTY, overwrite"`
}

// StorePath is the location of the local database.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "poultryctl.db")
}

// Load resolves the configuration. A missing config file is fine; a present
// but unparsable one is an error, since silently ignoring it would mask
// typos.
func Load(ctx context.Context) (*Config, error) {
	cfg := Config{
		APIBaseURL: "https://api.poultrypro.com",
		APIVersion: "v1",
		LogLevel:   "info",
	}

	path, err := configFilePath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decErr := toml.DecodeFile(path, &cfg); decErr != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, decErr)
			}
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper("POULTRYCTL_", envconfig.OsLookuper()),
	}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".local", "share", "poultryctl")
	}

	return &cfg, nil
}

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "poultryctl", "config.toml"), nil
}
