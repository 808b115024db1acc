// Package config provides configuration management for the slidecast CLI
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultServer is the control API address of a locally running daemon.
const DefaultServer = "http://127.0.0.1:8089"

// Config holds the CLI configuration
type Config struct {
	// Server is the player daemon's control API URL
	Server string `mapstructure:"server"`
}

// defaultConfigPath returns the default config file path
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scastctl/config.yaml"
	}
	return filepath.Join(home, ".scastctl/config.yaml")
}

// Load reads the CLI configuration. A missing file is not an error; the
// defaults apply. SCASTCTL_SERVER overrides the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("SCASTCTL_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}

	v := viper.New()
	v.SetDefault("server", DefaultServer)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if server := os.Getenv("SCASTCTL_SERVER"); server != "" {
		cfg.Server = server
	}

	return &cfg, nil
}
