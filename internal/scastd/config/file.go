package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// allowedExtensions lists the allowed config file extensions
var allowedExtensions = []string{".yaml", ".yml"}

// Load returns the effective configuration: defaults, overlaid with the
// YAML file at path if path is non-empty, overlaid with environment
// variables, then validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.overlayEnv()

	return cfg, cfg.validate()
}

func readConfigFile(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	validExt := false
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(strings.ToLower(cleanPath), ext) {
			validExt = true
			break
		}
	}
	if !validExt {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension")
	}

	fi, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("config path must be a regular file")
	}

	// #nosec G304 -- path has been cleaned and checked above
	return os.ReadFile(cleanPath)
}
