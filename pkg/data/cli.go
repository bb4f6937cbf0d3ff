// Package data provides configuration discovery for the command-line tool:
// locating the YAML config across the usual search paths and combining file,
// environment and flag precedence.
package data

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFile is the config filename looked up when none is given.
const DefaultConfigFile = "courtelo.yaml"

// ConfigSearchPaths returns possible configuration file locations in
// precedence order.
func ConfigSearchPaths(filename string) []string {
	paths := []string{filename}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "courtelo", filename))
		paths = append(paths, filepath.Join(homeDir, ".courtelo", filename))
	}

	paths = append(paths, filepath.Join("/etc", "courtelo", filename))

	return paths
}

// ResolveConfigPath finds the first existing config file for a possibly
// relative path. Absolute paths are returned as-is.
func ResolveConfigPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	for _, candidate := range ConfigSearchPaths(path) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// LoadForCLI loads the effective configuration for a CLI invocation:
// defaults, then the config file (if any), then environment overrides. A
// missing default config file is fine; a missing explicitly-requested one is
// an error.
func LoadForCLI(configPath string, noConfig bool) (*AppConfig, error) {
	if noConfig {
		config := DefaultAppConfig()
		applyEnvironmentOverrides(&config)
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return &config, nil
	}

	resolved := ResolveConfigPath(configPath)

	// A default config file is optional; an explicitly-requested one is not.
	if configPath != DefaultConfigFile {
		if _, err := os.Stat(resolved); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, resolved)
		}
	}

	return LoadWithEnvironment(resolved)
}

// CreateDefaultConfig writes a default configuration file at the specified
// path, creating parent directories as needed.
func CreateDefaultConfig(filePath string) error {
	config := DefaultAppConfig()

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.SaveToFile(filePath); err != nil {
		return fmt.Errorf("failed to create default config: %w", err)
	}

	return nil
}
