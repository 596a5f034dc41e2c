// Package config provides configuration management for the multihost runner.
//
// The config file carries process-wide settings: where the inventory lives,
// how to reach the hosts, and where run history is stored. The inventory
// itself is loaded separately (see internal/loader) and is immutable for the
// lifetime of the process.
//
// Config file locations (priority order):
//  1. $MULTIHOST_CONFIG
//  2. ./multihost.yaml
//  3. ~/.config/multihost/config.yaml
//  4. /etc/multihost/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config search entirely.
	EnvConfigPath = "MULTIHOST_CONFIG"
	// ConfigFileName is the file looked up in the working directory.
	ConfigFileName = "multihost.yaml"
	// ConfigDirName is the directory used under XDG and /etc.
	ConfigDirName = "multihost"
)

// FindConfigPath returns the first existing config file, or "" when none is
// found. $MULTIHOST_CONFIG and the working directory win over the per-user
// and system-wide locations.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	candidates = append(candidates, filepath.Join("/etc", ConfigDirName, "config.yaml"))

	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load finds and loads the config file, or returns defaults if none found.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Inventory == "" {
		c.Inventory = "./multihost-inventory.yaml"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./multihost.db"
	}
	if c.SSH.User == "" {
		c.SSH.User = "root"
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 22
	}
	if c.SSH.ConnectTimeout == 0 {
		c.SSH.ConnectTimeout = Duration(defaultConnectTimeout)
	}
	if c.Probe.Timeout == 0 {
		c.Probe.Timeout = Duration(defaultProbeTimeout)
	}
}
