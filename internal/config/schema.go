package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultProbeTimeout   = 2 * time.Minute
)

// Config is the root configuration structure.
type Config struct {
	Version int `yaml:"version"`

	// Inventory is the path to the multihost inventory file.
	Inventory string `yaml:"inventory"`

	// ExactTopology restricts marks to topologies equal to the one the
	// inventory provides.
	ExactTopology bool `yaml:"exact_topology,omitempty"`

	Database DatabaseConfig `yaml:"database"`
	SSH      SSHConfig      `yaml:"ssh"`
	Probe    ProbeConfig    `yaml:"probe"`
}

// DatabaseConfig locates the run-history database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig holds transport defaults; per-host inventory credentials take
// precedence.
type SSHConfig struct {
	User           string   `yaml:"user"`
	Password       string   `yaml:"password,omitempty"`
	PrivateKeyPath string   `yaml:"private_key_path,omitempty"`
	Port           int      `yaml:"port"`
	ConnectTimeout Duration `yaml:"connect_timeout,omitempty"`
}

// PrivateKey reads the configured private key, or returns nil when none is
// configured.
func (s SSHConfig) PrivateKey() ([]byte, error) {
	if s.PrivateKeyPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return data, nil
}

// ProbeConfig controls the inventory preflight probe.
type ProbeConfig struct {
	// Port is the TCP port checked per host; the SSH port is used when
	// zero.
	Port    int      `yaml:"port,omitempty"`
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML parses duration strings like "30s" or "5m".
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML serializes durations in their string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration converts to the standard library type.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
