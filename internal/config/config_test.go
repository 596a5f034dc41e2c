package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPath(t *testing.T) {
	t.Run("loads values and applies defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "multihost.yaml")

		content := `
version: 1
inventory: /srv/mh/inventory.yaml
exact_topology: true
ssh:
  user: vagrant
  connect_timeout: 30s
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg, loaded, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loaded != path {
			t.Errorf("expected loaded path %q, got %q", path, loaded)
		}

		if cfg.Inventory != "/srv/mh/inventory.yaml" {
			t.Errorf("unexpected inventory path %q", cfg.Inventory)
		}
		if !cfg.ExactTopology {
			t.Error("expected exact_topology true")
		}
		if cfg.SSH.User != "vagrant" {
			t.Errorf("unexpected ssh user %q", cfg.SSH.User)
		}
		if cfg.SSH.ConnectTimeout.Duration() != 30*time.Second {
			t.Errorf("unexpected connect timeout %v", cfg.SSH.ConnectTimeout.Duration())
		}

		// Defaults fill the rest.
		if cfg.SSH.Port != 22 {
			t.Errorf("expected default port 22, got %d", cfg.SSH.Port)
		}
		if cfg.Database.Path == "" {
			t.Error("expected default database path")
		}
		if cfg.Probe.Timeout.Duration() != defaultProbeTimeout {
			t.Errorf("unexpected probe timeout %v", cfg.Probe.Timeout.Duration())
		}
	})

	t.Run("rejects invalid durations", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "multihost.yaml")
		if err := os.WriteFile(path, []byte("ssh:\n  connect_timeout: soon\n"), 0644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error for invalid duration")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.SSH.User = "admin"
	cfg.SSH.ConnectTimeout = Duration(45 * time.Second)

	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.SSH.User != "admin" {
		t.Errorf("unexpected user %q", loaded.SSH.User)
	}
	if loaded.SSH.ConnectTimeout.Duration() != 45*time.Second {
		t.Errorf("unexpected timeout %v", loaded.SSH.ConnectTimeout.Duration())
	}
}

func TestFindConfigPath(t *testing.T) {
	t.Run("environment variable wins", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "override.yaml")
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Setenv(EnvConfigPath, path)

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing override falls through", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		if got := FindConfigPath(); got != "" {
			t.Errorf("expected no config found, got %q", got)
		}
	})

	t.Run("xdg location is honored", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		path := filepath.Join(xdg, ConfigDirName, "config.yaml")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.SSH.User != "root" || cfg.SSH.Port != 22 {
		t.Errorf("unexpected ssh defaults: %+v", cfg.SSH)
	}
	if cfg.SSH.ConnectTimeout.Duration() != defaultConnectTimeout {
		t.Errorf("unexpected connect timeout %v", cfg.SSH.ConnectTimeout.Duration())
	}
}
