package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"multihost/internal/config"
	"multihost/internal/domain"
	"multihost/internal/loader"
)

var (
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "multihost",
	Short: "Run tests against a pool of remote hosts",
	Long: `multihost plans and runs tests that require specific remote host
topologies. Tests declare the domains and roles they need; the planner
matches each declaration against the configured inventory, skips what the
inventory cannot satisfy, and runs the rest with per-invocation role
fixtures and guaranteed teardown.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search standard locations)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "format", "f", "", "machine-readable output format (json or yaml)")
}

// loadConfig resolves the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, _, err := config.LoadFromPath(configPath)
		return cfg, err
	}

	cfg, path, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Using config: %s", path)
	}
	return cfg, nil
}

// loadInventory reads the inventory named by the configuration.
func loadInventory(cfg *config.Config) (*domain.Inventory, error) {
	inv, err := loader.LoadYAML(cfg.Inventory)
	if err != nil {
		return nil, fmt.Errorf("load inventory %q: %w", cfg.Inventory, err)
	}
	return inv, nil
}
