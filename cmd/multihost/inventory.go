package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"multihost/internal/adapter"
	"multihost/internal/codec"
	"multihost/internal/domain"
	"multihost/internal/loader"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect and verify the configured inventory",
}

var inventoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the inventory and the topology it provides",
	RunE:  runInventoryShow,
}

var inventoryProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that every inventory host is reachable",
	RunE:  runInventoryProbe,
}

func init() {
	inventoryCmd.AddCommand(inventoryShowCmd)
	inventoryCmd.AddCommand(inventoryProbeCmd)
	rootCmd.AddCommand(inventoryCmd)
}

func runInventoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, err := loadInventory(cfg)
	if err != nil {
		return err
	}

	if outputFmt != "" {
		enc, err := codec.ForFormat(outputFmt)
		if err != nil {
			return err
		}
		return enc.Encode(inv, os.Stdout)
	}

	data, err := loader.ExportYAML(inv)
	if err != nil {
		return err
	}
	os.Stdout.Write(data)

	fmt.Printf("\n# provides topology: %s\n", domain.TopologyFromInventory(inv))
	return nil
}

func runInventoryProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, err := loadInventory(cfg)
	if err != nil {
		return err
	}

	port := cfg.Probe.Port
	if port == 0 {
		port = cfg.SSH.Port
	}

	probe := adapter.NewInventoryProbe(port, cfg.Probe.Timeout.Duration())
	report, err := probe.Run(cmd.Context(), inv)
	if err != nil {
		return err
	}

	if outputFmt != "" {
		enc, err := codec.ForFormat(outputFmt)
		if err != nil {
			return err
		}
		if err := enc.Encode(report, os.Stdout); err != nil {
			return err
		}
	} else {
		for _, res := range report.Results {
			state := "up"
			if !res.Reachable {
				state = "DOWN"
			}
			fmt.Printf("%-4s %s/%s (%s)\n", state, res.Domain, res.Host, res.Address)
		}
	}

	if down := report.Unreachable(); len(down) > 0 {
		return fmt.Errorf("%d of %d hosts unreachable", len(down), len(report.Results))
	}
	return nil
}
