package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"multihost/internal/adapter"
	"multihost/internal/codec"
	"multihost/internal/config"
	"multihost/internal/domain"
	"multihost/internal/repository/sqlite"
	"multihost/internal/roles"
	"multihost/internal/runner"
)

var (
	runProbe     bool
	runNoHistory bool
	runExact     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the registered test suite against the inventory",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runProbe, "probe", false, "verify host reachability before running")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "do not record this run in the history database")
	runCmd.Flags().BoolVar(&runExact, "exact", false, "only run marks whose topology exactly matches the inventory")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, err := loadInventory(cfg)
	if err != nil {
		return err
	}

	tests := runner.Suite()
	if len(tests) == 0 {
		return fmt.Errorf("no tests registered")
	}

	if runProbe {
		if err := preflight(cmd, cfg, inv); err != nil {
			return err
		}
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return err
	}
	registry := roles.NewRegistry(roles.GenericFactory(transport))

	var opts []runner.Option
	if !runNoHistory {
		history, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer history.Close()
		opts = append(opts, runner.WithHistory(history))
	}

	planOpts := runner.PlanOptions{ExactTopology: cfg.ExactTopology || runExact}

	report, err := runner.New(registry, opts...).Run(cmd.Context(), inv, tests, planOpts)
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
		fmt.Printf("\nRun %s: %d passed, %d failed, %d errors, %d skipped (%s)\n",
			report.RunID,
			report.Count(runner.OutcomePassed),
			report.Count(runner.OutcomeFailed),
			report.Count(runner.OutcomeError),
			report.Count(runner.OutcomeSkipped),
			report.Finished.Sub(report.Started).Round(time.Millisecond))
	}

	if failed := report.Count(runner.OutcomeFailed) + report.Count(runner.OutcomeError); failed > 0 {
		return fmt.Errorf("%d of %d invocations did not pass", failed, len(report.Results))
	}
	return nil
}

// preflight probes every inventory host and refuses to run when any is
// unreachable.
func preflight(cmd *cobra.Command, cfg *config.Config, inv *domain.Inventory) error {
	port := cfg.Probe.Port
	if port == 0 {
		port = cfg.SSH.Port
	}

	probe := adapter.NewInventoryProbe(port, cfg.Probe.Timeout.Duration())
	report, err := probe.Run(cmd.Context(), inv)
	if err != nil {
		return fmt.Errorf("inventory probe: %w", err)
	}

	if down := report.Unreachable(); len(down) > 0 {
		for _, res := range down {
			log.Printf("Unreachable: %s/%s (%s)", res.Domain, res.Host, res.Address)
		}
		return fmt.Errorf("%d of %d inventory hosts unreachable", len(down), len(report.Results))
	}
	return nil
}

// newTransport builds the SSH transport from the configuration.
func newTransport(cfg *config.Config) (*adapter.SSHTransport, error) {
	key, err := cfg.SSH.PrivateKey()
	if err != nil {
		return nil, err
	}

	sshCfg := adapter.SSHConfig{
		User:           cfg.SSH.User,
		Password:       cfg.SSH.Password,
		PrivateKey:     key,
		Port:           cfg.SSH.Port,
		ConnectTimeout: cfg.SSH.ConnectTimeout.Duration(),
	}
	log.Printf("SSH transport: user=%s port=%d", sshCfg.User, sshCfg.Port)
	return adapter.NewSSHTransport(sshCfg), nil
}
