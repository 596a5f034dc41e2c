package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"multihost/internal/codec"
	"multihost/internal/repository/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs, newest first",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the invocation outcomes of one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	history, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer history.Close()

	runs, err := history.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if outputFmt != "" {
		enc, err := codec.ForFormat(outputFmt)
		if err != nil {
			return err
		}
		return enc.Encode(runs, os.Stdout)
	}

	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  %d passed, %d failed, %d errors, %d skipped\n",
			run.ID, run.Started.Local().Format(time.RFC3339),
			run.Passed, run.Failed, run.Errors, run.Skipped)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	history, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer history.Close()

	invs, err := history.ListInvocations(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		return fmt.Errorf("no invocations recorded for run %q", args[0])
	}

	if outputFmt != "" {
		enc, err := codec.ForFormat(outputFmt)
		if err != nil {
			return err
		}
		return enc.Encode(invs, os.Stdout)
	}

	for _, inv := range invs {
		line := fmt.Sprintf("%-7s %s (%s)", inv.Outcome, inv.Invocation, inv.Duration.Round(time.Millisecond))
		if inv.SkipReason != "" {
			line += "  " + inv.SkipReason
		}
		if inv.Failure != "" {
			line += "  " + inv.Failure
		}
		fmt.Println(line)
		for _, rb := range inv.RollbackErrs {
			fmt.Printf("        rollback: %s\n", rb)
		}
	}
	return nil
}
