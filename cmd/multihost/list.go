package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"multihost/internal/codec"
	"multihost/internal/runner"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the invocation plan without running anything",
	Long: `list expands the registered tests against the configured inventory and
prints each planned invocation: its identifier and, for unsatisfiable
topology marks, the reason it would be skipped.`,
	RunE: runList,
}

// plannedInvocation is the list output row.
type plannedInvocation struct {
	ID         string `json:"id" yaml:"id"`
	Test       string `json:"test" yaml:"test"`
	Mark       string `json:"mark,omitempty" yaml:"mark,omitempty"`
	Param      string `json:"param,omitempty" yaml:"param,omitempty"`
	SkipReason string `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	inv, err := loadInventory(cfg)
	if err != nil {
		return err
	}

	plan, err := runner.NewPlan(inv, runner.Suite(), runner.PlanOptions{ExactTopology: cfg.ExactTopology})
	if err != nil {
		return err
	}

	rows := make([]plannedInvocation, 0, len(plan.Invocations))
	for _, invc := range plan.Invocations {
		row := plannedInvocation{
			ID:         invc.ID,
			Test:       invc.Test.Name,
			Param:      invc.Param,
			SkipReason: invc.SkipReason,
		}
		if invc.Mark != nil {
			row.Mark = invc.Mark.Name
		}
		rows = append(rows, row)
	}

	if outputFmt != "" {
		enc, err := codec.ForFormat(outputFmt)
		if err != nil {
			return err
		}
		return enc.Encode(rows, os.Stdout)
	}

	for _, row := range rows {
		if row.SkipReason != "" {
			fmt.Printf("SKIP %s  (%s)\n", row.ID, row.SkipReason)
			continue
		}
		fmt.Println(row.ID)
	}
	fmt.Printf("\n%d invocations, %d runnable\n", len(plan.Invocations), len(plan.Runnable()))
	return nil
}
