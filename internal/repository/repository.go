package repository

import (
	"context"
	"time"
)

// RunRecord summarizes one execution of a plan.
type RunRecord struct {
	ID       string    `json:"id" yaml:"id"`
	Started  time.Time `json:"started" yaml:"started"`
	Finished time.Time `json:"finished" yaml:"finished"`
	Passed   int       `json:"passed" yaml:"passed"`
	Failed   int       `json:"failed" yaml:"failed"`
	Errors   int       `json:"errors" yaml:"errors"`
	Skipped  int       `json:"skipped" yaml:"skipped"`
}

// InvocationRecord stores the outcome of one invocation within a run.
type InvocationRecord struct {
	RunID        string        `json:"run_id" yaml:"run_id"`
	Invocation   string        `json:"invocation" yaml:"invocation"`
	Test         string        `json:"test" yaml:"test"`
	Mark         string        `json:"mark,omitempty" yaml:"mark,omitempty"`
	Param        string        `json:"param,omitempty" yaml:"param,omitempty"`
	Outcome      string        `json:"outcome" yaml:"outcome"`
	SkipReason   string        `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Failure      string        `json:"failure,omitempty" yaml:"failure,omitempty"`
	RollbackErrs []string      `json:"rollback_errors,omitempty" yaml:"rollback_errors,omitempty"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// RunRepository persists run history so past outcomes can be inspected and
// invocations re-run selectively by identifier.
type RunRepository interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	SaveInvocation(ctx context.Context, inv *InvocationRecord) error

	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	ListInvocations(ctx context.Context, runID string) ([]InvocationRecord, error)

	// Close releases resources.
	Close() error
}
