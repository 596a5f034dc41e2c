package runner

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"multihost/internal/domain"
	"multihost/internal/repository"
	"multihost/internal/roles"
)

// Runner executes invocation plans. Invocations run strictly one after
// another; one invocation's failure never affects its siblings, and rollback
// always completes before the next invocation starts.
type Runner struct {
	registry *roles.Registry
	history  repository.RunRepository
}

// Option configures a Runner.
type Option func(*Runner)

// WithHistory records run outcomes in the given repository.
func WithHistory(history repository.RunRepository) Option {
	return func(r *Runner) { r.history = history }
}

// New creates a runner constructing role objects through the given registry.
func New(registry *roles.Registry, opts ...Option) *Runner {
	r := &Runner{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plans and executes the tests against the inventory.
func (r *Runner) Run(ctx context.Context, inv *domain.Inventory, tests []TestCase, opts PlanOptions) (*Report, error) {
	plan, err := NewPlan(inv, tests, opts)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, plan)
}

// Execute runs an already-expanded plan.
func (r *Runner) Execute(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	log.Printf("Run %s: %d invocations (%d skipped)",
		report.RunID, len(plan.Invocations), len(plan.Skipped()))

	for idx := range plan.Invocations {
		invocation := &plan.Invocations[idx]
		controller := NewController(invocation, r.registry)

		result := controller.Execute(ctx)
		report.Results = append(report.Results, result)

		switch result.Outcome {
		case OutcomeSkipped:
			log.Printf("SKIP %s: %s", result.Invocation, result.SkipReason)
		case OutcomePassed:
			log.Printf("PASS %s (%s)", result.Invocation, result.Duration.Round(time.Millisecond))
		default:
			log.Printf("%s %s: %v", string(result.Outcome), result.Invocation, result.Err)
		}
		for _, rbErr := range result.RollbackErrs {
			log.Printf("WARN %s: %v", result.Invocation, rbErr)
		}
	}

	report.Finished = time.Now()

	if r.history != nil {
		if err := r.persist(ctx, report); err != nil {
			log.Printf("Failed to persist run %s: %v", report.RunID, err)
		}
	}

	return report, nil
}

func (r *Runner) persist(ctx context.Context, report *Report) error {
	run := &repository.RunRecord{
		ID:       report.RunID,
		Started:  report.Started,
		Finished: report.Finished,
		Passed:   report.Count(OutcomePassed),
		Failed:   report.Count(OutcomeFailed),
		Errors:   report.Count(OutcomeError),
		Skipped:  report.Count(OutcomeSkipped),
	}
	if err := r.history.SaveRun(ctx, run); err != nil {
		return err
	}

	for _, res := range report.Results {
		record := &repository.InvocationRecord{
			RunID:        report.RunID,
			Invocation:   res.Invocation,
			Test:         res.Test,
			Mark:         res.Mark,
			Param:        res.Param,
			Outcome:      string(res.Outcome),
			SkipReason:   res.SkipReason,
			Failure:      res.Failure,
			RollbackErrs: res.RollbackErrors,
			Duration:     res.Duration,
		}
		if err := r.history.SaveInvocation(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
