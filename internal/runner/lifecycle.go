package runner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"multihost/internal/roles"
)

// State is the lifecycle phase of one invocation.
type State int

const (
	StatePending State = iota
	StateResolving
	StateRunning
	StateTearingDown
	StateDone
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolving:
		return "resolving"
	case StateRunning:
		return "running"
	case StateTearingDown:
		return "tearing-down"
	case StateDone:
		return "done"
	case StateSkipped:
		return "skipped"
	}
	return "unknown"
}

// Controller drives one invocation through its lifecycle. A controller is
// single-use: it exclusively owns the role objects constructed for its
// invocation and discards them when done, so nothing leaks into sibling or
// later invocations.
type Controller struct {
	invocation *Invocation
	registry   *roles.Registry
	state      State
}

// NewController creates a controller for one planned invocation.
func NewController(invocation *Invocation, registry *roles.Registry) *Controller {
	return &Controller{invocation: invocation, registry: registry}
}

// State returns the controller's current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Execute runs the invocation to completion and returns its result. A
// skipped invocation moves straight from Pending to Skipped without
// resolution or teardown. For everything else teardown is guaranteed: every
// role object constructed during Resolving has its rollback attempted
// exactly once, in reverse construction order, regardless of how the test
// body finished.
func (c *Controller) Execute(ctx context.Context) Result {
	inv := c.invocation
	result := Result{
		Invocation: inv.ID,
		Test:       inv.Test.Name,
		Param:      inv.Param,
	}
	if inv.Mark != nil {
		result.Mark = inv.Mark.Name
	}

	if inv.SkipReason != "" {
		c.state = StateSkipped
		result.Outcome = OutcomeSkipped
		result.SkipReason = inv.SkipReason
		return result
	}

	started := time.Now()
	defer func() { result.Duration = time.Since(started) }()

	c.state = StateResolving
	mh := newMultihost(inv.Assignment, c.registry)

	if err := c.resolveFixtures(ctx, mh); err != nil {
		// Authoring or construction error: a hard test error, but any
		// role objects constructed so far still get their rollback.
		result.fail(OutcomeError, err)
		c.teardown(ctx, mh, &result)
		return result
	}

	c.state = StateRunning
	if err := c.runBody(ctx, mh); err != nil {
		result.fail(OutcomeFailed, err)
	} else {
		result.Outcome = OutcomePassed
	}

	c.teardown(ctx, mh, &result)
	return result
}

// resolveFixtures binds every declared fixture name, constructing role
// objects lazily and recording construction order. Names are resolved in
// lexicographic order so construction order, and therefore teardown order,
// is deterministic.
func (c *Controller) resolveFixtures(ctx context.Context, mh *Multihost) error {
	if c.invocation.Mark == nil {
		return nil
	}

	names := make([]string, 0, len(c.invocation.Mark.Fixtures))
	for name := range c.invocation.Mark.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := mh.bind(name, c.invocation.Mark.Fixtures[name]); err != nil {
			return fmt.Errorf("fixture %q: %w", name, err)
		}
	}

	return mh.setupAll(ctx)
}

// runBody executes the test body, converting panics into failures so the
// invocation still reaches teardown.
func (c *Controller) runBody(ctx context.Context, mh *Multihost) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("test body panicked: %v", r)
		}
	}()
	return c.invocation.Test.Run(ctx, mh, c.invocation.Param)
}

func (c *Controller) teardown(ctx context.Context, mh *Multihost, result *Result) {
	c.state = StateTearingDown
	result.RollbackErrs = mh.teardownAll(ctx)
	for _, err := range result.RollbackErrs {
		result.RollbackErrors = append(result.RollbackErrors, err.Error())
	}
	c.state = StateDone
}
