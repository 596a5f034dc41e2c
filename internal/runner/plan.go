package runner

import (
	"context"
	"errors"
	"fmt"

	"multihost/internal/domain"
)

// TestFunc is a test body. It receives the per-invocation context and the
// value parameter the invocation was expanded with (empty when the test
// declares no value parameters). A returned error fails the invocation.
type TestFunc func(ctx context.Context, mh *Multihost, param string) error

// TestCase is one declared test: a name, zero or more topology marks, zero
// or more value parameters and a body. How tests are declared syntactically
// is up to the caller; see Register for the package-level suite.
type TestCase struct {
	Name   string
	Marks  []domain.TopologyMark
	Params []string
	Run    TestFunc
}

// Invocation is one concrete planned execution of a test: one satisfied (or
// skipped) topology mark combined with one value parameter.
type Invocation struct {
	// ID identifies the invocation, pattern testName[valueParam](markName).
	ID string

	Test  *TestCase
	Param string

	// Mark is nil for tests declared without topology marks.
	Mark *domain.TopologyMark

	// Assignment is the matched topology binding, nil when the invocation
	// is skipped or has no mark.
	Assignment *domain.Assignment

	// SkipReason is non-empty when the mark's topology was unsatisfiable.
	SkipReason string
}

// Plan is the ordered expansion of a set of tests against one inventory.
type Plan struct {
	Invocations []Invocation
}

// PlanOptions controls expansion.
type PlanOptions struct {
	// ExactTopology restricts marks to those whose topology equals the
	// topology inferred from the inventory, instead of minimum-shape
	// matching.
	ExactTopology bool
}

// NewPlan expands tests into invocations. Tests expand in declaration
// order; within a test, topology marks form the outer loop and value
// parameters the inner loop. The result is stable across runs for unchanged
// inventory and declarations, so invocation identifiers support selective
// re-running.
//
// Each mark is matched independently: an unsatisfiable mark skips only that
// branch and records the unmet requirement. A test without marks yields one
// branch with no host fixtures.
func NewPlan(inv *domain.Inventory, tests []TestCase, opts PlanOptions) (*Plan, error) {
	provided := domain.TopologyFromInventory(inv)
	plan := &Plan{}

	for idx := range tests {
		test := &tests[idx]
		if test.Name == "" {
			return nil, fmt.Errorf("test at index %d has no name", idx)
		}

		params := test.Params
		if len(params) == 0 {
			params = []string{""}
		}

		if len(test.Marks) == 0 {
			for _, param := range params {
				plan.Invocations = append(plan.Invocations, Invocation{
					ID:    invocationID(test.Name, param, ""),
					Test:  test,
					Param: param,
				})
			}
			continue
		}

		for markIdx := range test.Marks {
			mark := &test.Marks[markIdx]
			if err := mark.Validate(); err != nil {
				return nil, fmt.Errorf("test %q: %w", test.Name, err)
			}

			// The match depends only on the mark and the immutable
			// inventory, so it is computed once per mark and shared by
			// every value-parameter expansion.
			assignment, skip, err := matchMark(inv, provided, mark, opts)
			if err != nil {
				return nil, err
			}

			for _, param := range params {
				plan.Invocations = append(plan.Invocations, Invocation{
					ID:         invocationID(test.Name, param, mark.Name),
					Test:       test,
					Param:      param,
					Mark:       mark,
					Assignment: assignment,
					SkipReason: skip,
				})
			}
		}
	}

	return plan, nil
}

func matchMark(inv *domain.Inventory, provided domain.Topology, mark *domain.TopologyMark, opts PlanOptions) (*domain.Assignment, string, error) {
	if opts.ExactTopology && !mark.Topology.Equal(provided) {
		return nil, fmt.Sprintf("topology %q does not exactly match the configured inventory", mark.Name), nil
	}

	assignment, err := domain.Match(inv, mark.Topology)
	if err != nil {
		var unsat *domain.UnsatisfiableError
		if errors.As(err, &unsat) {
			return nil, unsat.Error(), nil
		}
		return nil, "", fmt.Errorf("match topology %q: %w", mark.Name, err)
	}
	return assignment, "", nil
}

// Runnable returns the invocations that will actually execute.
func (p *Plan) Runnable() []Invocation {
	var out []Invocation
	for _, inv := range p.Invocations {
		if inv.SkipReason == "" {
			out = append(out, inv)
		}
	}
	return out
}

// Skipped returns the invocations whose topology could not be satisfied.
func (p *Plan) Skipped() []Invocation {
	var out []Invocation
	for _, inv := range p.Invocations {
		if inv.SkipReason != "" {
			out = append(out, inv)
		}
	}
	return out
}

func invocationID(test, param, mark string) string {
	id := test
	if param != "" {
		id += "[" + param + "]"
	}
	if mark != "" {
		id += "(" + mark + ")"
	}
	return id
}
