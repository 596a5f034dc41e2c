package runner

import "time"

// Outcome is the primary result of one invocation.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
)

// Result is the recorded outcome of one invocation. Rollback failures are
// supplementary: they never replace the primary outcome.
type Result struct {
	Invocation string        `json:"invocation" yaml:"invocation"`
	Test       string        `json:"test" yaml:"test"`
	Mark       string        `json:"mark,omitempty" yaml:"mark,omitempty"`
	Param      string        `json:"param,omitempty" yaml:"param,omitempty"`
	Outcome    Outcome       `json:"outcome" yaml:"outcome"`
	SkipReason string        `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`

	// Failure is the rendered primary fault, present in encoded reports.
	Failure string `json:"failure,omitempty" yaml:"failure,omitempty"`

	// RollbackErrors is the rendered form of RollbackErrs, present in
	// encoded reports.
	RollbackErrors []string `json:"rollback_errors,omitempty" yaml:"rollback_errors,omitempty"`

	// Err is the primary fault: the test body's failure, a fixture path
	// mismatch or a role construction error.
	Err error `json:"-" yaml:"-"`

	// RollbackErrs collects rollback faults from teardown.
	RollbackErrs []error `json:"-" yaml:"-"`
}

// fail records err as the invocation's primary fault.
func (r *Result) fail(outcome Outcome, err error) {
	r.Outcome = outcome
	r.Err = err
	if err != nil {
		r.Failure = err.Error()
	}
}

// Report aggregates the results of one run.
type Report struct {
	RunID    string    `json:"run_id" yaml:"run_id"`
	Started  time.Time `json:"started" yaml:"started"`
	Finished time.Time `json:"finished" yaml:"finished"`
	Results  []Result  `json:"results" yaml:"results"`
}

// Count returns the number of results with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
