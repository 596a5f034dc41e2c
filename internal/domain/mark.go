package domain

import "fmt"

// FixtureMapping maps fixture names to path expressions. Fixture names are
// unique within one mark; different marks may bind the same name to
// different paths.
type FixtureMapping map[string]string

// TopologyMark couples a display name, the topology required to run a test
// and the fixtures made available to the test body. Marks are immutable once
// defined and attached to test definitions; a test may carry zero, one or
// many marks.
type TopologyMark struct {
	// Name identifies the mark in invocation identifiers and reports.
	Name string `json:"name" yaml:"name"`
	// Topology is the requirement that must be matched to run the branch.
	Topology Topology `json:"topology" yaml:"topology"`
	// Fixtures binds names available to the test body to fixture paths.
	Fixtures FixtureMapping `json:"fixtures,omitempty" yaml:"fixtures,omitempty"`
}

// Validate checks that every fixture path parses. It does not check the
// paths against the topology; that mismatch surfaces as a PathError during
// resolution.
func (m TopologyMark) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("topology mark has no name")
	}
	for name, expr := range m.Fixtures {
		if name == "" {
			return fmt.Errorf("topology mark %q: empty fixture name", m.Name)
		}
		if _, err := ParsePath(expr); err != nil {
			return fmt.Errorf("topology mark %q: fixture %q: %w", m.Name, name, err)
		}
	}
	return nil
}
