package domain

import "fmt"

// UnsatisfiableError reports that a topology could not be matched against an
// inventory. It names the failing domain requirement so that skip messages
// are actionable. Matching failures cause a skip, never a test failure.
type UnsatisfiableError struct {
	// Index is the position of the failing requirement within the topology.
	Index int
	// Domain is the requirement that no inventory domain could satisfy.
	Domain TopologyDomain
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("unsatisfiable: domain type %q requires roles %s, none available",
		e.Domain.Type, e.Domain.RoleSpec())
}

// PathError reports a fixture path that could not be parsed or that
// references a domain type, role or index the matched assignment does not
// contain. It indicates a mismatch between a mark's topology and its fixture
// mapping, so it is surfaced as a hard test error rather than a skip.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("fixture path %q: %s", e.Path, e.Reason)
}
