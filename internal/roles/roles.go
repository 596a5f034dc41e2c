// Package roles defines the runtime role objects bound to inventory hosts.
//
// A Role is the handle a test body uses to interact with one remote host. It
// lives for exactly one invocation: constructed on first reference during
// fixture resolution, torn down when the invocation finishes. Role
// capabilities are external; this package provides the construction registry
// and a generic role that records rollback actions against an SSH transport.
package roles

import (
	"context"
	"fmt"
	"sync"

	"multihost/internal/domain"
)

// Role is the runtime handle bound to exactly one host for the lifetime of
// one test invocation.
type Role interface {
	// Name returns the role tag the object was constructed for.
	Name() string

	// Host returns the inventory host the object is bound to.
	Host() domain.Host

	// Setup prepares the role object before the test body runs.
	Setup(ctx context.Context) error

	// Teardown is the rollback hook. It reverts any state mutated on the
	// remote host during the test and is invoked exactly once, even when
	// the test body or a sibling rollback failed.
	Teardown(ctx context.Context) error
}

// Factory constructs a role object for a host.
type Factory func(host domain.Host) (Role, error)

// Registry maps role tags to factories. Roles without a registered factory
// fall back to the generic factory, so unknown role tags never require
// engine changes.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	fallback  Factory
}

// NewRegistry creates a registry with the given fallback factory. A nil
// fallback makes construction of unregistered roles an error.
func NewRegistry(fallback Factory) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		fallback:  fallback,
	}
}

// Register adds a factory for a role tag.
func (r *Registry) Register(role string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[role]; exists {
		return fmt.Errorf("role factory %q already registered", role)
	}
	r.factories[role] = factory
	return nil
}

// Construct builds a role object for the host, dispatching on the host's
// role tag.
func (r *Registry) Construct(host domain.Host) (Role, error) {
	r.mu.RLock()
	factory, ok := r.factories[host.Role]
	if !ok {
		factory = r.fallback
	}
	r.mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("no factory for role %q and no fallback configured", host.Role)
	}

	obj, err := factory(host)
	if err != nil {
		return nil, fmt.Errorf("construct role %q for host %q: %w", host.Role, host.Name, err)
	}
	return obj, nil
}
