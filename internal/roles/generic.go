package roles

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"multihost/internal/adapter"
	"multihost/internal/domain"
)

// Transport executes commands on remote hosts. Satisfied by
// adapter.SSHTransport; tests substitute fakes.
type Transport interface {
	Exec(ctx context.Context, host domain.Host, argv []string) (*adapter.CommandResult, error)
}

// Generic is the default role object used for role tags without a dedicated
// factory. It exposes remote command execution and an explicit rollback
// stack: every mutation a test performs through the role should record a
// compensating action, and Teardown unwinds them in reverse order.
type Generic struct {
	host      domain.Host
	transport Transport

	mu   sync.Mutex
	undo []undoAction
}

type undoAction struct {
	label string
	fn    func(ctx context.Context) error
}

// GenericFactory returns a Factory producing Generic roles wired to the
// given transport. A nil transport is allowed; Exec then fails, but roles
// that only carry host metadata still work.
func GenericFactory(transport Transport) Factory {
	return func(host domain.Host) (Role, error) {
		return NewGeneric(host, transport), nil
	}
}

// NewGeneric creates a generic role object bound to the host.
func NewGeneric(host domain.Host, transport Transport) *Generic {
	return &Generic{host: host, transport: transport}
}

// Name returns the host's role tag.
func (g *Generic) Name() string { return g.host.Role }

// Host returns the bound inventory host.
func (g *Generic) Host() domain.Host { return g.host }

// Setup is a no-op for the generic role.
func (g *Generic) Setup(ctx context.Context) error { return nil }

// Exec runs a command on the remote host.
func (g *Generic) Exec(ctx context.Context, argv ...string) (*adapter.CommandResult, error) {
	if g.transport == nil {
		return nil, fmt.Errorf("role %q on host %q has no transport", g.host.Role, g.host.Name)
	}
	return g.transport.Exec(ctx, g.host, argv)
}

// OnTeardown records a compensating action to run during Teardown. Actions
// run in reverse registration order.
func (g *Generic) OnTeardown(label string, fn func(ctx context.Context) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.undo = append(g.undo, undoAction{label: label, fn: fn})
}

// Teardown unwinds the recorded rollback actions in reverse order. Every
// action is attempted exactly once; failures are collected and returned
// joined, never aborting the remaining actions.
func (g *Generic) Teardown(ctx context.Context) error {
	g.mu.Lock()
	actions := g.undo
	g.undo = nil
	g.mu.Unlock()

	var errs []error
	for i := len(actions) - 1; i >= 0; i-- {
		if err := actions[i].fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("rollback %q on host %q: %w", actions[i].label, g.host.Name, err))
		}
	}
	return errors.Join(errs...)
}
