package runner

import (
	"context"
	"fmt"

	"multihost/internal/domain"
	"multihost/internal/roles"
)

// Multihost is the per-invocation context handed to a test body. It exposes
// the fixtures declared by the invocation's topology mark, resolved into
// live role objects. Each invocation gets its own Multihost; it is never
// stored in process-wide state and never reused.
type Multihost struct {
	assignment *domain.Assignment
	registry   *roles.Registry

	// objects memoizes constructed role objects by host identity so two
	// fixture names resolving to the same host share one instance.
	objects map[string]roles.Role
	// order records construction order for reverse teardown.
	order []roles.Role

	fixtures map[string]fixtureValue
}

type fixtureValue struct {
	list  []roles.Role
	multi bool
}

func newMultihost(assignment *domain.Assignment, registry *roles.Registry) *Multihost {
	return &Multihost{
		assignment: assignment,
		registry:   registry,
		objects:    make(map[string]roles.Role),
		fixtures:   make(map[string]fixtureValue),
	}
}

// Role returns the single role object bound to the named fixture. It fails
// for fixtures declared without an index, which resolve to a list.
func (m *Multihost) Role(name string) (roles.Role, error) {
	v, ok := m.fixtures[name]
	if !ok {
		return nil, fmt.Errorf("fixture %q is not declared by this topology mark", name)
	}
	if v.multi {
		return nil, fmt.Errorf("fixture %q resolves to %d hosts, use Roles", name, len(v.list))
	}
	return v.list[0], nil
}

// Roles returns the role objects bound to the named fixture. Single-host
// fixtures yield a one-element list.
func (m *Multihost) Roles(name string) ([]roles.Role, error) {
	v, ok := m.fixtures[name]
	if !ok {
		return nil, fmt.Errorf("fixture %q is not declared by this topology mark", name)
	}
	return v.list, nil
}

// Lookup resolves a raw path expression against the invocation's matched
// assignment, constructing role objects as needed. Fixtures declared by the
// mark are the common access path; Lookup serves ad-hoc references.
func (m *Multihost) Lookup(expr string) ([]roles.Role, error) {
	if m.assignment == nil {
		return nil, fmt.Errorf("no topology matched for this invocation")
	}
	path, err := domain.ParsePath(expr)
	if err != nil {
		return nil, err
	}
	return m.resolve(path)
}

// resolve maps a parsed path to role objects, memoized per host.
func (m *Multihost) resolve(path domain.Path) ([]roles.Role, error) {
	da, hosts, err := m.assignment.Resolve(path)
	if err != nil {
		return nil, err
	}

	out := make([]roles.Role, 0, len(hosts))
	for _, host := range hosts {
		obj, err := m.object(da.Domain.Name, host)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func (m *Multihost) object(domainName string, host domain.Host) (roles.Role, error) {
	key := domainName + "\x00" + host.Name
	if obj, ok := m.objects[key]; ok {
		return obj, nil
	}

	obj, err := m.registry.Construct(host)
	if err != nil {
		return nil, err
	}
	m.objects[key] = obj
	m.order = append(m.order, obj)
	return obj, nil
}

// bind resolves one declared fixture name.
func (m *Multihost) bind(name, expr string) error {
	path, err := domain.ParsePath(expr)
	if err != nil {
		return err
	}
	objs, err := m.resolve(path)
	if err != nil {
		return err
	}
	m.fixtures[name] = fixtureValue{list: objs, multi: path.Index < 0}
	return nil
}

// setupAll runs Setup on constructed objects in construction order.
func (m *Multihost) setupAll(ctx context.Context) error {
	for _, obj := range m.order {
		if err := obj.Setup(ctx); err != nil {
			return fmt.Errorf("setup role %q on host %q: %w", obj.Name(), obj.Host().Name, err)
		}
	}
	return nil
}

// teardownAll invokes every constructed object's rollback hook in exact
// reverse construction order. Each rollback is attempted exactly once; a
// failure never prevents the remaining rollbacks from running. Panicking
// rollbacks are converted to errors so teardown always completes.
func (m *Multihost) teardownAll(ctx context.Context) []error {
	var errs []error
	for i := len(m.order) - 1; i >= 0; i-- {
		obj := m.order[i]
		if err := safeTeardown(ctx, obj); err != nil {
			errs = append(errs, fmt.Errorf("rollback role %q on host %q: %w", obj.Name(), obj.Host().Name, err))
		}
	}
	return errs
}

func safeTeardown(ctx context.Context, obj roles.Role) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rollback panicked: %v", r)
		}
	}()
	return obj.Teardown(ctx)
}
