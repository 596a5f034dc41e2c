package roles

import (
	"context"
	"errors"
	"testing"

	"multihost/internal/adapter"
	"multihost/internal/domain"
)

type fakeTransport struct {
	commands [][]string
	result   *adapter.CommandResult
	err      error
}

func (f *fakeTransport) Exec(ctx context.Context, host domain.Host, argv []string) (*adapter.CommandResult, error) {
	f.commands = append(f.commands, argv)
	if f.result != nil {
		return f.result, f.err
	}
	return &adapter.CommandResult{}, f.err
}

func TestRegistry(t *testing.T) {
	host := domain.Host{Name: "ldap0", Hostname: "master.ldap.test", Role: "ldap"}

	t.Run("dispatches on role tag", func(t *testing.T) {
		registry := NewRegistry(GenericFactory(nil))

		custom := &Generic{host: host}
		if err := registry.Register("ldap", func(h domain.Host) (Role, error) {
			return custom, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		obj, err := registry.Construct(host)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if obj != Role(custom) {
			t.Error("expected registered factory to be used")
		}
	})

	t.Run("falls back to generic for unknown roles", func(t *testing.T) {
		registry := NewRegistry(GenericFactory(nil))

		obj, err := registry.Construct(domain.Host{Name: "kdc0", Role: "kdc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := obj.(*Generic); !ok {
			t.Errorf("expected generic role, got %T", obj)
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		registry := NewRegistry(nil)
		factory := GenericFactory(nil)

		if err := registry.Register("ldap", factory); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := registry.Register("ldap", factory); err == nil {
			t.Error("expected duplicate registration error")
		}
	})

	t.Run("fails without factory or fallback", func(t *testing.T) {
		registry := NewRegistry(nil)
		if _, err := registry.Construct(host); err == nil {
			t.Error("expected construction error")
		}
	})
}

func TestGenericTeardown(t *testing.T) {
	host := domain.Host{Name: "client0", Hostname: "client.ldap.test", Role: "client"}

	t.Run("unwinds actions in reverse order", func(t *testing.T) {
		g := NewGeneric(host, nil)

		var order []string
		for _, label := range []string{"a", "b", "c"} {
			label := label
			g.OnTeardown(label, func(ctx context.Context) error {
				order = append(order, label)
				return nil
			})
		}

		if err := g.Teardown(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 3 || order[0] != "c" || order[1] != "b" || order[2] != "a" {
			t.Errorf("expected reverse order, got %v", order)
		}
	})

	t.Run("a failing action does not stop the rest", func(t *testing.T) {
		g := NewGeneric(host, nil)

		var order []string
		g.OnTeardown("first", func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		})
		g.OnTeardown("second", func(ctx context.Context) error {
			order = append(order, "second")
			return errors.New("boom")
		})
		g.OnTeardown("third", func(ctx context.Context) error {
			order = append(order, "third")
			return nil
		})

		err := g.Teardown(context.Background())
		if err == nil {
			t.Fatal("expected teardown error")
		}
		if len(order) != 3 {
			t.Errorf("expected all actions attempted, got %v", order)
		}
	})

	t.Run("actions run exactly once", func(t *testing.T) {
		g := NewGeneric(host, nil)

		count := 0
		g.OnTeardown("once", func(ctx context.Context) error {
			count++
			return nil
		})

		_ = g.Teardown(context.Background())
		_ = g.Teardown(context.Background())
		if count != 1 {
			t.Errorf("expected 1 execution, got %d", count)
		}
	})
}

func TestGenericExec(t *testing.T) {
	host := domain.Host{Name: "client0", Hostname: "client.ldap.test", Role: "client"}

	t.Run("delegates to the transport", func(t *testing.T) {
		transport := &fakeTransport{result: &adapter.CommandResult{ExitCode: 2, Stdout: "out"}}
		g := NewGeneric(host, transport)

		result, err := g.Exec(context.Background(), "ls", "/tmp")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ExitCode != 2 || result.Stdout != "out" {
			t.Errorf("unexpected result: %+v", result)
		}
		if len(transport.commands) != 1 || transport.commands[0][0] != "ls" {
			t.Errorf("unexpected recorded commands: %v", transport.commands)
		}
	})

	t.Run("fails without transport", func(t *testing.T) {
		g := NewGeneric(host, nil)
		if _, err := g.Exec(context.Background(), "true"); err == nil {
			t.Error("expected error without transport")
		}
	})
}
