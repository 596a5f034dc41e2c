package domain

import "testing"

func TestTopologyDomainSatisfies(t *testing.T) {
	base := NewTopologyDomain("test", map[string]int{"master": 1, "client": 1})

	t.Run("equal requirements satisfy", func(t *testing.T) {
		other := NewTopologyDomain("test", map[string]int{"master": 1, "client": 1})
		if !other.Satisfies(base) {
			t.Error("expected equal requirement to satisfy")
		}
	})

	t.Run("larger counts satisfy", func(t *testing.T) {
		other := NewTopologyDomain("test", map[string]int{"master": 1, "client": 2})
		if !other.Satisfies(base) {
			t.Error("expected larger requirement to satisfy")
		}
	})

	t.Run("missing role does not satisfy", func(t *testing.T) {
		other := NewTopologyDomain("test", map[string]int{"master": 1})
		if other.Satisfies(base) {
			t.Error("expected requirement without client to fail")
		}
	})

	t.Run("different type does not satisfy", func(t *testing.T) {
		other := NewTopologyDomain("diff", map[string]int{"master": 1, "client": 2})
		if other.Satisfies(base) {
			t.Error("expected different type to fail")
		}
	})

	t.Run("zero count is trivially met", func(t *testing.T) {
		zero := NewTopologyDomain("test", map[string]int{"backup": 0})
		full := NewTopologyDomain("test", map[string]int{"master": 1})
		if !full.Satisfies(zero) {
			t.Error("expected zero-count role to be trivially satisfied")
		}
	})
}

func TestTopologyDomainWithRole(t *testing.T) {
	t.Run("accumulates duplicate role requirements", func(t *testing.T) {
		td := NewTopologyDomain("sssd", map[string]int{"client": 1}).
			WithRole("client", 1).
			WithRole("ldap", 1)

		if count, _ := td.Get("client"); count != 2 {
			t.Errorf("expected client count 2, got %d", count)
		}
		if count, _ := td.Get("ldap"); count != 1 {
			t.Errorf("expected ldap count 1, got %d", count)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		td := NewTopologyDomain("sssd", map[string]int{"client": 1})
		_ = td.WithRole("client", 5)

		if count, _ := td.Get("client"); count != 1 {
			t.Errorf("expected original count 1, got %d", count)
		}
	})
}

func TestTopologyDomainRoleSpec(t *testing.T) {
	td := NewTopologyDomain("sssd", map[string]int{"ldap": 1, "client": 2})

	if got := td.RoleSpec(); got != "client:2,ldap:1" {
		t.Errorf("expected sorted role spec, got %q", got)
	}
}

func TestTopologySatisfies(t *testing.T) {
	ldap := NewTopology(NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 1}))

	t.Run("provided topology covers requirement", func(t *testing.T) {
		provided := NewTopology(NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 2, "ipa": 1}))
		if !provided.Satisfies(ldap) {
			t.Error("expected provided topology to satisfy ldap requirement")
		}
	})

	t.Run("missing domain type fails", func(t *testing.T) {
		provided := NewTopology(NewTopologyDomain("ad", map[string]int{"client": 1, "ldap": 1}))
		if provided.Satisfies(ldap) {
			t.Error("expected topology without sssd domain to fail")
		}
	})

	t.Run("empty requirement is always satisfied", func(t *testing.T) {
		provided := NewTopology()
		if !provided.Satisfies(NewTopology()) {
			t.Error("expected empty topology to satisfy empty requirement")
		}
	})
}

func TestTopologyEqual(t *testing.T) {
	a := NewTopology(NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 1}))
	b := NewTopology(NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 1}))
	c := NewTopology(NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 2}))

	if !a.Equal(b) {
		t.Error("expected identical topologies to be equal")
	}
	if a.Equal(c) {
		t.Error("expected different counts to not be equal")
	}
}

func TestTopologyFromInventory(t *testing.T) {
	inv, err := NewInventory(Domain{
		Name: "ldap.test",
		Type: "sssd",
		Hosts: []Host{
			{Name: "client0", Hostname: "client.ldap.test", Role: "client"},
			{Name: "ldap0", Hostname: "master.ldap.test", Role: "ldap"},
			{Name: "ldap1", Hostname: "replica.ldap.test", Role: "ldap"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	topo := TopologyFromInventory(inv)
	if len(topo.Domains) != 1 {
		t.Fatalf("expected 1 domain, got %d", len(topo.Domains))
	}

	td := topo.Domains[0]
	if td.Type != "sssd" {
		t.Errorf("expected type sssd, got %q", td.Type)
	}
	if count, _ := td.Get("client"); count != 1 {
		t.Errorf("expected 1 client, got %d", count)
	}
	if count, _ := td.Get("ldap"); count != 2 {
		t.Errorf("expected 2 ldap, got %d", count)
	}
}

func TestNewInventoryRejectsDuplicateNames(t *testing.T) {
	t.Run("duplicate domain names", func(t *testing.T) {
		_, err := NewInventory(
			Domain{Name: "one", Type: "sssd"},
			Domain{Name: "one", Type: "ad"},
		)
		if err == nil {
			t.Fatal("expected duplicate domain name error")
		}
	})

	t.Run("duplicate host names within a domain", func(t *testing.T) {
		_, err := NewInventory(Domain{
			Name: "ldap.test",
			Type: "sssd",
			Hosts: []Host{
				{Name: "master", Hostname: "a.ldap.test", Role: "ldap"},
				{Name: "master", Hostname: "b.ldap.test", Role: "ldap"},
			},
		})
		if err == nil {
			t.Fatal("expected duplicate host name error")
		}
	})

	t.Run("same host name in different domains is allowed", func(t *testing.T) {
		_, err := NewInventory(
			Domain{Name: "ldap.test", Type: "sssd", Hosts: []Host{
				{Name: "master", Hostname: "master.ldap.test", Role: "ldap"},
			}},
			Domain{Name: "ipa.test", Type: "sssd", Hosts: []Host{
				{Name: "master", Hostname: "master.ipa.test", Role: "ipa"},
			}},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
