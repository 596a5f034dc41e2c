package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TopologyDomain specifies one domain required by a topology: the domain type
// together with the minimum number of hosts per role that the domain must
// provide. A TopologyDomain with no role requirements is satisfied by any
// domain of matching type.
type TopologyDomain struct {
	Type  string         `json:"type" yaml:"type"`
	Roles map[string]int `json:"roles" yaml:"roles"`
}

// NewTopologyDomain creates a requirement for one domain of the given type.
// Role counts are copied so the caller's map is never aliased.
func NewTopologyDomain(typ string, roles map[string]int) TopologyDomain {
	td := TopologyDomain{Type: typ, Roles: make(map[string]int, len(roles))}
	for role, count := range roles {
		td.Roles[role] = count
	}
	return td
}

// WithRole returns a copy of the requirement with count hosts of the given
// role added. Requirements for a role already present accumulate rather than
// overwrite, so declaring a role twice sums the counts.
func (d TopologyDomain) WithRole(role string, count int) TopologyDomain {
	out := NewTopologyDomain(d.Type, d.Roles)
	out.Roles[role] += count
	return out
}

// Get returns the required host count for the given role.
func (d TopologyDomain) Get(role string) (int, bool) {
	count, ok := d.Roles[role]
	return count, ok
}

// Satisfies reports whether this requirement covers the other: the types
// match and every role required by other is required here with at least the
// same count.
func (d TopologyDomain) Satisfies(other TopologyDomain) bool {
	if d.Type != other.Type {
		return false
	}
	for role, count := range other.Roles {
		if d.Roles[role] < count {
			return false
		}
	}
	return true
}

// Equal reports whether two requirements are identical.
func (d TopologyDomain) Equal(other TopologyDomain) bool {
	if d.Type != other.Type || len(d.Roles) != len(other.Roles) {
		return false
	}
	for role, count := range d.Roles {
		if other.Roles[role] != count {
			return false
		}
	}
	return true
}

// RoleSpec renders the role requirements as "role:count,..." with roles in
// lexicographic order, for stable log and error output.
func (d TopologyDomain) RoleSpec() string {
	roles := make([]string, 0, len(d.Roles))
	for role := range d.Roles {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, fmt.Sprintf("%s:%d", role, d.Roles[role]))
	}
	return strings.Join(parts, ",")
}

func (d TopologyDomain) String() string {
	return fmt.Sprintf("%s(%s)", d.Type, d.RoleSpec())
}

// Topology specifies the minimum shape an inventory must fulfil in order to
// run a test: an ordered list of domain requirements. Multiple requirements
// of the same type each consume a distinct inventory domain.
type Topology struct {
	Domains []TopologyDomain `json:"domains" yaml:"domains"`
}

// NewTopology creates a topology from the given domain requirements.
func NewTopology(domains ...TopologyDomain) Topology {
	return Topology{Domains: domains}
}

// Get returns the first domain requirement of the given type.
func (t Topology) Get(typ string) (TopologyDomain, bool) {
	for _, d := range t.Domains {
		if d.Type == typ {
			return d, true
		}
	}
	return TopologyDomain{}, false
}

// Contains reports whether the topology has a requirement of the given type.
func (t Topology) Contains(typ string) bool {
	_, ok := t.Get(typ)
	return ok
}

// Satisfies reports whether this topology covers the other: for every domain
// requirement in other there is a requirement of the same type here that
// satisfies it. Used as a cheap precheck and by exact-topology comparisons;
// the authoritative answer for a concrete inventory is Match.
func (t Topology) Satisfies(other Topology) bool {
	for _, od := range other.Domains {
		d, ok := t.Get(od.Type)
		if !ok || !d.Satisfies(od) {
			return false
		}
	}
	return true
}

// Equal reports whether two topologies declare identical requirements in
// identical order.
func (t Topology) Equal(other Topology) bool {
	if len(t.Domains) != len(other.Domains) {
		return false
	}
	for i := range t.Domains {
		if !t.Domains[i].Equal(other.Domains[i]) {
			return false
		}
	}
	return true
}

func (t Topology) String() string {
	parts := make([]string, 0, len(t.Domains))
	for _, d := range t.Domains {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, " + ")
}

// TopologyFromInventory infers the topology an inventory provides: one
// requirement per domain, with role counts equal to the hosts present.
func TopologyFromInventory(inv *Inventory) Topology {
	var domains []TopologyDomain
	for _, d := range inv.Domains {
		roles := make(map[string]int)
		for _, host := range d.Hosts {
			roles[host.Role]++
		}
		domains = append(domains, TopologyDomain{Type: d.Type, Roles: roles})
	}
	return NewTopology(domains...)
}
