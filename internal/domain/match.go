package domain

import "fmt"

// DomainAssignment binds one TopologyDomain requirement to a concrete
// inventory domain. Hosts holds, per required role, the matched hosts in
// inventory order; only the required count is matched, hosts beyond the
// minimum remain unassigned.
type DomainAssignment struct {
	Require TopologyDomain
	Domain  *Domain
	Hosts   map[string][]Host
}

// Assignment is the result of matching a topology against an inventory: one
// DomainAssignment per topology domain, index-aligned with the topology's
// declaration order.
type Assignment struct {
	Topology Topology
	Domains  []DomainAssignment
}

// Match binds a topology against an inventory.
//
// Domain requirements are processed in declared order. Each requirement
// consumes the first not-yet-consumed inventory domain (in inventory order)
// of matching type that provides at least the required number of hosts per
// role. Within a chosen domain, the first N hosts of each role in inventory
// order are matched. There is no backtracking; ties are broken purely by
// inventory order so that repeated calls with unchanged inputs produce
// identical assignments.
//
// If no eligible domain remains for a requirement, Match returns an
// *UnsatisfiableError naming that requirement.
func Match(inv *Inventory, topo Topology) (*Assignment, error) {
	assignment := &Assignment{
		Topology: topo,
		Domains:  make([]DomainAssignment, 0, len(topo.Domains)),
	}

	consumed := make(map[string]bool)

	for idx, require := range topo.Domains {
		chosen := chooseDomain(inv, require, consumed)
		if chosen == nil {
			return nil, &UnsatisfiableError{Index: idx, Domain: require}
		}
		consumed[chosen.Name] = true

		hosts := make(map[string][]Host, len(require.Roles))
		for role, count := range require.Roles {
			if count == 0 {
				continue
			}
			available := chosen.HostsByRole(role)
			hosts[role] = available[:count]
		}

		assignment.Domains = append(assignment.Domains, DomainAssignment{
			Require: require,
			Domain:  chosen,
			Hosts:   hosts,
		})
	}

	return assignment, nil
}

// chooseDomain returns the first inventory domain of matching type, not yet
// consumed by this assignment attempt, that provides every required role in
// sufficient quantity. A zero count is trivially met.
func chooseDomain(inv *Inventory, require TopologyDomain, consumed map[string]bool) *Domain {
	for idx := range inv.Domains {
		d := &inv.Domains[idx]
		if consumed[d.Name] || d.Type != require.Type {
			continue
		}
		if domainEligible(d, require) {
			return d
		}
	}
	return nil
}

func domainEligible(d *Domain, require TopologyDomain) bool {
	for role, count := range require.Roles {
		if d.RoleCount(role) < count {
			return false
		}
	}
	return true
}

// Resolve resolves a parsed fixture path against the assignment. An
// unindexed path yields the matched hosts of that role (the required count,
// not the full pool available in the chosen domain); an indexed path yields
// a single host. The path is resolved against the first assigned domain of
// the referenced type that matched the referenced role.
func (a *Assignment) Resolve(p Path) (*DomainAssignment, []Host, error) {
	typeFound := false
	for idx := range a.Domains {
		da := &a.Domains[idx]
		if da.Require.Type != p.DomainType {
			continue
		}
		typeFound = true

		hosts, ok := da.Hosts[p.Role]
		if !ok {
			continue
		}

		if p.Index < 0 {
			return da, hosts, nil
		}
		if p.Index >= len(hosts) {
			return nil, nil, &PathError{
				Path:   p.String(),
				Reason: fmt.Sprintf("index out of range: role %q matched %d hosts", p.Role, len(hosts)),
			}
		}
		return da, hosts[p.Index : p.Index+1], nil
	}

	if !typeFound {
		return nil, nil, &PathError{Path: p.String(), Reason: "domain type not present in matched topology"}
	}
	return nil, nil, &PathError{Path: p.String(), Reason: "role not present in matched domain"}
}

// ResolveHosts is Resolve without the chosen domain.
func (a *Assignment) ResolveHosts(p Path) ([]Host, error) {
	_, hosts, err := a.Resolve(p)
	return hosts, err
}
