package domain

import "fmt"

// Host is one addressable machine entry in the inventory. A host has exactly
// one role; the role is an open-ended string tag.
type Host struct {
	Name     string         `json:"name" yaml:"name"`
	Hostname string         `json:"hostname" yaml:"hostname"`
	IP       string         `json:"ip,omitempty" yaml:"ip,omitempty"`
	Role     string         `json:"role" yaml:"role"`
	Username string         `json:"username,omitempty" yaml:"username,omitempty"`
	Password string         `json:"password,omitempty" yaml:"password,omitempty"`
	Config   map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// Address returns the address the transport should connect to, preferring
// the explicit IP over the external hostname.
func (h Host) Address() string {
	if h.IP != "" {
		return h.IP
	}
	return h.Hostname
}

// Domain is a named group of hosts sharing a type tag. The type is open-ended
// (e.g. the provider family under test), not an enumeration.
type Domain struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Hosts []Host `json:"hosts" yaml:"hosts"`
}

// HostsByRole returns the domain's hosts tagged with the given role, in
// inventory order.
func (d *Domain) HostsByRole(role string) []Host {
	var hosts []Host
	for _, host := range d.Hosts {
		if host.Role == role {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// RoleCount returns how many hosts in the domain carry the given role.
func (d *Domain) RoleCount(role string) int {
	count := 0
	for _, host := range d.Hosts {
		if host.Role == role {
			count++
		}
	}
	return count
}

// Roles returns the distinct roles present in the domain, in order of first
// appearance.
func (d *Domain) Roles() []string {
	seen := make(map[string]bool)
	var roles []string
	for _, host := range d.Hosts {
		if !seen[host.Role] {
			seen[host.Role] = true
			roles = append(roles, host.Role)
		}
	}
	return roles
}

// Inventory is the ordered set of configured domains. It is loaded once at
// startup and never mutated afterwards, so it can be freely shared between
// invocations without synchronization.
type Inventory struct {
	Domains []Domain `json:"domains" yaml:"domains"`
}

// NewInventory builds an inventory from the given domains. Domain names must
// be unique within one inventory, and host names unique within one domain:
// the host name identifies the host for role-object binding, so an aliased
// name would silently merge two machines.
func NewInventory(domains ...Domain) (*Inventory, error) {
	seen := make(map[string]bool)
	for _, d := range domains {
		if d.Name == "" {
			return nil, fmt.Errorf("inventory domain of type %q has no name", d.Type)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate domain name %q in inventory", d.Name)
		}
		seen[d.Name] = true

		hostSeen := make(map[string]bool, len(d.Hosts))
		for _, h := range d.Hosts {
			if hostSeen[h.Name] {
				return nil, fmt.Errorf("domain %q: duplicate host name %q", d.Name, h.Name)
			}
			hostSeen[h.Name] = true
		}
	}
	return &Inventory{Domains: domains}, nil
}

// Domain returns the domain with the given name, or nil if not present.
func (i *Inventory) Domain(name string) *Domain {
	for idx := range i.Domains {
		if i.Domains[idx].Name == name {
			return &i.Domains[idx]
		}
	}
	return nil
}

// DomainsOfType returns all domains with the given type tag, in inventory
// order.
func (i *Inventory) DomainsOfType(typ string) []*Domain {
	var domains []*Domain
	for idx := range i.Domains {
		if i.Domains[idx].Type == typ {
			domains = append(domains, &i.Domains[idx])
		}
	}
	return domains
}

// HostCount returns the total number of hosts across all domains.
func (i *Inventory) HostCount() int {
	count := 0
	for _, d := range i.Domains {
		count += len(d.Hosts)
	}
	return count
}
