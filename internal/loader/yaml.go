// Package loader reads multihost inventory files. The engine itself never
// parses files; it consumes the immutable Inventory this package produces.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"multihost/internal/domain"
)

// InventoryYAML represents the inventory file structure.
//
//	domains:
//	- name: ldap.test
//	  type: sssd
//	  hosts:
//	  - name: client
//	    external_hostname: client.ldap.test
//	    role: client
type InventoryYAML struct {
	Domains []DomainYAML `yaml:"domains"`
}

// DomainYAML represents one domain entry.
type DomainYAML struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Hosts []HostYAML `yaml:"hosts"`
}

// HostYAML represents one host entry.
type HostYAML struct {
	Name             string         `yaml:"name"`
	ExternalHostname string         `yaml:"external_hostname"`
	IP               string         `yaml:"ip,omitempty"`
	Role             string         `yaml:"role"`
	Username         string         `yaml:"username,omitempty"`
	Password         string         `yaml:"password,omitempty"`
	Config           map[string]any `yaml:"config,omitempty"`
}

// LoadYAML loads an inventory from a YAML file.
func LoadYAML(path string) (*domain.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses an inventory from YAML bytes.
func ParseYAML(data []byte) (*domain.Inventory, error) {
	var yamlData InventoryYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToInventory(&yamlData)
}

func convertYAMLToInventory(y *InventoryYAML) (*domain.Inventory, error) {
	domains := make([]domain.Domain, 0, len(y.Domains))

	for _, d := range y.Domains {
		if d.Type == "" {
			d.Type = "default"
		}

		hosts := make([]domain.Host, 0, len(d.Hosts))
		for _, h := range d.Hosts {
			if h.Name == "" {
				return nil, fmt.Errorf("domain %q: host without a name", d.Name)
			}
			if h.ExternalHostname == "" {
				return nil, fmt.Errorf("domain %q: host %q has no external_hostname", d.Name, h.Name)
			}
			if h.Role == "" {
				return nil, fmt.Errorf("domain %q: host %q has no role", d.Name, h.Name)
			}

			hosts = append(hosts, domain.Host{
				Name:     h.Name,
				Hostname: h.ExternalHostname,
				IP:       h.IP,
				Role:     h.Role,
				Username: h.Username,
				Password: h.Password,
				Config:   h.Config,
			})
		}

		domains = append(domains, domain.Domain{
			Name:  d.Name,
			Type:  d.Type,
			Hosts: hosts,
		})
	}

	return domain.NewInventory(domains...)
}

// ExportYAML renders an inventory back into the file format.
func ExportYAML(inv *domain.Inventory) ([]byte, error) {
	yamlData := InventoryYAML{}

	for _, d := range inv.Domains {
		dy := DomainYAML{Name: d.Name, Type: d.Type}
		for _, h := range d.Hosts {
			dy.Hosts = append(dy.Hosts, HostYAML{
				Name:             h.Name,
				ExternalHostname: h.Hostname,
				IP:               h.IP,
				Role:             h.Role,
				Username:         h.Username,
				Password:         h.Password,
				Config:           h.Config,
			})
		}
		yamlData.Domains = append(yamlData.Domains, dy)
	}

	return yaml.Marshal(yamlData)
}
