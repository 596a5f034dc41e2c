package adapter

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	"multihost/internal/domain"
)

// ProbeResult records reachability of one inventory host.
type ProbeResult struct {
	Domain    string `json:"domain" yaml:"domain"`
	Host      string `json:"host" yaml:"host"`
	Address   string `json:"address" yaml:"address"`
	Reachable bool   `json:"reachable" yaml:"reachable"`
}

// ProbeReport is the outcome of an inventory preflight.
type ProbeReport struct {
	Results []ProbeResult `json:"results" yaml:"results"`
}

// Unreachable returns the results for hosts that did not answer.
func (r *ProbeReport) Unreachable() []ProbeResult {
	var out []ProbeResult
	for _, res := range r.Results {
		if !res.Reachable {
			out = append(out, res)
		}
	}
	return out
}

// InventoryProbe verifies that the hosts named by an inventory are reachable
// on their SSH port before a run starts, so misconfigured inventories fail
// fast with an actionable report instead of mid-run connection errors.
type InventoryProbe struct {
	port    int
	timeout time.Duration
}

// NewInventoryProbe creates a probe checking the given TCP port. Port 22 and
// a 2 minute scan timeout are used when zero values are passed.
func NewInventoryProbe(port int, timeout time.Duration) *InventoryProbe {
	if port == 0 {
		port = 22
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &InventoryProbe{port: port, timeout: timeout}
}

// Run scans every host in the inventory and reports reachability per host.
func (p *InventoryProbe) Run(ctx context.Context, inv *domain.Inventory) (*ProbeReport, error) {
	if inv.HostCount() == 0 {
		return &ProbeReport{}, nil
	}

	// Hosts may share an address (e.g. one machine serving two inventory
	// entries); scan each address once.
	targets := make([]string, 0, inv.HostCount())
	seen := make(map[string]bool, inv.HostCount())
	for _, d := range inv.Domains {
		for _, h := range d.Hosts {
			addr := h.Address()
			if !seen[addr] {
				seen[addr] = true
				targets = append(targets, addr)
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	scanner, err := nmap.NewScanner(
		ctx,
		nmap.WithTargets(targets...),
		nmap.WithPorts(strconv.Itoa(p.port)),
		nmap.WithSkipHostDiscovery(),
	)
	if err != nil {
		return nil, fmt.Errorf("create scanner: %w", err)
	}

	log.Printf("Probing %d inventory hosts on port %d", len(targets), p.port)
	result, warnings, err := scanner.Run()
	if err != nil {
		return nil, fmt.Errorf("probe scan failed: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		log.Printf("Probe warnings: %v", *warnings)
	}

	reachable := make(map[string]bool)
	for _, h := range result.Hosts {
		up := false
		for _, port := range h.Ports {
			if port.State.State == "open" {
				up = true
				break
			}
		}
		if !up {
			continue
		}
		for _, addr := range h.Addresses {
			reachable[addr.Addr] = true
		}
		for _, name := range h.Hostnames {
			reachable[name.Name] = true
		}
	}

	report := buildReport(inv, reachable)

	log.Printf("Probe complete: %d/%d hosts reachable",
		len(report.Results)-len(report.Unreachable()), len(report.Results))
	return report, nil
}

// buildReport emits one result per inventory host, in inventory order, so
// hosts sharing an address each keep their own row.
func buildReport(inv *domain.Inventory, reachable map[string]bool) *ProbeReport {
	report := &ProbeReport{}
	for _, d := range inv.Domains {
		for _, h := range d.Hosts {
			addr := h.Address()
			report.Results = append(report.Results, ProbeResult{
				Domain:    d.Name,
				Host:      h.Name,
				Address:   addr,
				Reachable: reachable[addr],
			})
		}
	}
	return report
}
