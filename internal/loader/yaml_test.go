package loader

import (
	"strings"
	"testing"
)

const sampleInventory = `
domains:
- name: ldap.test
  type: sssd
  hosts:
  - name: client
    external_hostname: client.ldap.test
    role: client
    username: root
    password: vagrant
  - name: ldap
    external_hostname: master.ldap.test
    ip: 10.0.0.10
    role: ldap
    config:
      binddn: cn=Directory Manager
- name: ad.test
  type: ad
  hosts:
  - name: dc
    external_hostname: dc.ad.test
    role: dc
`

func TestParseYAML(t *testing.T) {
	t.Run("parses domains and hosts in order", func(t *testing.T) {
		inv, err := ParseYAML([]byte(sampleInventory))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(inv.Domains) != 2 {
			t.Fatalf("expected 2 domains, got %d", len(inv.Domains))
		}

		ldap := inv.Domains[0]
		if ldap.Name != "ldap.test" || ldap.Type != "sssd" {
			t.Errorf("unexpected first domain: %+v", ldap)
		}
		if len(ldap.Hosts) != 2 {
			t.Fatalf("expected 2 hosts, got %d", len(ldap.Hosts))
		}

		client := ldap.Hosts[0]
		if client.Name != "client" || client.Hostname != "client.ldap.test" || client.Role != "client" {
			t.Errorf("unexpected client host: %+v", client)
		}
		if client.Username != "root" || client.Password != "vagrant" {
			t.Errorf("expected credentials to be loaded: %+v", client)
		}

		master := ldap.Hosts[1]
		if master.IP != "10.0.0.10" {
			t.Errorf("expected ip to be loaded, got %q", master.IP)
		}
		if master.Address() != "10.0.0.10" {
			t.Errorf("expected address to prefer ip, got %q", master.Address())
		}
		if master.Config["binddn"] != "cn=Directory Manager" {
			t.Errorf("expected host config to be loaded: %+v", master.Config)
		}
	})

	t.Run("defaults missing domain type", func(t *testing.T) {
		inv, err := ParseYAML([]byte(`
domains:
- name: plain.test
  hosts:
  - name: host0
    external_hostname: host0.plain.test
    role: client
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Domains[0].Type != "default" {
			t.Errorf("expected default type, got %q", inv.Domains[0].Type)
		}
	})

	t.Run("rejects incomplete hosts", func(t *testing.T) {
		cases := map[string]string{
			"missing role": `
domains:
- name: d
  type: sssd
  hosts:
  - name: h
    external_hostname: h.d
`,
			"missing hostname": `
domains:
- name: d
  type: sssd
  hosts:
  - name: h
    role: client
`,
			"missing name": `
domains:
- name: d
  type: sssd
  hosts:
  - external_hostname: h.d
    role: client
`,
		}

		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := ParseYAML([]byte(input)); err == nil {
					t.Error("expected parse error")
				}
			})
		}
	})

	t.Run("rejects duplicate domain names", func(t *testing.T) {
		input := `
domains:
- name: same
  type: sssd
- name: same
  type: ad
`
		if _, err := ParseYAML([]byte(input)); err == nil {
			t.Error("expected duplicate domain error")
		}
	})

	t.Run("round trips through export", func(t *testing.T) {
		inv, err := ParseYAML([]byte(sampleInventory))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := ExportYAML(inv)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		again, err := ParseYAML(out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again.Domains) != len(inv.Domains) {
			t.Errorf("expected %d domains after round trip, got %d", len(inv.Domains), len(again.Domains))
		}
		if !strings.Contains(string(out), "external_hostname") {
			t.Errorf("expected exported YAML to use inventory field names:\n%s", out)
		}
	})
}
