package domain

// Well-known topology marks that test authors can attach directly instead of
// spelling out custom requirements. These are plain data layered over the
// generic engine; nothing in the matcher or resolver special-cases them.
var (
	KnownTopologyClient = TopologyMark{
		Name: "client",
		Topology: NewTopology(
			NewTopologyDomain("sssd", map[string]int{"client": 1}),
		),
		Fixtures: FixtureMapping{"client": "sssd.client[0]"},
	}

	KnownTopologyLDAP = TopologyMark{
		Name: "ldap",
		Topology: NewTopology(
			NewTopologyDomain("sssd", map[string]int{"client": 1, "ldap": 1}),
		),
		Fixtures: FixtureMapping{
			"client":   "sssd.client[0]",
			"ldap":     "sssd.ldap[0]",
			"provider": "sssd.ldap[0]",
		},
	}

	KnownTopologyIPA = TopologyMark{
		Name: "ipa",
		Topology: NewTopology(
			NewTopologyDomain("sssd", map[string]int{"client": 1, "ipa": 1}),
		),
		Fixtures: FixtureMapping{
			"client":   "sssd.client[0]",
			"ipa":      "sssd.ipa[0]",
			"provider": "sssd.ipa[0]",
		},
	}

	KnownTopologyAD = TopologyMark{
		Name: "ad",
		Topology: NewTopology(
			NewTopologyDomain("sssd", map[string]int{"client": 1, "ad": 1}),
		),
		Fixtures: FixtureMapping{
			"client":   "sssd.client[0]",
			"ad":       "sssd.ad[0]",
			"provider": "sssd.ad[0]",
		},
	}

	KnownTopologySamba = TopologyMark{
		Name: "samba",
		Topology: NewTopology(
			NewTopologyDomain("sssd", map[string]int{"client": 1, "samba": 1}),
		),
		Fixtures: FixtureMapping{
			"client":   "sssd.client[0]",
			"samba":    "sssd.samba[0]",
			"provider": "sssd.samba[0]",
		},
	}
)

// KnownTopology looks up a preset mark by name.
func KnownTopology(name string) (TopologyMark, bool) {
	for _, mark := range KnownTopologies() {
		if mark.Name == name {
			return mark, true
		}
	}
	return TopologyMark{}, false
}

// KnownTopologies returns all preset marks in a stable order.
func KnownTopologies() []TopologyMark {
	return []TopologyMark{
		KnownTopologyClient,
		KnownTopologyLDAP,
		KnownTopologyIPA,
		KnownTopologyAD,
		KnownTopologySamba,
	}
}
