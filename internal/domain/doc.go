// Package domain defines the core domain types for the multihost test
// orchestration engine.
//
// This package contains the fundamental entities and value objects: the
// machine inventory (domains and hosts), topology requirements, topology
// matching, fixture path expressions and topology marks.
//
// # Inventory
//
// Inventory is the immutable in-memory representation of the configured test
// machines. Each Domain carries an open-ended type tag and an ordered list of
// Hosts, each tagged with exactly one role. Domain types and host roles are
// plain strings; the engine never hardcodes known values.
//
// # Topologies
//
// Topology declares the minimum shape a test needs: an ordered list of
// TopologyDomain entries, each requiring a number of hosts per role within
// one domain of a given type. Match binds a Topology against an Inventory
// and produces an Assignment, or an UnsatisfiableError naming the
// requirement that could not be met.
//
// # Fixture paths
//
// Path expressions of the form "domainType.role" or "domainType.role[index]"
// reference hosts within a matched Assignment. TopologyMark couples a named
// Topology with a fixture-name to path mapping and is attached to test
// definitions.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Deterministic matching for reproducible test selection
package domain
