// Package adapter implements the external-facing collaborators of the
// multihost engine: the SSH transport used by role objects to execute
// commands on remote hosts, and the nmap-based inventory preflight probe
// that verifies configured hosts are reachable before a run starts.
//
// The core engine never talks to the network itself; everything here sits
// behind small interfaces so tests run against fakes.
package adapter
