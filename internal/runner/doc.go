// Package runner implements the test-orchestration engine: expanding test
// definitions into invocation plans, resolving fixtures into role objects
// and sequencing setup and rollback per invocation.
//
// # Planning
//
// Plan matches every topology mark of every test against the inventory and
// produces an ordered, reproducible list of invocations. Marks that cannot
// be matched become skipped invocations carrying an actionable reason; a
// test with no marks runs unconditionally without host fixtures. Topology
// marks form the outer expansion loop, value parameters the inner loop, so
// the invocation identifier pattern is testName[valueParam](markName).
//
// # Lifecycle
//
// Each invocation moves through Pending, Resolving, Running, TearingDown and
// Done, or short-circuits from Pending to Skipped when its mark was
// unsatisfiable. Resolving constructs role objects lazily and memoizes them
// per resolved host, so two fixture names pointing at the same host share
// one object within the invocation and never across invocations. Teardown
// always runs for every constructed object, in exact reverse construction
// order, and rollback faults are collected as supplementary errors that
// never replace the primary outcome.
package runner
