// Package workflow validates HR approval/task process graphs and dry-runs them.
//
// The editor hands over a Snapshot of typed nodes and directed edges. Validate
// reports structural problems as data, never as errors:
//
//   - error: the graph cannot run (missing or duplicate start, missing end,
//     edges into a start or out of an end, cycles)
//   - warning: advisory connectivity problems
//
// Simulate reuses the validator, orders the nodes with TopoSort and produces a
// best-case trace with synthetic per-kind durations. All operations are pure
// functions of the snapshot and safe for concurrent use.
package workflow
