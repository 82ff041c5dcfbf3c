// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration snapshots and debug introspection for rings
// and the executors driving them.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with reload listeners
//   - A metrics registry fed from ring counters
//   - Named debug probes exporting ring state
//
// Nothing here sits on a ring's hot path; probes load the ring's atomic
// cursors and counters when they are evaluated.
package control
