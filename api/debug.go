// Package api
// Author: momentics
//
// Live debug support: rings and harnesses publish snapshots through named probes.

package api

// Debug exposes runtime introspection of registered components.
type Debug interface {
	// DumpState evaluates every probe and returns the results keyed by name.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}
