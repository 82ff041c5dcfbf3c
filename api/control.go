// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control manages configuration snapshots, runtime metrics and debug probes
// for a ring and the executors around it.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error
	OnReload(fn func(cfg map[string]any))
	SetMetric(key string, value any)
	RegisterDebugProbe(name string, fn func() any)
	// Stats merges metrics with probe output; probe keys carry a "debug." prefix.
	Stats() map[string]any
}
