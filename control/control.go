// control/control.go
// Author: momentics <momentics@gmail.com>
//
// Control implements api.Control on top of the config, metrics and debug
// primitives of this package.

package control

import (
	"github.com/momentics/hioload-ring/api"
)

var _ api.Control = (*Control)(nil)

// Control aggregates a ConfigStore, a MetricsRegistry and DebugProbes.
type Control struct {
	config  *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

// New returns a Control with platform probes pre-registered.
func New() *Control {
	c := &Control{
		config:  NewConfigStore(),
		metrics: NewMetricsRegistry(),
		debug:   NewDebugProbes(),
	}
	RegisterPlatformProbes(c.debug)
	return c
}

func (c *Control) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *Control) SetConfig(cfg map[string]any) error {
	if cfg == nil {
		return api.InvalidArgument("control: nil config")
	}
	c.config.SetConfig(cfg)
	return nil
}

func (c *Control) OnReload(fn func(map[string]any)) {
	c.config.OnReload(fn)
}

func (c *Control) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *Control) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Metrics exposes the underlying registry.
func (c *Control) Metrics() *MetricsRegistry { return c.metrics }

// Debug exposes the underlying probe registry.
func (c *Control) Debug() *DebugProbes { return c.debug }

// WatchRing registers ring probes under name and publishes its counters once.
func (c *Control) WatchRing(name string, src StatsSource) {
	RegisterRingProbes(c.debug, name, src)
	PublishRingMetrics(c.metrics, name, src)
}

func (c *Control) Stats() map[string]any {
	combined := c.metrics.GetSnapshot()
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}
