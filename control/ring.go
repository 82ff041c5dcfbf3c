// control/ring.go
// Author: momentics <momentics@gmail.com>
//
// Bridges ring counters into probes and the metrics registry.

package control

import (
	"github.com/momentics/hioload-ring/core/ringbuf"
)

// StatsSource is anything that can snapshot ring statistics.
type StatsSource interface {
	Stats() ringbuf.Stats
}

// RegisterRingProbes registers "<name>.stats" returning a ringbuf.Stats snapshot.
func RegisterRingProbes(dp *DebugProbes, name string, src StatsSource) {
	dp.RegisterProbe(name+".stats", func() any {
		return src.Stats()
	})
}

// PublishRingMetrics copies the current ring counters into mr.
func PublishRingMetrics(mr *MetricsRegistry, name string, src StatsSource) {
	s := src.Stats()
	mr.Set(name+".capacity", s.Capacity)
	mr.Set(name+".used", s.Used)
	mr.Set(name+".free", s.Free)
	mr.Set(name+".total_written", s.TotalWritten)
	mr.Set(name+".total_read", s.TotalRead)
}
