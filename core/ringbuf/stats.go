// File: core/ringbuf/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ringbuf

import "fmt"

// Stats is a point-in-time view of a ring for diagnostics.
// Fields are read independently while the ring may be in use, so a snapshot
// taken during concurrent traffic is approximate.
type Stats struct {
	Capacity     int
	WritePos     uint64
	ReadPos      uint64
	Used         int
	Free         int
	Full         bool
	TotalWritten uint64
	TotalRead    uint64
}

// Stats returns a snapshot of cursors, occupancy and lifetime counters.
func (r *RingBuffer) Stats() Stats {
	w := r.writePos.Load()
	rd := r.readPos.Load()
	used := (w - rd) & r.mask
	return Stats{
		Capacity:     len(r.storage),
		WritePos:     w,
		ReadPos:      rd,
		Used:         int(used),
		Free:         int(r.mask - used),
		Full:         used == r.mask,
		TotalWritten: r.totalWritten.Load(),
		TotalRead:    r.totalRead.Load(),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("rb: capacity=%d write=%d read=%d used=%d free=%d full=%t written=%d read_total=%d",
		s.Capacity, s.WritePos, s.ReadPos, s.Used, s.Free, s.Full, s.TotalWritten, s.TotalRead)
}
