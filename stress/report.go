// File: stress/report.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stress

import (
	"errors"
	"fmt"
	"time"

	"github.com/momentics/hioload-ring/core/ringbuf"
)

// ErrOverrun reports that the consumer saw more bytes than were produced.
var ErrOverrun = errors.New("stress: consumer overran producer")

// MismatchError reports a byte that differs from Pattern at its position.
type MismatchError struct {
	Pos  uint64
	Got  byte
	Want byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("stress: mismatch at %d: got 0x%x != expected 0x%x", e.Pos, e.Got, e.Want)
}

// Pattern is the byte expected at logical stream position pos.
func Pattern(pos uint64) byte {
	return byte(pos*5 + 100)
}

// Report summarises a run.
type Report struct {
	Produced    uint64 // bytes accepted by the ring
	Consumed    uint64 // bytes verified by the consumer while running
	Drained     uint64 // bytes verified after both sides stopped
	Writes      uint64
	Reads       uint64
	ShortWrites uint64 // writes that moved fewer bytes than requested
	EmptyReads  uint64 // reads that found nothing pending
	Elapsed     time.Duration

	// Transfer size percentiles over non-empty transfers.
	WriteP50, WriteP99 int64
	ReadP50, ReadP99   int64

	Final ringbuf.Stats
}

// Throughput returns verified bytes per second.
func (r Report) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Consumed+r.Drained) / r.Elapsed.Seconds()
}
