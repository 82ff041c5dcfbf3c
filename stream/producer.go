// File: stream/producer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stream

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-ring/api"
)

// Producer queues chunks that the ring could not accept yet and pushes them
// in FIFO order as space frees up. It is not safe for concurrent use and must
// live on the ring's producer goroutine.
type Producer struct {
	ring    api.ByteRing
	backlog *queue.Queue
	offset  int // bytes of the head chunk already written
	pending int
}

// NewProducer wraps ring.
func NewProducer(ring api.ByteRing) *Producer {
	return &Producer{
		ring:    ring,
		backlog: queue.New(),
	}
}

// Enqueue appends p to the backlog and flushes as much as fits. The slice is
// retained until fully written; callers must not modify it meanwhile.
// Returns the bytes moved into the ring by this call, which may include
// older backlog.
func (p *Producer) Enqueue(b []byte) int {
	if len(b) > 0 {
		p.backlog.Add(b)
		p.pending += len(b)
	}
	return p.Flush()
}

// Flush writes queued bytes until the backlog is empty or the ring is full.
func (p *Producer) Flush() int {
	total := 0
	for p.backlog.Length() > 0 {
		chunk := p.backlog.Peek().([]byte)
		n := p.ring.Write(chunk[p.offset:])
		total += n
		p.offset += n
		p.pending -= n
		if p.offset < len(chunk) {
			break
		}
		p.backlog.Remove()
		p.offset = 0
	}
	return total
}

// Pending returns the number of queued bytes not yet in the ring.
func (p *Producer) Pending() int { return p.pending }

// Chunks returns the number of queued chunks, counting a partially written one.
func (p *Producer) Chunks() int { return p.backlog.Length() }
