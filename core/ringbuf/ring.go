// File: core/ringbuf/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffer is a bounded circular byte buffer over caller-owned storage with
// atomic read/write cursors, each padded onto its own cache line.
// Implements api.ByteRing.

package ringbuf

import (
	"sync/atomic"

	"github.com/momentics/hioload-ring/api"
)

// Ensure compile-time interface compliance.
var _ api.ByteRing = (*RingBuffer)(nil)

// RingBuffer is a lock-free byte ring (single-producer, single-consumer safe).
//
// One storage slot is always left unused so that "empty" (writePos == readPos)
// and "full" (writePos one behind readPos) are distinguishable from the two
// cursors alone. Usable capacity is therefore Cap()-1.
type RingBuffer struct {
	storage []byte
	mask    uint64
	_       [64]byte // Keeps read-only fields off the producer's line

	// Producer-owned.
	writePos     atomic.Uint64
	totalWritten atomic.Uint64
	_            [48]byte // Padding for hot/cold separation

	// Consumer-owned.
	readPos   atomic.Uint64
	totalRead atomic.Uint64
	_         [48]byte // Padding to separate readPos from other data
}

// New binds a ring to storage, using all of it. len(storage) must be a power
// of two.
func New(storage []byte) (*RingBuffer, error) {
	return NewWithCapacity(storage, len(storage))
}

// NewWithCapacity binds a ring to the first capacity bytes of storage.
// capacity must be a power of two no larger than len(storage). The ring never
// allocates, frees or grows storage and must not outlive it.
func NewWithCapacity(storage []byte, capacity int) (*RingBuffer, error) {
	if len(storage) == 0 {
		return nil, api.InvalidArgument("ringbuf: storage must be non-empty")
	}
	if capacity <= 0 {
		return nil, api.InvalidArgument("ringbuf: capacity must be positive").
			WithContext("capacity", capacity)
	}
	if !IsPowerOfTwo(capacity) {
		return nil, api.InvalidArgument("ringbuf: capacity must be a power of two").
			WithContext("capacity", capacity)
	}
	if capacity > len(storage) {
		return nil, api.InvalidArgument("ringbuf: capacity exceeds storage").
			WithContext("capacity", capacity).
			WithContext("storage", len(storage))
	}
	return &RingBuffer{
		storage: storage[:capacity:capacity],
		mask:    uint64(capacity - 1),
	}, nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Write copies up to len(data) bytes into the ring and returns the number
// copied. Bytes that do not fit are dropped; callers needing guaranteed
// delivery retry the remainder. Producer only.
func (r *RingBuffer) Write(data []byte) int {
	w := r.writePos.Load()
	free := r.mask - ((w - r.readPos.Load()) & r.mask)

	n := uint64(len(data))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	toEnd := uint64(len(r.storage)) - w
	if toEnd >= n {
		copy(r.storage[w:w+n], data[:n])
	} else {
		copy(r.storage[w:], data[:toEnd])
		copy(r.storage, data[toEnd:n])
	}

	r.totalWritten.Add(n)
	// Publish only after the copy so the consumer never sees stale bytes.
	r.writePos.Store((w + n) & r.mask)
	return int(n)
}

// Read copies up to len(dst) pending bytes out of the ring and returns the
// number copied. Returns 0 at once when the ring is empty. Consumer only.
func (r *RingBuffer) Read(dst []byte) int {
	rd := r.readPos.Load()
	used := (r.writePos.Load() - rd) & r.mask

	n := uint64(len(dst))
	if n > used {
		n = used
	}
	if n == 0 {
		return 0
	}

	toEnd := uint64(len(r.storage)) - rd
	if toEnd >= n {
		copy(dst[:n], r.storage[rd:rd+n])
	} else {
		copy(dst[:toEnd], r.storage[rd:])
		copy(dst[toEnd:n], r.storage[:n-toEnd])
	}

	r.totalRead.Add(n)
	// Release the slots only after they have been copied out.
	r.readPos.Store((rd + n) & r.mask)
	return int(n)
}

// Full reports whether no further byte can be written.
func (r *RingBuffer) Full() bool {
	return uint64(r.UsedSpace()) == r.mask
}

// Empty reports whether no byte is pending.
func (r *RingBuffer) Empty() bool {
	return r.writePos.Load() == r.readPos.Load()
}

// UsedSpace returns the number of bytes available to read.
func (r *RingBuffer) UsedSpace() int {
	return int((r.writePos.Load() - r.readPos.Load()) & r.mask)
}

// FreeSpace returns the number of bytes that may be written before Full.
func (r *RingBuffer) FreeSpace() int {
	return int(r.mask) - r.UsedSpace()
}

// Len is UsedSpace.
func (r *RingBuffer) Len() int {
	return r.UsedSpace()
}

// Cap returns the storage length bound at construction.
func (r *RingBuffer) Cap() int {
	return len(r.storage)
}

// TotalWritten returns the number of bytes ever accepted by Write.
func (r *RingBuffer) TotalWritten() uint64 {
	return r.totalWritten.Load()
}

// TotalRead returns the number of bytes ever returned by Read.
func (r *RingBuffer) TotalRead() uint64 {
	return r.totalRead.Load()
}
