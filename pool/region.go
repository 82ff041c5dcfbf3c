// File: pool/region.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Power-of-two storage regions for byte rings. The ring itself never
// allocates; callers obtain storage here, bind a ring to it and release the
// region once the ring is retired.

package pool

import (
	"sync"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/core/ringbuf"
)

// Region is a contiguous, power-of-two sized byte region.
type Region struct {
	mu       sync.Mutex
	data     []byte
	mapped   bool
	released bool
}

// NewRegion provisions a region of at least size bytes, rounded up to the
// next power of two. On Linux the memory is an anonymous private mapping
// outside the Go heap; elsewhere it is an ordinary slice.
func NewRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, api.InvalidArgument("pool: region size must be positive").
			WithContext("size", size)
	}
	n := NextPowerOfTwo(size)
	data, mapped, err := allocRegion(n)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, mapped: mapped}, nil
}

// Bytes returns the region's memory. Not valid after Release.
func (r *Region) Bytes() []byte { return r.data }

// Len returns the region size in bytes.
func (r *Region) Len() int { return len(r.data) }

// Mapped reports whether the region lives in an OS mapping rather than the heap.
func (r *Region) Mapped() bool { return r.mapped }

// Release returns the memory to the OS. Calling it more than once is a no-op.
// No ring bound to the region may be used afterwards.
func (r *Region) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	r.released = true
	data := r.data
	r.data = nil
	if !r.mapped {
		return nil
	}
	return freeRegion(data)
}

// NewRing provisions a region of at least size bytes and binds a ring to it.
func NewRing(size int) (*ringbuf.RingBuffer, *Region, error) {
	region, err := NewRegion(size)
	if err != nil {
		return nil, nil, err
	}
	ring, err := ringbuf.New(region.Bytes())
	if err != nil {
		_ = region.Release()
		return nil, nil, err
	}
	return ring, region, nil
}

// NextPowerOfTwo rounds n up to a power of two. Values below 1 yield 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	v := uint64(n - 1)
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return int(v + 1)
}
