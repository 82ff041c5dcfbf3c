//go:build !linux

// File: pool/region_other.go
// Author: momentics <momentics@gmail.com>
//
// Heap-backed regions for platforms without the mmap path.

package pool

func allocRegion(size int) ([]byte, bool, error) {
	return make([]byte, size), false, nil
}

func freeRegion([]byte) error { return nil }
