//go:build linux

// File: pool/region_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux regions are anonymous private mappings, page aligned and off-heap.

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func allocRegion(size int) ([]byte, bool, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, fmt.Errorf("pool: mmap %d bytes: %w", size, err)
	}
	return data, true, nil
}

func freeRegion(data []byte) error {
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("pool: munmap: %w", err)
	}
	return nil
}
