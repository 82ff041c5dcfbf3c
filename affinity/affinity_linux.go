//go:build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-ring/api"
)

// cpuSetSize is CPU_SETSIZE, the number of CPUs a unix.CPUSet can describe.
const cpuSetSize = 1024

// setAffinityPlatform sets thread affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= cpuSetSize {
		return api.InvalidArgument("affinity: cpu id out of range").
			WithContext("cpu", cpuID)
	}
	var set unix.CPUSet
	set.Set(cpuID)
	// pid 0 is the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}
