// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.
// Producer and consumer executors of a ring pin themselves here so the two
// cursors stay on distinct cores.

package affinity

import (
	"runtime"

	"github.com/momentics/hioload-ring/api"
)

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns an error wrapping api.ErrNotSupported.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return api.InvalidArgument("affinity: cpu id must be non-negative").
			WithContext("cpu", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// Pin locks the calling goroutine to its OS thread and binds that thread to
// cpuID. The returned unpin undoes the thread lock; it is safe to call even
// when Pin failed.
func Pin(cpuID int) (unpin func(), err error) {
	runtime.LockOSThread()
	if err := SetAffinity(cpuID); err != nil {
		return runtime.UnlockOSThread, err
	}
	return runtime.UnlockOSThread, nil
}
