// Package api
// Author: momentics@gmail.com
//
// Lock-free byte ring contract for cross-thread producer/consumer.

package api

// ByteRing is a bounded single-producer/single-consumer byte ring.
//
// Write and Read never block and never fail: they move as many bytes as the
// ring can currently accept or supply and report the count. Write, FreeSpace
// and Full belong to the producer; Read, UsedSpace and Empty to the consumer.
type ByteRing interface {
	// Write copies up to len(p) bytes in; the excess is dropped.
	Write(p []byte) int
	// Read copies up to len(p) pending bytes out.
	Read(p []byte) int
	// Full reports that no further byte fits.
	Full() bool
	// Empty reports that no byte is pending.
	Empty() bool
	// UsedSpace returns bytes available to read.
	UsedSpace() int
	// FreeSpace returns bytes that may be written before Full.
	FreeSpace() int
	// Cap returns the storage length, one more than the usable capacity.
	Cap() int
}
