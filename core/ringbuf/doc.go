// Package ringbuf
// Author: momentics <momentics@gmail.com>
//
// Fixed-capacity, allocation-free circular byte buffer for exactly one
// producer and one consumer running concurrently without locks.
//
// Storage is supplied by the caller and must have a power-of-two length so
// cursor wraparound is a bitmask. The producer owns the write cursor and the
// consumer owns the read cursor; each side only loads the other's cursor to
// size its transfer. Cursors are published with atomic stores after the data
// copy, so a cursor observed by the other side always covers bytes that are
// already in place.
//
// Backpressure is expressed through short transfers: Write and Read return how
// many bytes actually moved. Two concurrent writers or two concurrent readers
// are not supported and are not detected.
package ringbuf
