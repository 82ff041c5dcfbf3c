// File: stream/retry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stream

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/momentics/hioload-ring/api"
)

// WriteAll keeps writing p into ring until all of it is accepted or ctx is
// done. Between empty attempts it yields (backoff <= 0) or sleeps for
// backoff. Returns the bytes written and ctx.Err() on cancellation.
func WriteAll(ctx context.Context, ring api.ByteRing, p []byte, backoff time.Duration) (int, error) {
	written := 0
	for written < len(p) {
		n := ring.Write(p[written:])
		written += n
		if written == len(p) {
			break
		}
		if n == 0 {
			if err := pause(ctx, backoff); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// ReadFull keeps reading from ring until dst is filled or ctx is done.
func ReadFull(ctx context.Context, ring api.ByteRing, dst []byte, backoff time.Duration) (int, error) {
	read := 0
	for read < len(dst) {
		n := ring.Read(dst[read:])
		read += n
		if read == len(dst) {
			break
		}
		if n == 0 {
			if err := pause(ctx, backoff); err != nil {
				return read, err
			}
		}
	}
	return read, nil
}

// Drain reads everything currently pending in ring and writes it to w using
// scratch as the transfer buffer. It stops when the ring reports empty; bytes
// the producer publishes concurrently may or may not be included.
func Drain(ring api.ByteRing, w io.Writer, scratch []byte) (int64, error) {
	if len(scratch) == 0 {
		return 0, api.InvalidArgument("stream: drain needs a non-empty scratch buffer")
	}
	var total int64
	for {
		n := ring.Read(scratch)
		if n == 0 {
			return total, nil
		}
		m, err := w.Write(scratch[:n])
		total += int64(m)
		if err != nil {
			return total, err
		}
		if m < n {
			return total, io.ErrShortWrite
		}
	}
}

func pause(ctx context.Context, backoff time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if backoff <= 0 {
		runtime.Gosched()
		return nil
	}
	t := time.NewTimer(backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
