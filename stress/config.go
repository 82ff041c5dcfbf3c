// File: stress/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stress

import (
	"time"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/core/ringbuf"
)

// Config holds parameters immutable per run.
type Config struct {
	Capacity    int           // Ring storage size, power of two
	Duration    time.Duration // How long producer and consumer run
	MaxChunk    int           // Upper bound (exclusive) of a single transfer request
	Seed        int64         // Seed for the producer; the consumer uses Seed+1
	ProducerCPU int           // CPU to pin the producer to, -1 to leave unpinned
	ConsumerCPU int           // CPU to pin the consumer to, -1 to leave unpinned
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		Capacity:    1024,
		Duration:    2 * time.Second,
		MaxChunk:    1024, // Transfers of 0..1023 bytes
		Seed:        time.Now().UnixNano(),
		ProducerCPU: -1,
		ConsumerCPU: -1,
	}
}

// Validate rejects configurations the harness cannot run.
func (c Config) Validate() error {
	switch {
	case !ringbuf.IsPowerOfTwo(c.Capacity):
		return api.InvalidArgument("stress: capacity must be a power of two").
			WithContext("capacity", c.Capacity)
	case c.Duration <= 0:
		return api.InvalidArgument("stress: duration must be positive").
			WithContext("duration", c.Duration)
	case c.MaxChunk <= 0:
		return api.InvalidArgument("stress: max chunk must be positive").
			WithContext("max_chunk", c.MaxChunk)
	}
	return nil
}

func (c Config) asMap() map[string]any {
	return map[string]any{
		"capacity":     c.Capacity,
		"duration":     c.Duration.String(),
		"max_chunk":    c.MaxChunk,
		"seed":         c.Seed,
		"producer_cpu": c.ProducerCPU,
		"consumer_cpu": c.ConsumerCPU,
	}
}
