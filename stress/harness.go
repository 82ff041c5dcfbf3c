// File: stress/harness.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Two-goroutine SPSC stress run: one producer emits Pattern bytes in randomly
// sized writes, one consumer verifies every byte it reads at its logical
// position. Both stop on a shared atomic flag raised when the run's context
// ends or either side fails.

package stress

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/elastic/go-hdrhistogram"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-ring/affinity"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/core/ringbuf"
	"github.com/momentics/hioload-ring/pool"
)

// RingName is the key prefix under which the harness publishes ring metrics.
const RingName = "stress.ring"

// Option customizes a run.
type Option func(*harness)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(h *harness) {
		h.logger = l
	}
}

// WithControl publishes config, ring probes and final metrics into c.
func WithControl(c *control.Control) Option {
	return func(h *harness) {
		h.control = c
	}
}

type harness struct {
	cfg     Config
	logger  *zap.Logger
	control *control.Control
	ring    *ringbuf.RingBuffer
	stop    atomic.Bool

	// Producer side.
	produced    uint64
	writes      uint64
	shortWrites uint64
	writeSizes  *hdrhistogram.Histogram

	// Consumer side.
	consumed   uint64
	reads      uint64
	emptyReads uint64
	readSizes  *hdrhistogram.Histogram
}

// Run executes a stress run for cfg.Duration or until ctx ends, whichever is
// first. Cancellation is a normal stop, not an error. A data mismatch returns
// *MismatchError and an overrun ErrOverrun, each with the partial report.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	maxSize := int64(max(cfg.MaxChunk, cfg.Capacity))
	h := &harness{
		cfg:        cfg,
		logger:     zap.NewNop(),
		writeSizes: hdrhistogram.New(1, maxSize, 2),
		readSizes:  hdrhistogram.New(1, maxSize, 2),
	}
	for _, opt := range opts {
		opt(h)
	}

	ring, region, err := pool.NewRing(cfg.Capacity)
	if err != nil {
		return Report{}, err
	}
	defer func() {
		if err := region.Release(); err != nil {
			h.logger.Warn("release ring storage", zap.Error(err))
		}
	}()
	h.ring = ring

	if h.control != nil {
		if err := h.control.SetConfig(cfg.asMap()); err != nil {
			return Report{}, err
		}
		h.control.WatchRing(RingName, ring)
	}

	h.logger.Info("stress run starting",
		zap.Int("capacity", cfg.Capacity),
		zap.Duration("duration", cfg.Duration),
		zap.Int("max_chunk", cfg.MaxChunk),
		zap.Int64("seed", cfg.Seed),
		zap.Bool("mmap", region.Mapped()),
	)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		<-gctx.Done()
		h.stop.Store(true)
		return nil
	})
	g.Go(h.produce)
	g.Go(h.consume)
	err = g.Wait()
	elapsed := time.Since(start)

	// Both sides have stopped; this goroutine is now the only reader.
	var drained uint64
	if err == nil {
		drained, err = h.drain()
	}

	rep := h.report(elapsed, drained)
	if h.control != nil {
		control.PublishRingMetrics(h.control.Metrics(), RingName, ring)
		h.control.SetMetric("stress.throughput_bps", rep.Throughput())
	}
	if err != nil {
		h.logger.Error("stress run failed", zap.Error(err), zap.Stringer("ring", rep.Final))
		return rep, err
	}
	h.logger.Info("stress run finished",
		zap.Uint64("produced", rep.Produced),
		zap.Uint64("consumed", rep.Consumed),
		zap.Uint64("drained", rep.Drained),
		zap.Uint64("short_writes", rep.ShortWrites),
		zap.Uint64("empty_reads", rep.EmptyReads),
		zap.Duration("elapsed", rep.Elapsed),
		zap.Stringer("ring", rep.Final),
	)
	return rep, nil
}

func (h *harness) pin(role string, cpu int) {
	if cpu < 0 {
		return
	}
	// The goroutine exits still locked, which retires the pinned thread.
	unpin, err := affinity.Pin(cpu)
	if err != nil {
		unpin()
		h.logger.Warn("cpu pinning failed, running unpinned",
			zap.String("role", role), zap.Int("cpu", cpu), zap.Error(err))
	}
}

func (h *harness) produce() error {
	h.pin("producer", h.cfg.ProducerCPU)
	rnd := rand.New(rand.NewSource(h.cfg.Seed))
	buf := make([]byte, h.cfg.MaxChunk)

	for !h.stop.Load() {
		n := rnd.Intn(h.cfg.MaxChunk)
		for i := 0; i < n; i++ {
			buf[i] = Pattern(h.produced + uint64(i))
		}
		w := h.ring.Write(buf[:n])
		h.produced += uint64(w)
		h.writes++
		if w < n {
			h.shortWrites++
		}
		if w == 0 {
			runtime.Gosched()
			continue
		}
		if err := h.writeSizes.RecordValue(int64(w)); err != nil {
			return err
		}
	}
	return nil
}

func (h *harness) consume() error {
	h.pin("consumer", h.cfg.ConsumerCPU)
	rnd := rand.New(rand.NewSource(h.cfg.Seed + 1))
	buf := make([]byte, h.cfg.MaxChunk)

	for !h.stop.Load() {
		n := h.ring.Read(buf[:rnd.Intn(h.cfg.MaxChunk)])
		h.reads++
		if n == 0 {
			h.emptyReads++
			runtime.Gosched()
			continue
		}
		if err := verify(buf[:n], h.consumed); err != nil {
			return err
		}
		h.consumed += uint64(n)
		// TotalWritten is bumped before the write cursor is published, so it
		// always covers what the consumer can see.
		if h.consumed > h.ring.TotalWritten() {
			return ErrOverrun
		}
		if err := h.readSizes.RecordValue(int64(n)); err != nil {
			return err
		}
	}
	return nil
}

func (h *harness) drain() (uint64, error) {
	buf := make([]byte, h.cfg.Capacity)
	pos := h.consumed
	for {
		n := h.ring.Read(buf)
		if n == 0 {
			return pos - h.consumed, nil
		}
		if err := verify(buf[:n], pos); err != nil {
			return pos - h.consumed, err
		}
		pos += uint64(n)
	}
}

func verify(b []byte, pos uint64) error {
	for i, got := range b {
		if want := Pattern(pos + uint64(i)); got != want {
			return &MismatchError{Pos: pos + uint64(i), Got: got, Want: want}
		}
	}
	return nil
}

func (h *harness) report(elapsed time.Duration, drained uint64) Report {
	return Report{
		Produced:    h.produced,
		Consumed:    h.consumed,
		Drained:     drained,
		Writes:      h.writes,
		Reads:       h.reads,
		ShortWrites: h.shortWrites,
		EmptyReads:  h.emptyReads,
		Elapsed:     elapsed,
		WriteP50:    h.writeSizes.ValueAtQuantile(50),
		WriteP99:    h.writeSizes.ValueAtQuantile(99),
		ReadP50:     h.readSizes.ValueAtQuantile(50),
		ReadP99:     h.readSizes.ValueAtQuantile(99),
		Final:       h.ring.Stats(),
	}
}
