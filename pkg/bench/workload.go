package bench

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Measurement is the aggregate cost of one batch of evaluations. All fields
// cover the whole batch, not a single evaluation.
type Measurement struct {
	Elapsed   time.Duration
	GCElapsed time.Duration
	Bytes     uint64
	Allocs    uint64
}

// Workload executes a batch of evaluations and reports its aggregate cost.
// Implementations are treated as opaque: the engine never inspects what an
// evaluation does, it only counts and times batches.
type Workload interface {
	Invoke(ctx context.Context, evals int) (Measurement, error)
}

// WorkloadFunc adapts a plain function to the Workload interface.
type WorkloadFunc func(ctx context.Context, evals int) (Measurement, error)

// Invoke implements Workload.
func (f WorkloadFunc) Invoke(ctx context.Context, evals int) (Measurement, error) {
	return f(ctx, evals)
}

// Closure is a Workload that measures an in-process Go function. Elapsed time
// is taken around the evaluation loop; GC time and allocation counters come
// from runtime.MemStats deltas, so they reflect everything the runtime did
// during the batch, not just the closure itself.
type Closure struct {
	fn       func()
	setup    func()
	teardown func()
}

// ClosureOption configures a Closure.
type ClosureOption func(*Closure)

// WithSetup runs fn before every batch, outside the timed region.
func WithSetup(fn func()) ClosureOption { return func(c *Closure) { c.setup = fn } }

// WithTeardown runs fn after every batch, outside the timed region.
func WithTeardown(fn func()) ClosureOption { return func(c *Closure) { c.teardown = fn } }

// NewClosure wraps fn as a measured workload.
func NewClosure(fn func(), opts ...ClosureOption) *Closure {
	c := &Closure{fn: fn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke implements Workload. A panic raised by the closure (or its setup or
// teardown) is recovered and reported as an error.
func (c *Closure) Invoke(ctx context.Context, evals int) (m Measurement, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workload panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Measurement{}, err
	}

	if c.setup != nil {
		c.setup()
	}
	if c.teardown != nil {
		defer c.teardown()
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i := 0; i < evals; i++ {
		c.fn()
	}
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)

	return Measurement{
		Elapsed:   elapsed,
		GCElapsed: time.Duration(after.PauseTotalNs - before.PauseTotalNs),
		Bytes:     after.TotalAlloc - before.TotalAlloc,
		Allocs:    after.Mallocs - before.Mallocs,
	}, nil
}
