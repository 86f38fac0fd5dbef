// Package bench implements a micro-benchmarking engine: it tunes how many
// repetitions of a workload make a timing sample rise above clock resolution,
// runs a bounded sampling loop, reduces the samples to point estimates, and
// judges the ratio of two estimates as regression, improvement or invariant.
package bench

import (
	"context"
	"sync"
)

// Benchmark binds a named workload to its parameters and serializes
// measurement: at most one tune or run is in flight per Benchmark at a time,
// so concurrent suites cannot interleave samples of the same workload.
type Benchmark struct {
	Name string

	workload Workload
	params   Parameters
	mu       sync.Mutex
}

// New creates a Benchmark. p must already be valid; use NewParameters to
// build it.
func New(name string, w Workload, p Parameters) *Benchmark {
	return &Benchmark{Name: name, workload: w, params: p}
}

// Params returns the current parameters.
func (b *Benchmark) Params() Parameters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params
}

// SetParams replaces the parameters, typically with a previously cached tuned
// value. Invalid parameters are rejected.
func (b *Benchmark) SetParams(p Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.params = p
	return nil
}

// Tune runs the evals search for this benchmark's workload and stores the
// tuned parameters. The measurement lock is held for the whole search.
func (b *Benchmark) Tune(ctx context.Context, opts ...TuneOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	tuned, err := Tune(ctx, b.workload, b.params, opts...)
	if err != nil {
		return err
	}
	b.params = tuned
	return nil
}

// Run executes one trial. The measurement lock is held for the whole
// sampling loop.
func (b *Benchmark) Run(ctx context.Context) (*Trial, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Run(ctx, b.workload, b.params)
}
