package bench

import (
	"context"
	"time"
)

const (
	// A sample must exceed the clock resolution by this factor before the
	// derived per-evaluation time is considered trustworthy.
	tuneResolutionFactor = 1000
	// A sample must also dwarf the fixed per-invocation overhead.
	tuneOverheadFactor = 100

	maxTuneEvals       = 1 << 30
	maxTuneSearchDepth = 32
)

// DefaultTuneBudget bounds the wall-clock time spent inside Tune itself.
const DefaultTuneBudget = time.Second

type tuneConfig struct {
	cal    Calibrator
	budget time.Duration
}

// TuneOption configures a tuning run.
type TuneOption func(*tuneConfig)

// WithCalibrator substitutes the clock/overhead calibration source.
func WithCalibrator(c Calibrator) TuneOption { return func(cfg *tuneConfig) { cfg.cal = c } }

// WithTuneBudget overrides the tuning wall-clock budget.
func WithTuneBudget(d time.Duration) TuneOption { return func(cfg *tuneConfig) { cfg.budget = d } }

// Tune searches for the smallest Evals whose single-sample time exceeds the
// measurement threshold, and returns a copy of p with Evals replaced. Tuning
// is best-effort: if the threshold cannot be met within the search bounds the
// best evals found so far is returned rather than an error. A failure raised
// by the workload itself aborts with an *ExecutionError.
func Tune(ctx context.Context, w Workload, p Parameters, opts ...TuneOption) (Parameters, error) {
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	cfg := tuneConfig{cal: ProcessCalibrator(), budget: DefaultTuneBudget}
	for _, opt := range opts {
		opt(&cfg)
	}

	// One cold invocation, discarded.
	if _, err := w.Invoke(ctx, 1); err != nil {
		return Parameters{}, &ExecutionError{Phase: "tuning", Err: err}
	}

	cal := cfg.cal.Calibrate()
	threshold := cal.Resolution * tuneResolutionFactor
	if o := cal.Overhead * tuneOverheadFactor; o > threshold {
		threshold = o
	}

	deadline := time.Now().Add(cfg.budget)

	measure := func(evals int) (time.Duration, error) {
		m, err := w.Invoke(ctx, evals)
		if err != nil {
			return 0, &ExecutionError{Phase: "tuning", Err: err}
		}
		return m.Elapsed, nil
	}

	evals := 1
	t, err := measure(evals)
	if err != nil {
		return Parameters{}, err
	}
	if t >= threshold {
		// Already measurable at a single evaluation.
		out := p
		out.Evals = 1
		return out, nil
	}

	// Grow geometrically until a sample overshoots the threshold.
	lo := evals
	for t < threshold && evals < maxTuneEvals {
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			break
		}
		lo = evals
		evals *= 2
		if t, err = measure(evals); err != nil {
			return Parameters{}, err
		}
	}

	if t < threshold {
		// Budget or cap hit while still too small: reduced precision is
		// acceptable, total failure is not.
		out := p
		out.Evals = evals
		return out, nil
	}

	// Binary search for the minimal evals meeting the threshold in (lo, evals].
	hi := evals
	for depth := 0; depth < maxTuneSearchDepth && hi-lo > 1; depth++ {
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			break
		}
		mid := lo + (hi-lo)/2
		if t, err = measure(mid); err != nil {
			return Parameters{}, err
		}
		if t >= threshold {
			hi = mid
		} else {
			lo = mid
		}
	}

	out := p
	out.Evals = hi
	return out, nil
}
