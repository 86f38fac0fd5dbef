package bench

import (
	"context"
	"errors"
	"runtime"
	"time"
)

// Run executes the bounded sampling loop and returns the collected Trial.
// Sampling stops when p.Samples samples have been recorded or the wall-clock
// budget p.Seconds has elapsed; the budget is checked after each sample, so
// the triggering sample is always fully recorded and a slight overrun is
// expected. At least one sample is always collected.
//
// A failure raised by the workload aborts immediately with an
// *ExecutionError and no partial Trial. Cancellation of ctx returns the
// partial Trial if at least one sample exists, and ErrEmptyTrial otherwise.
func Run(ctx context.Context, w Workload, p Parameters) (*Trial, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.GCTrial {
		runtime.GC()
	}

	trial := &Trial{
		Params:  p,
		Times:   make([]int64, 0, p.Samples),
		GCTimes: make([]int64, 0, p.Samples),
	}
	budget := time.Duration(p.Seconds * float64(time.Second))
	start := time.Now()

	for i := 0; i < p.Samples; i++ {
		if ctx.Err() != nil {
			if trial.Len() == 0 {
				return nil, ErrEmptyTrial
			}
			return trial, nil
		}

		if p.GCSample {
			runtime.GC()
		}

		m, err := w.Invoke(ctx, p.Evals)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if trial.Len() == 0 {
					return nil, ErrEmptyTrial
				}
				return trial, nil
			}
			return nil, &ExecutionError{Phase: "trial", Err: err}
		}

		evals := int64(p.Evals)
		trial.Times = append(trial.Times, int64(m.Elapsed)/evals)
		trial.GCTimes = append(trial.GCTimes, int64(m.GCElapsed)/evals)
		if i == 0 {
			trial.Memory = int64(m.Bytes) / evals
			trial.Allocs = int64(m.Allocs) / evals
		}

		if time.Since(start) >= budget {
			break
		}
	}

	return trial, nil
}
