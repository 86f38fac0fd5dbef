package bench

import (
	"context"
	"sync"
	"time"
)

// fakeWorkload reports a synthetic cost proportional to the batch size
// without doing any real work, so tuner and runner tests are deterministic.
type fakeWorkload struct {
	mu        sync.Mutex
	perEval   time.Duration
	gcPerEval time.Duration
	bytes     uint64 // per evaluation
	allocs    uint64 // per evaluation
	err       error
	failAfter int // fail once this many invocations have happened; 0 = immediately when err is set
	calls     []int
}

func (f *fakeWorkload) Invoke(ctx context.Context, evals int) (Measurement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, evals)
	if f.err != nil && len(f.calls) > f.failAfter {
		return Measurement{}, f.err
	}
	n := time.Duration(evals)
	return Measurement{
		Elapsed:   f.perEval * n,
		GCElapsed: f.gcPerEval * n,
		Bytes:     f.bytes * uint64(evals),
		Allocs:    f.allocs * uint64(evals),
	}, nil
}

func (f *fakeWorkload) invocations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// testCalibration is a deterministic calibration used across tuner tests.
var testCalibration = Calibration{
	Resolution: 100 * time.Nanosecond,
	Overhead:   10 * time.Nanosecond,
}

func newTrial(params Parameters, times, gctimes []int64) *Trial {
	return &Trial{Params: params, Times: times, GCTimes: gctimes}
}
