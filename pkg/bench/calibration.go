package bench

import (
	"context"
	"sync"
	"time"
)

// Calibration holds the timer characteristics of the current process: the
// smallest observable clock increment and the fixed cost of invoking a
// workload once. Both bound how small a trustworthy sample can be.
type Calibration struct {
	Resolution time.Duration
	Overhead   time.Duration
}

// Calibrator supplies a Calibration. The tuner accepts any implementation so
// tests can substitute deterministic values.
type Calibrator interface {
	Calibrate() Calibration
}

// StaticCalibrator returns a fixed Calibration.
type StaticCalibrator struct {
	Calibration Calibration
}

// Calibrate implements Calibrator.
func (s StaticCalibrator) Calibrate() Calibration {
	return s.Calibration
}

var (
	processOnce sync.Once
	processCal  Calibration
)

type processCalibrator struct{}

// Calibrate implements Calibrator. The measurement runs once per process;
// concurrent callers block on the single writer and then share the cached
// value.
func (processCalibrator) Calibrate() Calibration {
	processOnce.Do(func() {
		processCal = Calibration{
			Resolution: measureResolution(),
			Overhead:   measureOverhead(),
		}
	})
	return processCal
}

// ProcessCalibrator returns the lazily-initialized process-wide calibrator.
func ProcessCalibrator() Calibrator {
	return processCalibrator{}
}

const calibrationRounds = 32

// measureResolution spins on the clock until it ticks and keeps the smallest
// observed increment.
func measureResolution() time.Duration {
	min := time.Duration(0)
	for i := 0; i < calibrationRounds; i++ {
		t0 := time.Now()
		var d time.Duration
		for {
			if d = time.Since(t0); d > 0 {
				break
			}
		}
		if min == 0 || d < min {
			min = d
		}
	}
	if min <= 0 {
		min = time.Nanosecond
	}
	return min
}

// measureOverhead times batches of a no-op workload and keeps the smallest
// observed per-invocation cost.
func measureOverhead() time.Duration {
	noop := NewClosure(func() {})
	const batch = 1000
	min := time.Duration(0)
	for i := 0; i < calibrationRounds; i++ {
		m, err := noop.Invoke(context.Background(), batch)
		if err != nil {
			continue
		}
		per := m.Elapsed / batch
		if min == 0 || per < min {
			min = per
		}
	}
	return min
}
