package bench

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuneFindsMinimalEvals(t *testing.T) {
	// 10ns per evaluation against a 100ns clock: threshold is
	// resolution*1000 = 100µs, so the minimal measurable batch is 10000.
	w := &fakeWorkload{perEval: 10 * time.Nanosecond}
	cal := StaticCalibrator{Calibration: testCalibration}

	tuned, err := Tune(context.Background(), w, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)

	assert.Equal(t, 10000, tuned.Evals)
	// Everything else is carried over untouched.
	assert.Equal(t, DefaultParameters().Seconds, tuned.Seconds)
	assert.Equal(t, DefaultParameters().Samples, tuned.Samples)
}

func TestTuneFastWorkloadLandsInExpectedRange(t *testing.T) {
	w := &fakeWorkload{perEval: 10 * time.Nanosecond}
	cal := StaticCalibrator{Calibration: testCalibration}

	tuned, err := Tune(context.Background(), w, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, tuned.Evals, 10_000)
	assert.LessOrEqual(t, tuned.Evals, 1_000_000)
}

func TestTuneSlowWorkloadKeepsOneEval(t *testing.T) {
	// A single evaluation already exceeds the threshold.
	w := &fakeWorkload{perEval: time.Millisecond}
	cal := StaticCalibrator{Calibration: testCalibration}

	tuned, err := Tune(context.Background(), w, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)

	assert.Equal(t, 1, tuned.Evals)
}

func TestTuneIsStableAcrossRuns(t *testing.T) {
	cal := StaticCalibrator{Calibration: testCalibration}

	first, err := Tune(context.Background(), &fakeWorkload{perEval: 25 * time.Nanosecond}, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)
	second, err := Tune(context.Background(), &fakeWorkload{perEval: 25 * time.Nanosecond}, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)

	// Same order of magnitude; with a deterministic workload, identical.
	assert.Equal(t, first.Evals, second.Evals)
}

func TestTuneOverheadDominatedThreshold(t *testing.T) {
	// When the call overhead dwarfs clock resolution, the overhead term
	// drives the threshold: 2µs*100 = 200µs, so 10ns evals need 20000 reps.
	cal := StaticCalibrator{Calibration: Calibration{
		Resolution: 100 * time.Nanosecond,
		Overhead:   2 * time.Microsecond,
	}}
	w := &fakeWorkload{perEval: 10 * time.Nanosecond}

	tuned, err := Tune(context.Background(), w, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)
	assert.Equal(t, 20000, tuned.Evals)
}

func TestTuneBestEffortOnExhaustedBudget(t *testing.T) {
	// A zero budget stops the search after the first measurement; the best
	// evals found so far is returned rather than an error.
	w := &fakeWorkload{perEval: time.Nanosecond}
	cal := StaticCalibrator{Calibration: testCalibration}

	tuned, err := Tune(context.Background(), w, DefaultParameters(),
		WithCalibrator(cal), WithTuneBudget(0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, tuned.Evals, 1)
}

func TestTunePropagatesWorkloadFailure(t *testing.T) {
	boom := errors.New("boom")

	// Failure during the warm-up invocation.
	w := &fakeWorkload{err: boom}
	_, err := Tune(context.Background(), w, DefaultParameters(),
		WithCalibrator(StaticCalibrator{Calibration: testCalibration}))

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "tuning", execErr.Phase)
	assert.ErrorIs(t, err, boom)

	// Failure mid-search.
	w = &fakeWorkload{perEval: 10 * time.Nanosecond, err: boom, failAfter: 4}
	_, err = Tune(context.Background(), w, DefaultParameters(),
		WithCalibrator(StaticCalibrator{Calibration: testCalibration}))
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, err, boom)
}

func TestTuneDiscardsWarmup(t *testing.T) {
	w := &fakeWorkload{perEval: time.Millisecond}
	cal := StaticCalibrator{Calibration: testCalibration}

	_, err := Tune(context.Background(), w, DefaultParameters(), WithCalibrator(cal))
	require.NoError(t, err)

	// One warm-up invocation plus one measurement of evals=1.
	assert.Equal(t, 2, w.invocations())
	assert.Equal(t, []int{1, 1}, w.calls)
}

func TestTuneInvalidParameters(t *testing.T) {
	w := &fakeWorkload{perEval: time.Microsecond}
	_, err := Tune(context.Background(), w, Parameters{})

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
