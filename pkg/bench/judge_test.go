package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		ratio     float64
		tolerance float64
		want      Verdict
	}{
		{1.0101, 0.01, Regression},
		{0.9899, 0.01, Improvement},
		{1.0000, 0.01, Invariant},
		{1.01, 0.01, Invariant},  // exactly on the band edge
		{0.99, 0.01, Invariant},  // exactly on the band edge
		{2.0, 0.05, Regression},
		{0.5, 0.05, Improvement},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.ratio, tt.tolerance),
			"classify(%v, %v)", tt.ratio, tt.tolerance)
	}
}

func TestJudgeEntryPointsAgree(t *testing.T) {
	estimates := []Estimate{
		{Time: 100, GCTime: 10, Memory: 64, Allocs: 2, Tolerance: 0.05},
		{Time: 130, GCTime: 0, Memory: 64, Allocs: 4, Tolerance: 0.10},
		{Time: 0, GCTime: 0, Memory: 0, Allocs: 0, Tolerance: 0.01},
	}

	for _, a := range estimates {
		for _, b := range estimates {
			assert.Equal(t, JudgeRatio(NewRatio(a, b)), Judge(a, b))
			assert.Equal(t,
				JudgeRatio(NewRatio(a, b), WithTolerance(0.02)),
				Judge(a, b, WithTolerance(0.02)))
			// Overriding after the ratio was built matches overriding before.
			assert.Equal(t,
				JudgeRatio(NewRatio(a, b, WithTolerance(0.02))),
				Judge(a, b, WithTolerance(0.02)))
		}
	}
}

func TestJudgeGCTimeAlwaysNotApplicable(t *testing.T) {
	// Even a wildly regressed GC time never judges.
	a := Estimate{Time: 100, GCTime: 9000, Tolerance: 0.05}
	b := Estimate{Time: 100, GCTime: 1, Tolerance: 0.05}

	j := Judge(a, b)
	assert.Equal(t, NotApplicable, j.GCTime)
	assert.Equal(t, Invariant, j.Time)
	assert.Equal(t, 9000.0, j.Ratio.GCTime) // ratio still reported
}

func TestJudgeVerdictsPerField(t *testing.T) {
	a := Estimate{Time: 200, Memory: 50, Allocs: 10, Tolerance: 0.05}
	b := Estimate{Time: 100, Memory: 100, Allocs: 10, Tolerance: 0.05}

	j := Judge(a, b)
	assert.Equal(t, Regression, j.Time)
	assert.Equal(t, Improvement, j.Memory)
	assert.Equal(t, Invariant, j.Allocs)
	assert.True(t, j.HasRegression())

	assert.False(t, Judge(b, b).HasRegression())
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "regression", Regression.String())
	assert.Equal(t, "improvement", Improvement.String())
	assert.Equal(t, "invariant", Invariant.String())
	assert.Equal(t, "not-applicable", NotApplicable.String())
}
