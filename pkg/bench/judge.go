package bench

// Verdict classifies one field of a Ratio.
type Verdict int

const (
	// Invariant means the ratio stayed inside the tolerance band.
	Invariant Verdict = iota
	// Regression means the ratio exceeded 1+tolerance.
	Regression
	// Improvement means the ratio fell below 1-tolerance.
	Improvement
	// NotApplicable marks fields excluded from pass/fail semantics.
	NotApplicable
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	switch v {
	case Invariant:
		return "invariant"
	case Regression:
		return "regression"
	case Improvement:
		return "improvement"
	case NotApplicable:
		return "not-applicable"
	default:
		return "unknown"
	}
}

// Judgement classifies each field of a Ratio against a tolerance. GCTime is
// always NotApplicable: GC time is noise-dominated and not part of the
// workload's intrinsic cost, though its ratio is still reported for
// visibility.
type Judgement struct {
	Ratio     Ratio   `json:"ratio"`
	Time      Verdict `json:"time"`
	GCTime    Verdict `json:"gctime"`
	Memory    Verdict `json:"memory"`
	Allocs    Verdict `json:"allocs"`
	Tolerance float64 `json:"tolerance"`
}

// Judge compares two estimates, computing their ratio internally. It is
// equivalent to JudgeRatio(NewRatio(a, b, opts...)).
func Judge(a, b Estimate, opts ...CompareOption) Judgement {
	return JudgeRatio(NewRatio(a, b, opts...))
}

// JudgeRatio classifies a precomputed ratio. WithTolerance overrides the
// tolerance the ratio carries.
func JudgeRatio(r Ratio, opts ...CompareOption) Judgement {
	var cfg compareConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	tol := r.Tolerance
	if cfg.hasTolerance {
		tol = cfg.tolerance
		r.Tolerance = tol
	}

	return Judgement{
		Ratio:     r,
		Time:      classify(r.Time, tol),
		GCTime:    NotApplicable,
		Memory:    classify(r.Memory, tol),
		Allocs:    classify(r.Allocs, tol),
		Tolerance: tol,
	}
}

// classify is the single classification routine both Judge entry points
// funnel into.
func classify(r, tolerance float64) Verdict {
	switch {
	case r > 1+tolerance:
		return Regression
	case r < 1-tolerance:
		return Improvement
	default:
		return Invariant
	}
}

// HasRegression reports whether any judged field regressed.
func (j Judgement) HasRegression() bool {
	return j.Time == Regression || j.Memory == Regression || j.Allocs == Regression
}
