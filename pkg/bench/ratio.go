package bench

// Ratio is the field-wise quotient of two estimates. Values are non-negative
// reals or +Inf; degenerate quotients never raise (see ratio).
type Ratio struct {
	Time      float64 `json:"time"`
	GCTime    float64 `json:"gctime"`
	Memory    float64 `json:"memory"`
	Allocs    float64 `json:"allocs"`
	Tolerance float64 `json:"tolerance"`
}

// ratio divides two non-negative reals. 0/0 is defined as 1 ("no change"
// rather than an indeterminate form); x/0 for x>0 yields +Inf and 0/y yields
// 0 under ordinary float division.
func ratio(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	return a / b
}

type compareConfig struct {
	tolerance    float64
	hasTolerance bool
}

// CompareOption configures a ratio or judgement computation.
type CompareOption func(*compareConfig)

// WithTolerance overrides the tolerance carried by the estimates.
func WithTolerance(t float64) CompareOption {
	return func(cfg *compareConfig) {
		cfg.tolerance = t
		cfg.hasTolerance = true
	}
}

// NewRatio computes the field-wise ratio a/b of two estimates. Its tolerance
// is the larger of the two estimates' tolerances unless WithTolerance is
// supplied, which overrides both.
func NewRatio(a, b Estimate, opts ...CompareOption) Ratio {
	var cfg compareConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	tol := a.Tolerance
	if b.Tolerance > tol {
		tol = b.Tolerance
	}
	if cfg.hasTolerance {
		tol = cfg.tolerance
	}

	return Ratio{
		Time:      ratio(a.Time, b.Time),
		GCTime:    ratio(a.GCTime, b.GCTime),
		Memory:    ratio(float64(a.Memory), float64(b.Memory)),
		Allocs:    ratio(float64(a.Allocs), float64(b.Allocs)),
		Tolerance: tol,
	}
}
