package bench

// Parameters controls how a benchmark is tuned and sampled.
// A Parameters value is read-only once constructed: tuning produces a new
// value with Evals replaced rather than mutating the original.
type Parameters struct {
	// Seconds is the wall-clock budget for one trial.
	Seconds float64 `json:"seconds"`
	// Samples is the maximum number of samples collected per trial.
	Samples int `json:"samples"`
	// Evals is the number of workload evaluations per sample.
	Evals int `json:"evals"`
	// GCTrial forces a full collection before the trial starts.
	GCTrial bool `json:"gctrial"`
	// GCSample forces a full collection before every sample.
	GCSample bool `json:"gcsample"`
	// Tolerance is the relative noise band used when judging ratios.
	Tolerance float64 `json:"tolerance"`
}

// DefaultParameters returns the process-wide defaults.
func DefaultParameters() Parameters {
	return Parameters{
		Seconds:   5.0,
		Samples:   300,
		Evals:     1,
		GCTrial:   true,
		GCSample:  false,
		Tolerance: 0.05,
	}
}

// Option overrides a single Parameters field.
type Option func(*Parameters)

// WithSeconds overrides the trial wall-clock budget.
func WithSeconds(s float64) Option { return func(p *Parameters) { p.Seconds = s } }

// WithSamples overrides the maximum sample count.
func WithSamples(n int) Option { return func(p *Parameters) { p.Samples = n } }

// WithEvals overrides the evaluations per sample.
func WithEvals(n int) Option { return func(p *Parameters) { p.Evals = n } }

// WithGCTrial overrides whether a collection runs before the trial.
func WithGCTrial(b bool) Option { return func(p *Parameters) { p.GCTrial = b } }

// WithGCSample overrides whether a collection runs before every sample.
func WithGCSample(b bool) Option { return func(p *Parameters) { p.GCSample = b } }

// WithParamTolerance overrides the judgement tolerance.
func WithParamTolerance(t float64) Option { return func(p *Parameters) { p.Tolerance = t } }

// NewParameters applies the given overrides on top of the defaults and
// validates the result. Invalid values fail with a *ConfigurationError;
// they are never clamped.
func NewParameters(opts ...Option) (Parameters, error) {
	p := DefaultParameters()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Validate checks every field against its allowed range.
func (p Parameters) Validate() error {
	if p.Seconds <= 0 {
		return &ConfigurationError{Field: "seconds", Value: p.Seconds, Reason: "must be positive"}
	}
	if p.Samples < 1 {
		return &ConfigurationError{Field: "samples", Value: p.Samples, Reason: "must be at least 1"}
	}
	if p.Evals < 1 {
		return &ConfigurationError{Field: "evals", Value: p.Evals, Reason: "must be at least 1"}
	}
	if p.Tolerance <= 0 || p.Tolerance > 1 {
		return &ConfigurationError{Field: "tolerance", Value: p.Tolerance, Reason: "must be in (0, 1]"}
	}
	return nil
}
