package bench

import (
	"errors"
	"fmt"
)

// ErrEmptyTrial is returned when sampling is interrupted before the first
// sample was recorded.
var ErrEmptyTrial = errors.New("trial interrupted before first sample")

// ConfigurationError reports an invalid Parameters field.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ExecutionError wraps a failure raised by a workload while it was being
// tuned or sampled.
type ExecutionError struct {
	Phase string // "tuning" or "trial"
	Err   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("workload failed during %s: %v", e.Phase, e.Err)
}

// Unwrap exposes the workload's original error to errors.Is/As.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
