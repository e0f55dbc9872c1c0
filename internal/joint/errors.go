package joint

import (
	"errors"
	"fmt"
)

// Domain errors for control runs.
var (
	// ErrDimensionMismatch indicates gains, trajectory, or state vectors
	// of different joint counts were combined.
	ErrDimensionMismatch = errors.New("joint: dimension mismatch")

	// ErrInvalidGain indicates a negative or non-finite gain value.
	ErrInvalidGain = errors.New("joint: gain must be finite and non-negative")

	// ErrInvalidTimestep indicates a non-positive tick period.
	ErrInvalidTimestep = errors.New("joint: dt must be positive")

	// ErrInvalidDuration indicates a non-positive run duration.
	ErrInvalidDuration = errors.New("joint: duration must be positive")

	// ErrNonFinite indicates a NaN or Inf value in a vector.
	ErrNonFinite = errors.New("joint: non-finite value (NaN or Inf)")
)

// ConfigError is a fatal setup problem, reported before any tick runs.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// ActuatorError wraps a failure of the actuator boundary during a run.
// The run aborts at the failing tick; no retry.
type ActuatorError struct {
	Op      string
	Step    int
	Wrapped error
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("actuator %s at step %d: %v", e.Op, e.Step, e.Wrapped)
}

func (e *ActuatorError) Unwrap() error {
	return e.Wrapped
}

// NumericError reports a non-finite torque, caught before it reaches
// the actuator.
type NumericError struct {
	Step int
	T    float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("non-finite torque at step %d (t=%.4f)", e.Step, e.T)
}

func (e *NumericError) Unwrap() error {
	return ErrNonFinite
}
