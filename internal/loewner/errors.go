package loewner

import (
	"errors"
	"fmt"
)

// Domain errors for trace and drive computations.
var (
	// ErrLengthMismatch indicates time and drive series of different lengths.
	ErrLengthMismatch = errors.New("loewner: time and drive lengths differ")

	// ErrNonMonotonic indicates a decreasing time series.
	ErrNonMonotonic = errors.New("loewner: time series is not non-decreasing")

	// ErrNonFinite indicates a NaN or Inf in an input series.
	ErrNonFinite = errors.New("loewner: non-finite value in input")

	// ErrInvalidWidth indicates a non-positive dipolar strip width.
	ErrInvalidWidth = errors.New("loewner: strip width must be positive")

	// ErrSingular indicates a division by a computed zero in a slit map.
	ErrSingular = errors.New("loewner: singular slit map (point at origin)")

	// ErrOutsideDisk indicates that no root of the radial slit map lies in
	// the closed unit disk.
	ErrOutsideDisk = errors.New("loewner: no root inside the unit disk")

	// ErrNegativeSpectrum indicates a circulant embedding that is not
	// positive semi-definite.
	ErrNegativeSpectrum = errors.New("loewner: negative spectral density in circulant embedding")

	// ErrInvalidParameter indicates a generator parameter out of range.
	ErrInvalidParameter = errors.New("loewner: parameter out of valid bounds")

	// ErrNotInvertible indicates a geometry without an inverse map.
	ErrNotInvertible = errors.New("loewner: domain has no inverse map")
)

// InputError locates a precondition violation in an input series.
type InputError struct {
	Index   int
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("index %d: %v", e.Index, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}

// StepError wraps a failure of the elementary map at one time step.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
