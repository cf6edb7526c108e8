package loewner

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// Times holds the sampled time instants of a driving function.
type Times []float64

// Drive holds driving function values, index-paired with Times.
type Drive []float64

// Trace holds the curve points reached at each time instant.
type Trace []complex128

func (t Times) Clone() Times {
	c := make(Times, len(t))
	copy(c, t)
	return c
}

func (u Drive) Clone() Drive {
	c := make(Drive, len(u))
	copy(c, u)
	return c
}

func (z Trace) Clone() Trace {
	c := make(Trace, len(z))
	copy(c, z)
	return c
}

// Tip returns the last point of the trace, or 0 for an empty trace.
func (z Trace) Tip() complex128 {
	if len(z) == 0 {
		return 0
	}
	return z[len(z)-1]
}

func (z Trace) IsValid() bool {
	for _, w := range z {
		if cmplx.IsNaN(w) || cmplx.IsInf(w) {
			return false
		}
	}
	return true
}

// Points returns the real and imaginary parts as separate slices.
func (z Trace) Points() (xs, ys []float64) {
	xs = make([]float64, len(z))
	ys = make([]float64, len(z))
	for i, w := range z {
		xs[i], ys[i] = real(w), imag(w)
	}
	return xs, ys
}

// Domain is a Loewner geometry able to compute traces.
type Domain interface {
	Name() string
	// Base is the point every trace starts from.
	Base() complex128
	Trace(t Times, u Drive) (Trace, error)
}

// Inverter recovers the driving function of a trace. When destroy is set
// the implementation may overwrite z.
type Inverter interface {
	Drive(z Trace, destroy bool) (Times, Drive)
}

// Source produces a driving function sampled on its own time grid.
type Source interface {
	Name() string
	Generate(rng *rand.Rand) (Times, Drive, error)
}

// Validate checks the preconditions shared by every trace computation.
func Validate(t Times, u Drive) error {
	if len(t) != len(u) {
		return &InputError{Index: min(len(t), len(u)), Wrapped: ErrLengthMismatch}
	}
	for i := range t {
		if !isFinite(t[i]) || !isFinite(u[i]) {
			return &InputError{Index: i, Wrapped: ErrNonFinite}
		}
		if i > 0 && t[i] < t[i-1] {
			return &InputError{Index: i, Wrapped: ErrNonMonotonic}
		}
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Metric accumulates an observable along a trace.
type Metric interface {
	Name() string
	Observe(z complex128, t float64)
	Value() float64
	Reset()
}
