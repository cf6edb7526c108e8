package driving

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/loewner/internal/loewner"
)

// Linspace returns n instants uniformly spaced on [0, tf].
func Linspace(n int, tf float64) loewner.Times {
	if n <= 0 {
		return loewner.Times{}
	}
	t := make(loewner.Times, n)
	if n == 1 {
		return t
	}
	floats.Span(t, 0, tf)
	return t
}

// Brownian samples a Brownian motion at the instants t. Increments
// B(t[i]) - B(t[i-1]) are independent, zero mean and normally distributed
// with variance kappa*(t[i]-t[i-1]). The first increment covers [0, t[0]].
func Brownian(t loewner.Times, kappa float64, rng *rand.Rand) (loewner.Drive, error) {
	if !(kappa >= 0) || math.IsInf(kappa, 0) {
		return nil, fmt.Errorf("%w: kappa must be non-negative, got %v", loewner.ErrInvalidParameter, kappa)
	}
	if len(t) > 0 && t[0] < 0 {
		return nil, &loewner.InputError{Index: 0, Wrapped: loewner.ErrNonMonotonic}
	}
	if err := loewner.Validate(t, make(loewner.Drive, len(t))); err != nil {
		return nil, err
	}

	du := make([]float64, len(t))
	prev := 0.0
	for i, ti := range t {
		du[i] = rng.NormFloat64() * math.Sqrt((ti-prev)*kappa)
		prev = ti
	}
	return loewner.Drive(floats.CumSum(du, du)), nil
}
