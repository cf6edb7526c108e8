package driving

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/loewner/internal/loewner"
)

// BrownianSource drives SLE(kappa): Brownian motion with diffusion
// constant Kappa on N uniformly spaced instants of [0, Tf].
type BrownianSource struct {
	N     int
	Tf    float64
	Kappa float64
}

func (s BrownianSource) Name() string { return "brownian" }

func (s BrownianSource) Generate(rng *rand.Rand) (loewner.Times, loewner.Drive, error) {
	if s.N < 0 {
		return nil, nil, fmt.Errorf("%w: negative point count %d", loewner.ErrInvalidParameter, s.N)
	}
	t := Linspace(s.N, s.Tf)
	u, err := Brownian(t, s.Kappa, rng)
	if err != nil {
		return nil, nil, err
	}
	return t, u, nil
}

// FractionalSource samples fractional Brownian motion.
type FractionalSource struct {
	N     int
	Hurst float64
	B     float64
	Tf    float64
}

func (s FractionalSource) Name() string { return "fractional" }

func (s FractionalSource) Generate(rng *rand.Rand) (loewner.Times, loewner.Drive, error) {
	return Fractional(s.N, s.Hurst, s.B, s.Tf, rng)
}

// PowerSource is the deterministic driving u(t) = Coeff * t^Exponent.
// Coeff = 0 gives a vertical slit and Exponent = 0.5 a straight ray.
type PowerSource struct {
	N        int
	Tf       float64
	Coeff    float64
	Exponent float64
}

func (s PowerSource) Name() string { return "power" }

func (s PowerSource) Generate(_ *rand.Rand) (loewner.Times, loewner.Drive, error) {
	if s.N < 0 || s.Exponent < 0 {
		return nil, nil, fmt.Errorf("%w: power source needs n >= 0 and exponent >= 0", loewner.ErrInvalidParameter)
	}
	t := Linspace(s.N, s.Tf)
	u := make(loewner.Drive, len(t))
	for i, ti := range t {
		u[i] = s.Coeff * math.Pow(ti, s.Exponent)
	}
	return t, u, nil
}
