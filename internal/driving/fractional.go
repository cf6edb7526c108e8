package driving

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/loewner/internal/loewner"
)

// spectralSlack is the relative amount by which an eigenvalue of the
// circulant embedding may fall below zero through rounding alone.
const spectralSlack = 1e-10

// Fractional samples a fractional Brownian motion at n instants uniformly
// spaced on [0, tf]. The mean square displacement is
//
//	<B(t)^2> = b t^(2h)
//
// with h the Hurst exponent and b the diffusion constant.
//
// It uses the Davies-Harte circulant embedding. The embedding is only valid
// when every eigenvalue of the circulant is non-negative, which fails for
// h > 1; such inputs return ErrNegativeSpectrum.
//
// Davies, Robert B., and D. S. Harte. "Tests for Hurst effect."
// Biometrika 74.1 (1987): 95-101.
func Fractional(n int, h, b, tf float64, rng *rand.Rand) (loewner.Times, loewner.Drive, error) {
	switch {
	case n < 1:
		return nil, nil, fmt.Errorf("%w: need at least one point, got %d", loewner.ErrInvalidParameter, n)
	case !(h > 0):
		return nil, nil, fmt.Errorf("%w: hurst exponent must be positive, got %v", loewner.ErrInvalidParameter, h)
	case !(b >= 0):
		return nil, nil, fmt.Errorf("%w: diffusion constant must be non-negative, got %v", loewner.ErrInvalidParameter, b)
	case !(tf > 0) || math.IsInf(tf, 0):
		return nil, nil, fmt.Errorf("%w: end time must be positive, got %v", loewner.ErrInvalidParameter, tf)
	}

	eig, err := circulantSpectrum(n, h, b)
	if err != nil {
		return nil, nil, err
	}

	n2 := 2 * n
	y := make([]complex128, n2)
	y[0] = complex(math.Sqrt2*rng.NormFloat64(), 0)
	y[n] = complex(math.Sqrt2*rng.NormFloat64(), 0)
	for k := 1; k < n; k++ {
		y[k] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	for k := 1; k < n; k++ {
		y[n+k] = cmplx.Conj(y[n-k])
	}
	for k := range y {
		y[k] *= complex(math.Sqrt(eig[k]*float64(n)), 0)
	}

	x := fft.IFFT(y)
	u := make([]float64, n)
	for k := range u {
		u[k] = real(x[k])
	}
	floats.CumSum(u, u)
	floats.AddConst(-u[0], u)
	floats.Scale(math.Pow(tf/float64(n), h), u)

	return Linspace(n, tf), loewner.Drive(u), nil
}

// circulantSpectrum returns the eigenvalues of the 2n circulant matrix that
// embeds the autocovariance of fractional Gaussian noise.
func circulantSpectrum(n int, h, b float64) ([]float64, error) {
	n2 := 2 * n
	h2 := 2 * h

	s := make([]float64, n2)
	for i := 0; i <= n && i < n2; i++ {
		k := float64(i)
		s[i] = 0.5 * b * (math.Pow(math.Abs(k+1), h2) + math.Pow(math.Abs(k-1), h2) - 2*math.Pow(k, h2))
	}
	for k := 1; k < n; k++ {
		s[n+k] = s[n-k]
	}

	spectrum := fft.FFTReal(s)
	eig := make([]float64, n2)
	for k, v := range spectrum {
		eig[k] = real(v)
	}

	floor := -spectralSlack * math.Max(floats.Max(eig), 1)
	for k, v := range eig {
		if v < floor {
			return nil, fmt.Errorf("%w: eigenvalue %d is %g (n=%d, h=%v)", loewner.ErrNegativeSpectrum, k, v, n, h)
		}
		if v < 0 {
			eig[k] = 0
		}
	}
	return eig, nil
}
