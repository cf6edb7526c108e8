package driving

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/loewner/internal/loewner"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, loewner.Times{}, Linspace(0, 1))
	assert.Equal(t, loewner.Times{0}, Linspace(1, 1))
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, []float64(Linspace(5, 1)), 1e-15)
}

func TestBrownianIncrements(t *testing.T) {
	const (
		n     = 20001
		kappa = 4.0
	)
	rng := rand.New(rand.NewSource(1))
	tt := Linspace(n, 1)
	u, err := Brownian(tt, kappa, rng)
	require.NoError(t, err)
	require.Len(t, u, n)
	assert.Equal(t, 0.0, u[0])

	dt := tt[1] - tt[0]
	inc := make([]float64, n-1)
	for i := range inc {
		inc[i] = (u[i+1] - u[i]) / math.Sqrt(dt)
	}
	mean, variance := stat.MeanVariance(inc, nil)
	assert.InDelta(t, 0, mean, 0.08)
	assert.InDelta(t, kappa, variance, 0.2)
}

func TestBrownianZeroKappa(t *testing.T) {
	u, err := Brownian(Linspace(10, 1), 0, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	for _, v := range u {
		assert.Equal(t, 0.0, v)
	}
}

func TestBrownianInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	_, err := Brownian(Linspace(10, 1), -1, rng)
	assert.ErrorIs(t, err, loewner.ErrInvalidParameter)

	_, err = Brownian(loewner.Times{0, 0.5, 0.2}, 1, rng)
	assert.ErrorIs(t, err, loewner.ErrNonMonotonic)
}

func TestFractionalShape(t *testing.T) {
	tt, u, err := Fractional(256, 0.7, 1, 2, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	require.Len(t, tt, 256)
	require.Len(t, u, 256)
	assert.Equal(t, 0.0, tt[0])
	assert.InDelta(t, 2, tt[255], 1e-12)
	assert.Equal(t, 0.0, u[0])
	for _, v := range u {
		assert.False(t, math.IsNaN(v))
	}
}

func TestFractionalVariance(t *testing.T) {
	const (
		n    = 64
		h    = 0.5
		runs = 1000
	)
	rng := rand.New(rand.NewSource(5))
	finals := make([]float64, runs)
	for r := range finals {
		_, u, err := Fractional(n, h, 1, 1, rng)
		require.NoError(t, err)
		finals[r] = u[n-1]
	}

	// For h = 1/2 the process is Brownian: the endpoint variance is
	// b*t^(2h) up to the one-step offset of the grid.
	_, variance := stat.MeanVariance(finals, nil)
	want := math.Pow(float64(n-1)/float64(n), 2*h)
	assert.InDelta(t, want, variance, 0.2)
}

func TestFractionalNegativeSpectrum(t *testing.T) {
	for _, h := range []float64{1.2, 1.5} {
		for _, n := range []int{4, 16, 64} {
			tt, u, err := Fractional(n, h, 1, 1, rand.New(rand.NewSource(6)))
			assert.ErrorIs(t, err, loewner.ErrNegativeSpectrum, "n=%d h=%v", n, h)
			assert.Nil(t, tt)
			assert.Nil(t, u)
		}
	}
}

func TestFractionalBoundaryRounding(t *testing.T) {
	// h = 1 sits on the boundary; its smallest eigenvalue is a rounding
	// error around zero and must be accepted.
	_, u, err := Fractional(64, 1, 1, 1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	for _, v := range u {
		assert.False(t, math.IsNaN(v))
	}
}

func TestFractionalInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	tests := []struct {
		name     string
		n        int
		h, b, tf float64
	}{
		{"no points", 0, 0.5, 1, 1},
		{"zero hurst", 10, 0, 1, 1},
		{"negative diffusion", 10, 0.5, -1, 1},
		{"zero end time", 10, 0.5, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Fractional(tt.n, tt.h, tt.b, tt.tf, rng)
			assert.ErrorIs(t, err, loewner.ErrInvalidParameter)
		})
	}
}

func TestSources(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	sources := []loewner.Source{
		BrownianSource{N: 50, Tf: 1, Kappa: 2},
		FractionalSource{N: 50, Hurst: 0.6, B: 1, Tf: 1},
		PowerSource{N: 50, Tf: 1, Coeff: 2, Exponent: 0.5},
	}
	for _, s := range sources {
		tt, u, err := s.Generate(rng)
		require.NoError(t, err, s.Name())
		assert.Len(t, tt, 50)
		assert.NoError(t, loewner.Validate(tt, u))
	}

	_, u, err := PowerSource{N: 3, Tf: 4, Coeff: 3, Exponent: 0.5}.Generate(nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 3 * math.Sqrt(2), 6}, []float64(u), 1e-12)
}
