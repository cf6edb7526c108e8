package chordal

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/loewner/internal/driving"
	"github.com/san-kum/loewner/internal/loewner"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// brownian samples SLE(kappa) driving on n uniform instants of [0, 1].
func brownian(tb testing.TB, n int, kappa float64, seed int64) (loewner.Times, loewner.Drive) {
	tb.Helper()
	t, u, err := driving.BrownianSource{N: n, Tf: 1, Kappa: kappa}.Generate(rand.New(rand.NewSource(seed)))
	require.NoError(tb, err)
	return t, u
}

func TestZipSingleStep(t *testing.T) {
	z := []complex128{0}
	Zip(z, 1, 0)
	assert.InDelta(t, 0, real(z[0]), 1e-15)
	assert.InDelta(t, 2, imag(z[0]), 1e-15)

	z = []complex128{0}
	Zip(z, 0.25, 3)
	assert.InDelta(t, 3, real(z[0]), 1e-15)
	assert.InDelta(t, 1, imag(z[0]), 1e-15)
}

func TestUnzipInvertsZip(t *testing.T) {
	z := []complex128{0.3 + 0.7i, -1.2 + 0.1i, 2 + 3i}
	want := append([]complex128(nil), z...)

	Zip(z, 0.5, 0.2)
	tip := []complex128{0}
	Zip(tip, 0.5, 0.2)
	Unzip(z, real(tip[0]), imag(tip[0]))

	diff(t, want, z, cmpopts.EquateApprox(0, 1e-12))
}

func TestUnzipBranchPoint(t *testing.T) {
	z := []complex128{1 + 2i}
	Unzip(z, 1, 2)
	assert.Equal(t, complex128(0), z[0])
	assert.False(t, cmplx.IsNaN(z[0]))
}

func TestTraceConcreteScenario(t *testing.T) {
	z, err := Trace(loewner.Times{0, 1}, loewner.Drive{0, 0})
	require.NoError(t, err)
	diff(t, loewner.Trace{0, 2i}, z, cmpopts.EquateApprox(0, 1e-15))
}

func TestTraceBasePoint(t *testing.T) {
	tt, u := brownian(t, 50, 4, 7)
	z, err := Trace(tt, u)
	require.NoError(t, err)
	assert.Equal(t, complex128(0), z[0])
	assert.Equal(t, complex128(0), New().Base())
}

func TestTraceVerticalSlit(t *testing.T) {
	tt := loewner.Times{0, 0.1, 0.15, 0.4, 1.0, 2.5}
	u := make(loewner.Drive, len(tt))

	z, err := Trace(tt, u)
	require.NoError(t, err)

	for i := range tt {
		assert.InDelta(t, 0, real(z[i]), 1e-12, "point %d", i)
		assert.InDelta(t, 2*math.Sqrt(tt[i]), imag(z[i]), 1e-12, "point %d", i)
	}
}

func TestTraceUpperHalfPlane(t *testing.T) {
	tt, u := brownian(t, 200, 6, 11)
	z, err := Trace(tt, u)
	require.NoError(t, err)
	require.True(t, z.IsValid())
	for i := 1; i < len(z); i++ {
		assert.GreaterOrEqual(t, imag(z[i]), 0.0, "point %d", i)
	}
}

func TestTraceDoesNotMutateInput(t *testing.T) {
	tt, u := brownian(t, 20, 2, 3)
	tc, uc := tt.Clone(), u.Clone()
	_, err := Trace(tt, u)
	require.NoError(t, err)
	assert.Equal(t, tc, tt)
	assert.Equal(t, uc, u)
}

func TestTraceDegenerate(t *testing.T) {
	z, err := Trace(loewner.Times{}, loewner.Drive{})
	require.NoError(t, err)
	assert.Len(t, z, 0)

	z, err = Trace(loewner.Times{0}, loewner.Drive{1.5})
	require.NoError(t, err)
	assert.Equal(t, loewner.Trace{0}, z)

	tt, u := Drive(loewner.Trace{}, false)
	assert.Len(t, tt, 0)
	assert.Len(t, u, 0)

	tt, u = Drive(loewner.Trace{0}, false)
	assert.Equal(t, loewner.Times{0}, tt)
	assert.Equal(t, loewner.Drive{0}, u)
}

func TestTraceInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		t    loewner.Times
		u    loewner.Drive
		want error
	}{
		{"length mismatch", loewner.Times{0, 1}, loewner.Drive{0}, loewner.ErrLengthMismatch},
		{"decreasing time", loewner.Times{0, 1, 0.5}, loewner.Drive{0, 0, 0}, loewner.ErrNonMonotonic},
		{"nan drive", loewner.Times{0, 1}, loewner.Drive{0, math.NaN()}, loewner.ErrNonFinite},
		{"inf time", loewner.Times{0, math.Inf(1)}, loewner.Drive{0, 0}, loewner.ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := Trace(tt.t, tt.u)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, z)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, kappa := range []float64{0, 2, 4, 8} {
		tt, u := brownian(t, 300, kappa, int64(kappa)+1)

		z, err := Trace(tt, u)
		require.NoError(t, err)

		gotT, gotU := Drive(z, false)
		diff(t, []float64(tt), []float64(gotT), cmpopts.EquateApprox(0, 1e-9))
		diff(t, []float64(u), []float64(gotU), cmpopts.EquateApprox(0, 1e-9))
	}
}

func TestDriveDestroy(t *testing.T) {
	tt, u := brownian(t, 40, 3, 5)
	z, err := Trace(tt, u)
	require.NoError(t, err)

	kept := z.Clone()
	_, _ = Drive(z, false)
	assert.Equal(t, kept, z, "copying mode must leave the trace intact")

	gotT, gotU := Drive(z, true)
	assert.NotEqual(t, kept, z, "destroy mode works in place")
	diff(t, []float64(tt), []float64(gotT), cmpopts.EquateApprox(0, 1e-9))
	diff(t, []float64(u), []float64(gotU), cmpopts.EquateApprox(0, 1e-9))
}

func TestScalingLaw(t *testing.T) {
	tt, u := brownian(t, 120, 4, 9)
	z, err := Trace(tt, u)
	require.NoError(t, err)

	const lambda = 3.7
	st := make(loewner.Times, len(tt))
	su := make(loewner.Drive, len(u))
	for i := range tt {
		st[i] = lambda * tt[i]
		su[i] = math.Sqrt(lambda) * u[i]
	}
	sz, err := Trace(st, su)
	require.NoError(t, err)

	for i := range z {
		assert.InDelta(t, 0, cmplx.Abs(sz[i]-complex(math.Sqrt(lambda), 0)*z[i]), 1e-9, "point %d", i)
	}
}

func TestDomainContract(t *testing.T) {
	var d loewner.Domain = New()
	inv, ok := d.(loewner.Inverter)
	require.True(t, ok)
	assert.Equal(t, "chordal", d.Name())

	z, err := d.Trace(loewner.Times{0, 1}, loewner.Drive{0, 0})
	require.NoError(t, err)
	gotT, gotU := inv.Drive(z, false)
	diff(t, []float64{0, 1}, []float64(gotT), cmpopts.EquateApprox(0, 1e-12))
	diff(t, []float64{0, 0}, []float64(gotU), cmpopts.EquateApprox(0, 1e-12))
}
