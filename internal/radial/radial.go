// Package radial implements the zipper algorithm in the unit disk, where the
// driving function walks on the unit circle and
//
//	dg/dt = g(t, z) (e^{iu(t)} + g(t, z)) / (e^{iu(t)} - g(t, z))
//
// Only the forward map is provided: inverting it requires tracking the root
// selection of every step.
package radial

import (
	"math/cmplx"

	"github.com/san-kum/loewner/internal/loewner"
)

// Tolerance is the slack allowed on |w| <= 1 before a step is rejected.
const Tolerance = 1e-9

// Zip applies the radial vertical slit map to every element of z.
//
// The map is the root of w^2 - (D - 2e^{i du})w + e^{2i du} = 0. The
// candidate (C - 2e^{i du} + D) / 2 is taken first and replaced by the other
// root e^{2i du} / w, element by element, when it falls outside the unit
// disk. If neither root lies in the closed disk, or the roots are not
// finite, the input was not a valid radial configuration and ErrOutsideDisk
// is returned; z is left partially mapped in that case.
//
// z must not contain 0. Such a point is not singled out and surfaces as
// ErrOutsideDisk; Tracer.Strict reports it as ErrSingular instead.
func Zip(z []complex128, dt, du float64) error {
	edu := cmplx.Exp(complex(0, du))
	edu2 := edu * edu
	scale := cmplx.Exp(complex(dt, du))
	for i, w := range z {
		d := scale * (w + 1) * (w + 1) / w
		c := cmplx.Sqrt(d*d - 4*edu*d)
		if isBad(c) && !isBad(d) {
			// d*d overflowed; keep c aligned with d so r is the large root
			c = d * cmplx.Sqrt(1-4*edu/d)
			if real(cmplx.Conj(d/complex(cmplx.Abs(d), 0))*c) < 0 {
				c = -c
			}
		}
		r := 0.5 * (c - 2*edu + d)
		if isBad(r) {
			return loewner.ErrOutsideDisk
		}
		if cmplx.Abs(r) > 1 {
			r = edu2 / r
		}
		if !(cmplx.Abs(r) <= 1+Tolerance) {
			return loewner.ErrOutsideDisk
		}
		z[i] = r
	}
	return nil
}

func isBad(w complex128) bool {
	return cmplx.IsNaN(w) || cmplx.IsInf(w)
}

func zipStrict(z []complex128, dt, du float64) error {
	for _, w := range z {
		if w == 0 {
			return loewner.ErrSingular
		}
	}
	return Zip(z, dt, du)
}

func zip(z []complex128, dt, du float64) error {
	return Zip(z, dt, du)
}

// Tracer computes radial traces. The zero value is ready to use.
type Tracer struct {
	// Strict checks every point for the origin before dividing by it.
	// Off by default: well-formed driving functions never reach the origin.
	Strict bool
}

// Trace computes the discretized radial Loewner trace of the driving
// function u sampled at t. The trace starts at 1.
func (tr Tracer) Trace(t loewner.Times, u loewner.Drive) (loewner.Trace, error) {
	if tr.Strict {
		return loewner.Zip(t, u, 1, zipStrict)
	}
	return loewner.Zip(t, u, 1, zip)
}

// Trace is Tracer{}.Trace. It is considerably slower than the chordal and
// dipolar versions.
func Trace(t loewner.Times, u loewner.Drive) (loewner.Trace, error) {
	return Tracer{}.Trace(t, u)
}

// Domain is the unit disk geometry. It does not implement loewner.Inverter.
type Domain struct {
	Tracer
}

func New() Domain { return Domain{} }

func (Domain) Name() string     { return "radial" }
func (Domain) Base() complex128 { return 1 }
