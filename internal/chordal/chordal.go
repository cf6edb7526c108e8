// Package chordal implements the zipper algorithm in the upper half-plane,
// where the driving function walks on the real line and
//
//	dg/dt = 2 / (g(t, z) - u(t))
package chordal

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/loewner/internal/loewner"
)

// Zip applies the vertical slit map w = i*sqrt(4dt - z^2) + du to every
// element of z. It is the inverse of the Loewner flow for a driving
// function held at du for a time dt, and maps 0 to du + 2i*sqrt(dt).
func Zip(z []complex128, dt, du float64) {
	c := complex(4*dt, 0)
	d := complex(du, 0)
	for i, w := range z {
		z[i] = 1i*cmplx.Sqrt(c-w*w) + d
	}
}

// Unzip removes the vertical slit ending at x + iy from every element of z:
// w = i*sqrt(-(z-x)^2 - y^2). A zero sqrt argument is a boundary value,
// not an error.
func Unzip(z []complex128, x, y float64) {
	xc := complex(x, 0)
	yy := complex(y*y, 0)
	for i, w := range z {
		s := w - xc
		z[i] = 1i * cmplx.Sqrt(-s*s-yy)
	}
}

func zip(z []complex128, dt, du float64) error {
	Zip(z, dt, du)
	return nil
}

// Trace computes the discretized chordal Loewner trace of the driving
// function u sampled at t. The trace starts at 0. Cost is O(n^2).
func Trace(t loewner.Times, u loewner.Drive) (loewner.Trace, error) {
	return loewner.Zip(t, u, 0, zip)
}

// Drive recovers the time instants and driving function of a trace by
// unzipping it point by point. With the capacity convention used here the
// time follows from the trace itself: each stripped point contributes its
// real part to u and a quarter of its squared imaginary part to t.
//
// Unless destroy is set z is copied first. With destroy set, z is used as
// scratch space and holds the stripped increments on return.
func Drive(z loewner.Trace, destroy bool) (loewner.Times, loewner.Drive) {
	if !destroy {
		z = z.Clone()
	}

	for i := 1; i < len(z)-1; i++ {
		Unzip(z[i+1:], real(z[i]), imag(z[i]))
	}

	dt := make([]float64, len(z))
	du := make([]float64, len(z))
	for i, w := range z {
		du[i] = real(w)
		dt[i] = 0.25 * imag(w) * imag(w)
	}

	t := loewner.Times(floats.CumSum(make([]float64, len(z)), dt))
	u := loewner.Drive(floats.CumSum(make([]float64, len(z)), du))
	return t, u
}

// Domain is the upper half-plane geometry.
type Domain struct{}

func New() Domain { return Domain{} }

func (Domain) Name() string     { return "chordal" }
func (Domain) Base() complex128 { return 0 }

func (Domain) Trace(t loewner.Times, u loewner.Drive) (loewner.Trace, error) {
	return Trace(t, u)
}

func (Domain) Drive(z loewner.Trace, destroy bool) (loewner.Times, loewner.Drive) {
	return Drive(z, destroy)
}
