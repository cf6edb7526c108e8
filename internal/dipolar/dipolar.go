// Package dipolar implements the zipper algorithm in the infinite strip of
// width pi*D, where the driving function walks on the lower boundary line and
//
//	dg/dt = (1/D) / tanh((g(t, z) - u(t)) / 2D)
package dipolar

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/loewner/internal/loewner"
)

// DefaultWidth is the strip half-width D used when none is configured.
const DefaultWidth = 1.0

// Zip applies the dipolar vertical slit map
//
//	w = 2D*i*acos(cosh(z/2D) * exp(-dt/(2D^2))) + du
//
// to every element of z, with principal branches of acos and cosh.
func Zip(z []complex128, dt, du, width float64) {
	w2 := 2 * width
	inv := complex(1/w2, 0)
	decay := complex(math.Exp(-dt/(w2*width)), 0)
	scale := complex(0, w2)
	d := complex(du, 0)
	for i, w := range z {
		z[i] = scale*cmplx.Acos(cmplx.Cosh(w*inv)*decay) + d
	}
}

func checkWidth(width float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: got %v", loewner.ErrInvalidWidth, width)
	}
	return nil
}

// Trace computes the discretized dipolar Loewner trace of the driving
// function u sampled at t in the strip of width pi*width. The trace starts
// at 0.
func Trace(t loewner.Times, u loewner.Drive, width float64) (loewner.Trace, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	return loewner.Zip(t, u, 0, func(z []complex128, dt, du float64) error {
		Zip(z, dt, du, width)
		return nil
	})
}

// Domain is the strip geometry with a fixed width.
type Domain struct {
	Width float64
}

// New returns the strip of width pi*width.
func New(width float64) (Domain, error) {
	if err := checkWidth(width); err != nil {
		return Domain{}, err
	}
	return Domain{Width: width}, nil
}

func (Domain) Name() string     { return "dipolar" }
func (Domain) Base() complex128 { return 0 }

func (d Domain) Trace(t loewner.Times, u loewner.Drive) (loewner.Trace, error) {
	return Trace(t, u, d.Width)
}
