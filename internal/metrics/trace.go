package metrics

import (
	"math"
	"math/cmplx"

	"github.com/san-kum/loewner/internal/loewner"
)

// TipModulus reports the distance of the last observed point from the
// origin.
type TipModulus struct {
	name string
	last complex128
}

func NewTipModulus() *TipModulus {
	return &TipModulus{name: "tip_modulus"}
}

func (m *TipModulus) Name() string                    { return m.name }
func (m *TipModulus) Observe(z complex128, t float64) { m.last = z }
func (m *TipModulus) Value() float64                  { return cmplx.Abs(m.last) }
func (m *TipModulus) Reset()                          { m.last = 0 }

// MaxHeight is the largest imaginary part reached by the trace.
type MaxHeight struct {
	name    string
	height  float64
	samples int
}

func NewMaxHeight() *MaxHeight {
	return &MaxHeight{name: "max_height"}
}

func (m *MaxHeight) Name() string {
	return m.name
}

func (m *MaxHeight) Observe(z complex128, t float64) {
	if m.samples == 0 || imag(z) > m.height {
		m.height = imag(z)
	}
	m.samples++
}

func (m *MaxHeight) Value() float64 {
	return m.height
}

func (m *MaxHeight) Reset() {
	m.height = 0
	m.samples = 0
}

// ArcLength sums the lengths of the segments between consecutive points.
type ArcLength struct {
	name    string
	length  float64
	prev    complex128
	samples int
}

func NewArcLength() *ArcLength {
	return &ArcLength{name: "arc_length"}
}

func (a *ArcLength) Name() string {
	return a.name
}

func (a *ArcLength) Observe(z complex128, t float64) {
	if a.samples > 0 {
		a.length += cmplx.Abs(z - a.prev)
	}
	a.prev = z
	a.samples++
}

func (a *ArcLength) Value() float64 {
	return a.length
}

func (a *ArcLength) Reset() {
	a.length = 0
	a.prev = 0
	a.samples = 0
}

// MaxModulus is the largest |z| seen. For radial traces it must not exceed
// one.
type MaxModulus struct {
	name string
	max  float64
}

func NewMaxModulus() *MaxModulus {
	return &MaxModulus{name: "max_modulus"}
}

func (m *MaxModulus) Name() string { return m.name }

func (m *MaxModulus) Observe(z complex128, t float64) {
	m.max = math.Max(m.max, cmplx.Abs(z))
}

func (m *MaxModulus) Value() float64 { return m.max }
func (m *MaxModulus) Reset()         { m.max = 0 }

// Observe feeds every point of a trace to the metrics after resetting them
// and returns their values by name.
func Observe(ms []loewner.Metric, t loewner.Times, z loewner.Trace) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i, w := range z {
		for _, m := range ms {
			m.Observe(w, t[i])
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return values
}

// Default returns the metrics recorded for every run of the named domain.
func Default(domain string) []loewner.Metric {
	ms := []loewner.Metric{
		NewTipModulus(),
		NewArcLength(),
		NewMaxModulus(),
	}
	if domain != "radial" {
		ms = append(ms, NewMaxHeight())
	}
	return ms
}
