package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/loewner/internal/loewner"
)

// Boundary selects the domain outline drawn under a trace.
type Boundary int

const (
	BoundaryNone Boundary = iota
	// BoundaryLine is the real axis of the half-plane.
	BoundaryLine
	// BoundaryCircle is the unit circle.
	BoundaryCircle
	// BoundaryStrip is the pair of lines Im z = 0 and Im z = pi*width.
	BoundaryStrip
)

// BoundaryFor returns the outline of the named domain.
func BoundaryFor(domain string) Boundary {
	switch domain {
	case "chordal":
		return BoundaryLine
	case "radial":
		return BoundaryCircle
	case "dipolar":
		return BoundaryStrip
	default:
		return BoundaryNone
	}
}

type Options struct {
	Width, Height int
	Stroke        string
	Boundary      Boundary
	// StripWidth is D for BoundaryStrip.
	StripWidth float64
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Stroke: "#00ff88", StripWidth: 1}
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

// TraceToSVG renders a trace as an SVG path. Axes keep the same scale so
// the geometry is not distorted.
func TraceToSVG(z loewner.Trace, opts Options) string {
	if len(z) < 2 {
		return ""
	}

	b := bounds{real(z[0]), real(z[0]), imag(z[0]), imag(z[0])}
	for _, w := range z {
		b.include(real(w), imag(w))
	}
	switch opts.Boundary {
	case BoundaryCircle:
		b.include(-1, -1)
		b.include(1, 1)
	case BoundaryStrip:
		b.include(real(z[0]), 0)
		b.include(real(z[0]), math.Pi*opts.StripWidth)
	case BoundaryLine:
		b.include(real(z[0]), 0)
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1

	scale := math.Min(float64(opts.Width)/(b.maxX-b.minX), float64(opts.Height)/(b.maxY-b.minY))
	px := func(x float64) float64 { return (x - b.minX) * scale }
	py := func(y float64) float64 { return float64(opts.Height) - (y-b.minY)*scale }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	const outline = `stroke="#444466" stroke-width="1"`
	switch opts.Boundary {
	case BoundaryLine:
		sb.WriteString(fmt.Sprintf("<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" %s/>\n", py(0), opts.Width, py(0), outline))
	case BoundaryStrip:
		for _, y := range []float64{0, math.Pi * opts.StripWidth} {
			sb.WriteString(fmt.Sprintf("<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" %s/>\n", py(y), opts.Width, py(y), outline))
		}
	case BoundaryCircle:
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" %s/>\n", px(0), py(0), scale, outline))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.Stroke))
	for i, w := range z {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(real(w)), py(imag(w))))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(real(w)), py(imag(w))))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
