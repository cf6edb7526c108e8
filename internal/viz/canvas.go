package viz

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/san-kum/loewner/internal/export"
	"github.com/san-kum/loewner/internal/loewner"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Each cell holds 2x4 sub-pixels, so the
// drawable area is (2*Width) x (4*Height) pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	// viewport in the complex plane, set by Fit
	minX, minY, scale float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		scale:  1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y); y grows downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Fit sets the viewport so that every point of z, plus extra, is visible
// with equal scale on both axes.
func (c *Canvas) Fit(z loewner.Trace, extra ...complex128) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pts := range [][]complex128{z, extra} {
		for _, w := range pts {
			minX, maxX = math.Min(minX, real(w)), math.Max(maxX, real(w))
			minY, maxY = math.Min(minY, imag(w)), math.Max(maxY, imag(w))
		}
	}
	if math.IsInf(minX, 0) {
		minX, maxX, minY, maxY = -1, 1, -1, 1
	}

	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	pw, ph := float64(2*c.Width-1), float64(4*c.Height-1)
	c.scale = math.Min(pw/spanX, ph/spanY)
	c.minX = minX - (pw/c.scale-spanX)/2
	c.minY = minY - (ph/c.scale-spanY)/2
}

// Pixel maps a point of the complex plane to sub-pixel coordinates.
func (c *Canvas) Pixel(w complex128) (int, int) {
	x := (real(w) - c.minX) * c.scale
	y := (imag(w) - c.minY) * c.scale
	return int(math.Round(x)), 4*c.Height - 1 - int(math.Round(y))
}

// Path draws the polyline through the points of z.
func (c *Canvas) Path(z loewner.Trace) {
	for i := range z {
		x1, y1 := c.Pixel(z[i])
		if i == 0 {
			c.Set(x1, y1)
			continue
		}
		x0, y0 := c.Pixel(z[i-1])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Plot renders z on a w x h cell canvas together with the outline of the
// named domain. stripWidth is only used by the dipolar strip.
func Plot(z loewner.Trace, domain string, stripWidth float64, w, h int) string {
	c := NewCanvas(w, h)
	boundary := export.BoundaryFor(domain)

	var extra []complex128
	switch boundary {
	case export.BoundaryCircle:
		extra = circle(64)
	case export.BoundaryStrip:
		extra = []complex128{complex(0, math.Pi*stripWidth)}
	case export.BoundaryLine:
		extra = []complex128{0}
	}
	c.Fit(z, extra...)

	switch boundary {
	case export.BoundaryCircle:
		c.Path(append(extra, extra[0]))
	case export.BoundaryStrip:
		c.hline(0)
		c.hline(math.Pi * stripWidth)
	case export.BoundaryLine:
		c.hline(0)
	}
	c.Path(z)
	return c.String()
}

func (c *Canvas) hline(y float64) {
	_, py := c.Pixel(complex(0, y))
	c.DrawLine(0, py, 2*c.Width-1, py)
}

func circle(n int) []complex128 {
	pts := make([]complex128, n)
	for k := range pts {
		pts[k] = cmplx.Rect(1, 2*math.Pi*float64(k)/float64(n))
	}
	return pts
}
