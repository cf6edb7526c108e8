package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/loewner/internal/loewner"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	assert.Equal(t, "⠀⠀\n", c.String())

	c.Set(0, 0)
	c.Set(3, 3)
	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	c.Clear()
	assert.Equal(t, "⠀⠀\n", c.String())
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(1, 1)
	c.DrawLine(0, 0, 1, 3)
	assert.Equal(t, rune(0x2800|0x1|0x80), c.Grid[0][0]&(0x2800|0x1|0x80))
}

func TestCanvasFit(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Fit(loewner.Trace{0, 2i, 1 + 1i})

	x0, y0 := c.Pixel(0)
	x1, y1 := c.Pixel(2i)
	assert.Equal(t, x0, x1)
	assert.Greater(t, y0, y1, "imaginary axis points up")
	assert.Equal(t, 4*c.Height-1, y0)
	assert.Equal(t, 0, y1)
}

func TestPlot(t *testing.T) {
	z := loewner.Trace{0, 0.1 + 0.5i, -0.2 + 1i, 0.3 + 1.4i}
	for _, domain := range []string{"chordal", "dipolar", "unknown"} {
		out := Plot(z, domain, 1, 20, 6)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 6, domain)
		for _, line := range lines {
			assert.Equal(t, 20, len([]rune(line)), domain)
		}
		assert.NotEqual(t, strings.Repeat("⠀", 20), lines[0], domain)
	}
}

func TestPlotRadial(t *testing.T) {
	z := loewner.Trace{1, 0.8, 0.6 + 0.1i}
	out := Plot(z, "radial", 0, 12, 6)
	assert.Contains(t, out, "\n")
	// the unit circle touches every edge of the fitted square
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.NotEqual(t, strings.Repeat("⠀", 12), lines[0])
	assert.NotEqual(t, strings.Repeat("⠀", 12), lines[len(lines)-1])
}

func TestPlotEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Plot(nil, "chordal", 1, 4, 2) })
	assert.NotPanics(t, func() { Plot(nil, "unknown", 1, 4, 2) })
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "───", Sparkline(nil, 3))
	assert.Equal(t, "", Sparkline([]float64{1}, 0))
	out := Sparkline([]float64{0, 1, 2, 3}, 4)
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
}
