package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an sRGB color with straight alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Hex parses "#rrggbb". It panics on malformed input and is only used for
// package-level constants.
func Hex(s string) Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(s) != 7 {
		panic(fmt.Sprintf("chart: bad color %q", s))
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}
}

func RGBA(r, g, b uint8, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// String renders the color the way SVG attributes expect it.
func (c Color) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Floats returns the channels scaled to [0,1].
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, c.A
}

// SeriesStyle describes one plotted line.
type SeriesStyle struct {
	Key   string
	Label string
	Color Color

	// ANSI is the 256-color code closest to Color, for terminals.
	ANSI string
}

const NumSeries = 3

var Series = [NumSeries]SeriesStyle{
	{Key: "this", Label: "P[this son is gay]", Color: Hex("#4aa3ff"), ANSI: "75"},
	{Key: "any", Label: "P[≥1 gay son up to n]", Color: Hex("#23c55e"), ANSI: "41"},
	{Key: "expected", Label: "Expected fraction", Color: Hex("#ff6b6b"), ANSI: "203"},
}

const (
	XTitle = "Number of prior sons (n)"
	YTitle = "Probability (%)"
)

var (
	White      = Hex("#ffffff")
	Black      = Hex("#000000")
	GridMajor  = RGBA(0, 0, 0, 0.2)
	GridMinor  = RGBA(0, 0, 0, 0.12)
	MarkerInk  = Hex("#333333")
	FontSize   = 12.0
	MarkerFont = 11.0
)

// SeriesIndex resolves a series key ("this", "any", "expected").
func SeriesIndex(key string) (int, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, s := range Series {
		if s.Key == key {
			return i, true
		}
	}
	return 0, false
}

// Visibility flags one entry per series.
type Visibility [NumSeries]bool

func AllVisible() Visibility { return Visibility{true, true, true} }

// Hidden builds a Visibility with the named series switched off.
func Hidden(keys []string) (Visibility, error) {
	v := AllVisible()
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		i, ok := SeriesIndex(k)
		if !ok {
			return v, fmt.Errorf("unknown series %q", k)
		}
		v[i] = false
	}
	return v, nil
}
