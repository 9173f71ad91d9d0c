package chart

import (
	"math"

	"github.com/san-kum/fboinator/internal/series"
)

// Frame is a drawing surface with plot margins, in pixels of that surface.
type Frame struct {
	Width, Height                        float64
	PadLeft, PadRight, PadTop, PadBottom float64
}

// ExportFrame is the fixed canvas used by the SVG and PNG exports.
var ExportFrame = Frame{Width: 900, Height: 560, PadLeft: 70, PadRight: 20, PadTop: 20, PadBottom: 90}

func (f Frame) PlotWidth() float64 {
	return f.Width - f.PadLeft - f.PadRight
}

func (f Frame) PlotHeight() float64 {
	return f.Height - f.PadTop - f.PadBottom
}

// Right is the x coordinate of the plot's right edge.
func (f Frame) Right() float64 {
	return f.Width - f.PadRight
}

// Bottom is the y coordinate of the x axis.
func (f Frame) Bottom() float64 {
	return f.Height - f.PadBottom
}

// YTickCount is the number of intervals between y gridlines.
const YTickCount = 5

// Scale maps domain values (index, percent) onto a Frame. It is the only
// place the mapping formulas live.
type Scale struct {
	Frame
	XMin, XMax float64
	YMin, YMax float64
}

// NewScale fits the x domain to the row indices and the y domain to
// [0, max(100, ceil(max value))].
func NewScale(f Frame, rows []series.Row) Scale {
	s := Scale{Frame: f, YMin: 0, YMax: 100}
	if len(rows) == 0 {
		return s
	}
	s.XMin, s.XMax = float64(rows[0].N), float64(rows[0].N)
	top := 0.0
	for _, r := range rows {
		s.XMin = math.Min(s.XMin, float64(r.N))
		s.XMax = math.Max(s.XMax, float64(r.N))
		top = math.Max(top, math.Max(r.PerStep, math.Max(r.Cumulative, r.Average)))
	}
	s.YMax = math.Max(100, math.Ceil(top))
	return s
}

// WithXWindow narrows the x domain, as the interactive zoom does.
func (s Scale) WithXWindow(lo, hi float64) Scale {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.XMin, s.XMax = lo, hi
	return s
}

func (s Scale) xRange() float64 {
	if r := s.XMax - s.XMin; r != 0 {
		return r
	}
	return 1
}

func (s Scale) yRange() float64 {
	if r := s.YMax - s.YMin; r != 0 {
		return r
	}
	return 1
}

// X maps an index to a horizontal pixel position.
func (s Scale) X(v float64) float64 {
	return s.PadLeft + s.PlotWidth()*(v-s.XMin)/s.xRange()
}

// Y maps a percentage to a vertical pixel position; larger values sit higher.
func (s Scale) Y(v float64) float64 {
	return s.PadTop + s.PlotHeight() - s.PlotHeight()*(v-s.YMin)/s.yRange()
}

// InvertX maps a horizontal pixel position back to the x domain.
func (s Scale) InvertX(px float64) float64 {
	w := s.PlotWidth()
	if w == 0 {
		return s.XMin
	}
	return s.XMin + (px-s.PadLeft)/w*s.xRange()
}

// YTicks returns the gridline values from YMin to YMax inclusive.
func (s Scale) YTicks() []float64 {
	ticks := make([]float64, 0, YTickCount+1)
	for i := 0; i <= YTickCount; i++ {
		ticks = append(ticks, s.YMin+float64(i)*(s.YMax-s.YMin)/YTickCount)
	}
	return ticks
}

// XTicks returns every integer index inside the x domain.
func (s Scale) XTicks() []int {
	var ticks []int
	for x := int(math.Ceil(s.XMin)); float64(x) <= s.XMax; x++ {
		ticks = append(ticks, x)
	}
	return ticks
}

// Contains reports whether an index lies in the visible x domain.
func (s Scale) Contains(x float64) bool {
	return x >= s.XMin && x <= s.XMax
}
