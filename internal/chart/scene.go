package chart

import (
	"math"
	"strconv"

	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/series"
)

// Element is one vector primitive of a Scene.
type Element interface {
	element()
}

type Point struct{ X, Y float64 }

type Rect struct {
	X, Y, W, H float64
	Fill       Color
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Color
	Width          float64
}

type Polyline struct {
	Points []Point
	Stroke Color
	Width  float64
}

type Circle struct {
	CX, CY, R float64
	Fill      Color
}

type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Text is positioned at its baseline. A non-zero Rotate (degrees) turns the
// text around (X, Y).
type Text struct {
	X, Y   float64
	Value  string
	Anchor Anchor
	Size   float64
	Fill   Color
	Rotate float64
}

func (Rect) element()     {}
func (Line) element()     {}
func (Polyline) element() {}
func (Circle) element()   {}
func (Text) element()     {}

// Scene is an ordered, renderer-independent description of the exported
// chart. Later elements paint over earlier ones.
type Scene struct {
	Width, Height float64
	Elements      []Element
}

func (s *Scene) add(e ...Element) { s.Elements = append(s.Elements, e...) }

// Options selects what BuildScene draws on top of the always-present axes.
type Options struct {
	Visible     Visibility
	Annotations []annotate.Annotation
}

// FormatNumber prints a coordinate or label compactly ("70", "12.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildScene lays out the full export chart. It returns nil for empty rows.
func BuildScene(rows []series.Row, opt Options) *Scene {
	if len(rows) == 0 {
		return nil
	}
	f := ExportFrame
	sc := NewScale(f, rows)
	s := &Scene{Width: f.Width, Height: f.Height}

	s.add(Rect{X: 0, Y: 0, W: f.Width, H: f.Height, Fill: White})

	for _, y := range sc.YTicks() {
		py := sc.Y(y)
		s.add(
			Line{X1: f.PadLeft, Y1: py, X2: f.Right(), Y2: py, Stroke: GridMajor, Width: 1},
			Text{X: f.PadLeft - 10, Y: py + 4, Value: strconv.Itoa(int(math.Round(y))) + "%", Anchor: AnchorEnd, Size: FontSize, Fill: Black},
		)
	}
	for _, x := range sc.XTicks() {
		px := sc.X(float64(x))
		s.add(
			Line{X1: px, Y1: f.PadTop, X2: px, Y2: f.Bottom(), Stroke: GridMinor, Width: 1},
			Text{X: px, Y: f.Bottom() + 24, Value: strconv.Itoa(x), Anchor: AnchorMiddle, Size: FontSize, Fill: Black},
		)
	}

	s.add(
		Line{X1: f.PadLeft, Y1: f.PadTop, X2: f.PadLeft, Y2: f.Bottom(), Stroke: Black, Width: 1.5},
		Line{X1: f.PadLeft, Y1: f.Bottom(), X2: f.Right(), Y2: f.Bottom(), Stroke: Black, Width: 1.5},
	)

	for i, st := range Series {
		if !opt.Visible[i] {
			continue
		}
		pts := make([]Point, len(rows))
		for j, r := range rows {
			pts[j] = Point{X: sc.X(float64(r.N)), Y: sc.Y(r.Value(i))}
		}
		s.add(Polyline{Points: pts, Stroke: st.Color, Width: 2.2})
	}

	s.add(
		Text{X: f.Width / 2, Y: f.Height - 18, Value: XTitle, Anchor: AnchorMiddle, Size: FontSize, Fill: Black},
		Text{X: 16, Y: f.Height / 2, Value: YTitle, Anchor: AnchorMiddle, Size: FontSize, Fill: Black, Rotate: -90},
	)

	slot := 0
	for i, st := range Series {
		if !opt.Visible[i] {
			continue
		}
		dy := float64(slot) * 20
		s.add(
			Circle{CX: f.Width - 260, CY: f.PadTop + 16 + dy, R: 5, Fill: st.Color},
			Text{X: f.Width - 248, Y: f.PadTop + 20 + dy, Value: st.Label, Anchor: AnchorStart, Size: FontSize, Fill: Black},
		)
		slot++
	}

	for _, m := range Place(sc, rows, opt.Annotations, ExportMarks) {
		s.add(
			Line{X1: m.X, Y1: m.TickTop, X2: m.X, Y2: m.TickBottom, Stroke: MarkerInk, Width: 1.5},
			Text{X: m.X, Y: m.LabelY, Value: m.Label, Anchor: AnchorMiddle, Size: MarkerFont, Fill: MarkerInk},
		)
	}
	return s
}
