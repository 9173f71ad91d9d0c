package chart

import (
	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/series"
)

// MarkStyle sizes the annotation overlay in the pixels of a Frame.
type MarkStyle struct {
	TickHalf  float64
	LabelBase float64
	LabelStep float64
}

// ExportMarks is the overlay sizing on the export canvas.
var ExportMarks = MarkStyle{TickHalf: 6, LabelBase: 14, LabelStep: 14}

// Mark is one placed annotation: a vertical tick centered on the anchor and
// a label centered above it.
type Mark struct {
	annotate.Annotation
	X, Y       float64
	TickTop    float64
	TickBottom float64
	LabelY     float64

	// Stack is the position among annotations sharing the same index.
	Stack int
}

// LabelOffset is the distance between the anchor and the k-th stacked label.
func (m MarkStyle) LabelOffset(k int) float64 {
	return m.LabelBase + float64(k)*m.LabelStep
}

// Place anchors each annotation at (index, per-step percent). Annotations
// for indices outside the rows or the scale's x domain are skipped. Labels
// sharing an index stack upward in the order they were given.
func Place(s Scale, rows []series.Row, items []annotate.Annotation, st MarkStyle) []Mark {
	if len(rows) == 0 || len(items) == 0 {
		return nil
	}
	perStep := make(map[int]float64, len(rows))
	for _, r := range rows {
		perStep[r.N] = r.PerStep
	}

	stack := make(map[int]int)
	marks := make([]Mark, 0, len(items))
	for _, a := range items {
		v, ok := perStep[a.Index]
		if !ok || !s.Contains(float64(a.Index)) {
			continue
		}
		k := stack[a.Index]
		stack[a.Index] = k + 1

		x, y := s.X(float64(a.Index)), s.Y(v)
		marks = append(marks, Mark{
			Annotation: a,
			X:          x,
			Y:          y,
			TickTop:    y - st.TickHalf,
			TickBottom: y + st.TickHalf,
			LabelY:     y - st.LabelOffset(k),
			Stack:      k,
		})
	}
	return marks
}
