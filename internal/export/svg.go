package export

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/san-kum/fboinator/internal/chart"
)

// SVG serializes a scene as a standalone SVG document. A nil scene yields nil.
func SVG(scene *chart.Scene) []byte {
	if scene == nil {
		return nil
	}
	n := chart.FormatNumber

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">
`, n(scene.Width), n(scene.Height), n(scene.Width), n(scene.Height)))

	for _, e := range scene.Elements {
		sb.WriteString("  ")
		switch el := e.(type) {
		case chart.Rect:
			sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
				n(el.X), n(el.Y), n(el.W), n(el.H), el.Fill))
		case chart.Line:
			sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
				n(el.X1), n(el.Y1), n(el.X2), n(el.Y2), el.Stroke, n(el.Width)))
		case chart.Polyline:
			pts := make([]string, len(el.Points))
			for i, p := range el.Points {
				pts[i] = n(p.X) + "," + n(p.Y)
			}
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="%s" points="%s"/>`,
				el.Stroke, n(el.Width), strings.Join(pts, " ")))
		case chart.Circle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
				n(el.CX), n(el.CY), n(el.R), el.Fill))
		case chart.Text:
			sb.WriteString(textElement(el))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

func textElement(t chart.Text) string {
	n := chart.FormatNumber
	anchor := "start"
	switch t.Anchor {
	case chart.AnchorMiddle:
		anchor = "middle"
	case chart.AnchorEnd:
		anchor = "end"
	}

	pos := fmt.Sprintf(`x="%s" y="%s"`, n(t.X), n(t.Y))
	if t.Rotate != 0 {
		pos = fmt.Sprintf(`transform="translate(%s, %s) rotate(%s)"`, n(t.X), n(t.Y), n(t.Rotate))
	}

	var body strings.Builder
	_ = xml.EscapeText(&body, []byte(t.Value))

	return fmt.Sprintf(`<text %s text-anchor="%s" font-size="%s" fill="%s">%s</text>`,
		pos, anchor, n(t.Size), t.Fill, body.String())
}
