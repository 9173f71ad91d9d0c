package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/series"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var inkStyles = func() map[ink]lipgloss.Style {
	st := map[ink]lipgloss.Style{
		inkGrid:   dimmer,
		inkMarker: white,
	}
	for i, s := range chart.Series {
		st[seriesInk(i)] = lipgloss.NewStyle().Foreground(lipgloss.Color(s.ANSI))
	}
	return st
}()

// termMarks sizes the annotation overlay in braille sub-pixels.
var termMarks = chart.MarkStyle{TickHalf: 2, LabelBase: 4, LabelStep: 4}

func (m Model) View() string {
	l := m.layout()
	lines := []string{m.titleLine(), "", m.inputsLine(), ""}

	rows := m.sess.Rows()
	if len(rows) == 0 {
		lines = append(lines, m.emptyChart(l)...)
	} else {
		lines = append(lines, m.plot(l)...)
	}
	lines = append(lines, "", m.legendLine(), m.annotationLine())
	if m.focus == focusAnnotations {
		lines = append(lines, m.editor.View())
	}
	lines = append(lines, m.statusLine(), m.help.View(keys))
	return strings.Join(lines, "\n")
}

func (m Model) titleLine() string {
	s := cyan.Render("fboinator") + dim.Render("  model: "+m.sess.Model().String())
	if z := m.windowLabel(); z != "" {
		s += dim.Render("  " + z)
	}
	return s
}

func (m Model) inputsLine() string {
	parts := make([]string, len(m.inputs))
	for i := range m.inputs {
		parts[i] = m.inputs[i].View()
	}
	return strings.Join(parts, "   ")
}

func (m Model) emptyChart(l layout) []string {
	blank := strings.Repeat(" ", l.cw)
	out := make([]string, 0, l.ch+3)
	for row := 0; row < l.ch; row++ {
		line := blank
		if row == l.ch/2 {
			line = lipgloss.PlaceHorizontal(l.cw, lipgloss.Center, dim.Render("no data"))
		}
		out = append(out, dimmer.Render("      │")+line)
	}
	return append(out, m.axisLine(l), "", m.xTitleLine(l))
}

func (m Model) axisLine(l layout) string {
	return dimmer.Render("      └" + strings.Repeat("─", l.cw))
}

func (m Model) xTitleLine(l layout) string {
	return strings.Repeat(" ", gutterWidth) + lipgloss.PlaceHorizontal(l.cw, lipgloss.Center, dim.Render(chart.XTitle))
}

// plot draws the chart rows, the x axis, its labels and its title.
func (m Model) plot(l layout) []string {
	rows := m.sess.Rows()
	s := m.scale(l)
	c := NewCanvas(l.cw, l.ch)

	gutter := make([]string, l.ch)
	for i := range gutter {
		gutter[i] = "      │"
	}
	for _, t := range s.YTicks() {
		py := int(math.Round(s.Y(t)))
		for x := 0; x < c.Width*2; x += 4 {
			c.Set(x, py, inkGrid)
		}
		if row := py / 4; row >= 0 && row < l.ch {
			gutter[row] = fmt.Sprintf("%5s ┤", chart.FormatNumber(math.Round(t*10)/10))
		}
	}

	vis := m.sess.Visible()
	for i := range chart.Series {
		if vis[i] {
			drawSeries(c, s, rows, i)
		}
	}

	for _, mk := range chart.Place(s, rows, m.sess.Annotations().Active(), termMarks) {
		x := int(math.Round(mk.X))
		c.DrawLine(x, int(math.Round(mk.TickTop)), x, int(math.Round(mk.TickBottom)), inkMarker)
		c.PutText(x/2, int(math.Floor(mk.LabelY/4)), mk.Label)
	}

	canvas := c.Render(inkStyles)
	out := make([]string, 0, l.ch+3)
	for row := range canvas {
		out = append(out, dimmer.Render(gutter[row])+canvas[row])
	}
	return append(out, m.axisLine(l), dim.Render(xLabels(s, l)), m.xTitleLine(l))
}

func drawSeries(c *Canvas, s chart.Scale, rows []series.Row, i int) {
	k := seriesInk(i)
	pt := func(r series.Row) (int, int) {
		return int(math.Round(s.X(float64(r.N)))), int(math.Round(s.Y(r.Value(i))))
	}
	if len(rows) == 1 {
		x, y := pt(rows[0])
		c.Set(x, y, k)
		return
	}
	for j := 0; j+1 < len(rows); j++ {
		a, b := rows[j], rows[j+1]
		if float64(b.N) < s.XMin || float64(a.N) > s.XMax {
			continue
		}
		x0, y0 := pt(a)
		x1, y1 := pt(b)
		c.DrawLine(x0, y0, x1, y1, k)
	}
}

// xLabels spaces integer index labels under the axis, thinning them when
// they would collide.
func xLabels(s chart.Scale, l layout) string {
	ticks := s.XTicks()
	buf := []rune(strings.Repeat(" ", gutterWidth+l.cw))
	if len(ticks) == 0 {
		return string(buf)
	}
	widest := len(fmt.Sprint(ticks[len(ticks)-1]))
	step := 1
	if fit := l.cw / (widest + 2); fit > 0 && len(ticks) > fit {
		step = (len(ticks) + fit - 1) / fit
	}
	last := -1
	for j := 0; j < len(ticks); j += step {
		label := fmt.Sprint(ticks[j])
		col := gutterWidth + int(math.Round(s.X(float64(ticks[j]))))/2
		start := col - len(label)/2
		if start <= last || start < 0 || start+len(label) > len(buf) {
			continue
		}
		copy(buf[start:], []rune(label))
		last = start + len(label)
	}
	return string(buf)
}

// legendRow is the row the legend reports: the hovered index when there is
// one, the last row otherwise.
func (m Model) legendRow() (series.Row, bool) {
	rows := m.sess.Rows()
	if len(rows) == 0 {
		return series.Row{}, false
	}
	if m.hover >= 0 && m.hover < len(rows) {
		return rows[m.hover], true
	}
	return rows[len(rows)-1], true
}

func (m Model) legendLine() string {
	r, ok := m.legendRow()
	vis := m.sess.Visible()
	var parts []string
	if ok {
		parts = append(parts, dim.Render(fmt.Sprintf("n=%d", r.N)))
	}
	for i, st := range chart.Series {
		value := "--"
		if ok {
			value = fmt.Sprintf("%.2f%%", r.Value(i))
		}
		entry := fmt.Sprintf("%d %s %s", i+1, st.Label, value)
		if !vis[i] {
			parts = append(parts, dimmer.Render("○ "+entry))
			continue
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(st.ANSI)).Render("●")
		parts = append(parts, dot+" "+white.Render(entry))
	}
	return strings.Join(parts, "   ")
}

func (m Model) annotationLine() string {
	a := m.sess.Annotations()
	state := "off"
	if a.Enabled {
		state = "on"
	}
	return dim.Render(fmt.Sprintf("annotations %s · %d parsed", state, len(a.Items())))
}

func (m Model) statusLine() string {
	if m.drag.active && !m.drag.pan {
		s := m.drag.scale
		a := s.InvertX(float64(min(m.drag.from, m.drag.to) * 2))
		b := s.InvertX(float64(max(m.drag.from, m.drag.to) * 2))
		return dim.Render(fmt.Sprintf("zoom to %.1f..%.1f", a, b))
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return red.Render(m.status)
	}
	return green.Render(m.status)
}
