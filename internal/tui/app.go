package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/export"
	"github.com/san-kum/fboinator/internal/session"
)

type focus int

const (
	focusChart focus = iota
	focusBase
	focusGrowth
	focusMax
	focusAnnotations
)

const (
	gutterWidth  = 7
	editorHeight = 5
	panFraction  = 0.1
	minSpan      = 1.0
)

// drag tracks a mouse gesture over the chart. The scale is frozen at press
// time so a pan does not chase its own output.
type drag struct {
	active bool
	pan    bool
	from   int
	to     int
	scale  chart.Scale
}

type Model struct {
	sess *session.Session
	dl   *export.Downloader

	focus  focus
	inputs [3]textinput.Model
	editor textarea.Model
	help   help.Model

	zoomed   bool
	xLo, xHi float64
	drag     drag
	hover    int

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the interactive model over s. Exports are written through d.
func New(s *session.Session, d *export.Downloader) Model {
	m := Model{
		sess:   s,
		dl:     d,
		help:   help.New(),
		hover:  -1,
		width:  80,
		height: 24,
	}
	prompts := [3]string{"base % ", "growth % ", "max n "}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = prompts[i]
		ti.PromptStyle = dim
		ti.CharLimit = 16
		ti.Width = 8
		m.inputs[i] = ti
	}
	m.syncInputs()

	ed := textarea.New()
	ed.Placeholder = "index,label"
	ed.ShowLineNumbers = false
	ed.SetHeight(editorHeight)
	ed.SetValue(s.Annotations().Text())
	m.editor = ed
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(s *session.Session, d *export.Downloader) error {
	p := tea.NewProgram(New(s, d), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) syncInputs() {
	base, growth, maxN := m.sess.Inputs()
	for i, v := range [3]string{base, growth, maxN} {
		m.inputs[i].SetValue(v)
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(max(20, msg.Width-4))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = dim
	}
	m.editor.Blur()
	m.focus = f
	switch {
	case f >= focusBase && f <= focusMax:
		m.inputs[f-focusBase].PromptStyle = cyan
		return m.inputs[f-focusBase].Focus()
	case f == focusAnnotations:
		return m.editor.Focus()
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.focus {
	case focusAnnotations:
		return m.editorKey(msg)
	case focusBase, focusGrowth, focusMax:
		return m.inputKey(msg)
	}
	return m.chartKey(msg)
}

func (m Model) inputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		next := m.focus + 1
		if next > focusMax {
			next = focusChart
		}
		return m, m.setFocus(next)
	case key.Matches(msg, keys.Prev):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, keys.Leave):
		return m, m.setFocus(focusChart)
	}

	i := int(m.focus - focusBase)
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if v := m.inputs[i].Value(); v != before {
		switch m.focus {
		case focusBase:
			m.sess.SetBase(v)
		case focusGrowth:
			m.sess.SetGrowth(v)
		case focusMax:
			m.sess.SetMax(v)
		}
	}
	return m, cmd
}

func (m Model) editorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, keys.Leave) {
		return m, m.setFocus(focusChart)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != m.sess.Annotations().Text() {
		m.sess.SetAnnotationText(v)
	}
	return m, cmd
}

func (m Model) chartKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Next):
		return m, m.setFocus(focusBase)
	case key.Matches(msg, keys.Prev):
		return m, m.setFocus(focusMax)
	case key.Matches(msg, keys.Toggle):
		i := int(msg.String()[0] - '1')
		on := m.sess.Toggle(i)
		log.WithFields(log.Fields{"series": chart.Series[i].Key, "visible": on}).Debug("visibility toggled")
	case key.Matches(msg, keys.Model):
		mod := m.sess.CycleModel()
		m.setStatus("growth model: "+mod.String(), false)
	case key.Matches(msg, keys.Annotate):
		m.sess.SetAnnotationsEnabled(!m.sess.Annotations().Enabled)
	case key.Matches(msg, keys.Edit):
		return m, m.setFocus(focusAnnotations)
	case key.Matches(msg, keys.SVG):
		m.export("svg")
	case key.Matches(msg, keys.PNG):
		m.export("png")
	case key.Matches(msg, keys.CSV):
		m.export("csv")
	case key.Matches(msg, keys.Reset):
		m.sess.Reset()
		m.syncInputs()
		m.setStatus("inputs reset", false)
	case key.Matches(msg, keys.Unzoom):
		m.zoomed = false
	case key.Matches(msg, keys.Left):
		m.pan(-1)
	case key.Matches(msg, keys.Right):
		m.pan(1)
	case key.Matches(msg, keys.ZoomIn):
		m.zoom(0.5)
	case key.Matches(msg, keys.ZoomOut):
		m.zoom(2)
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) export(kind string) {
	if !m.sess.CanExport() {
		m.setStatus("nothing to export", true)
		return
	}
	var (
		path string
		err  error
	)
	switch kind {
	case "svg":
		path, err = m.sess.ExportSVG(m.dl)
	case "png":
		path, err = m.sess.ExportPNG(m.dl)
	case "csv":
		path, err = m.sess.ExportCSV(m.dl)
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("saved "+path, false)
}

// fullScale spans every row; window narrows it to the current zoom.
func (m Model) fullScale(f chart.Frame) chart.Scale {
	return chart.NewScale(f, m.sess.Rows())
}

func (m Model) window(full chart.Scale) (lo, hi float64) {
	if !m.zoomed {
		return full.XMin, full.XMax
	}
	lo, hi = m.xLo, m.xHi
	span := hi - lo
	if span >= full.XMax-full.XMin {
		return full.XMin, full.XMax
	}
	if lo < full.XMin {
		lo, hi = full.XMin, full.XMin+span
	}
	if hi > full.XMax {
		lo, hi = full.XMax-span, full.XMax
	}
	return lo, hi
}

func (m *Model) setWindow(lo, hi float64) {
	full := m.fullScale(chart.Frame{})
	if hi-lo >= full.XMax-full.XMin {
		m.zoomed = false
		return
	}
	m.zoomed = true
	m.xLo, m.xHi = lo, hi
	m.xLo, m.xHi = m.window(full)
}

func (m *Model) zoom(factor float64) {
	if !m.sess.CanExport() {
		return
	}
	lo, hi := m.window(m.fullScale(chart.Frame{}))
	c := (lo + hi) / 2
	half := math.Max(minSpan, (hi-lo)*factor) / 2
	m.setWindow(c-half, c+half)
}

func (m *Model) pan(dir float64) {
	if !m.zoomed {
		return
	}
	lo, hi := m.window(m.fullScale(chart.Frame{}))
	d := dir * math.Max(1, (hi-lo)*panFraction)
	m.setWindow(lo+d, hi+d)
}

type layout struct {
	cw, ch   int
	chartTop int
}

func (m Model) layout() layout {
	extra := 0
	if m.focus == focusAnnotations {
		extra = editorHeight + 1
	}
	return layout{
		cw:       max(20, m.width-gutterWidth-2),
		ch:       max(8, m.height-12-extra),
		chartTop: 4,
	}
}

// chartHeadroom keeps the top braille row free so the 100% gridline and a
// saturated series do not sit on the canvas edge.
const chartHeadroom = 4

// frame is the canvas surface in braille sub-pixels.
func (l layout) frame() chart.Frame {
	return chart.Frame{Width: float64(l.cw*2 - 1), Height: float64(l.ch*4 - 1), PadTop: chartHeadroom}
}

func (m Model) scale(l layout) chart.Scale {
	full := m.fullScale(l.frame())
	return full.WithXWindow(m.window(full))
}

// column converts a screen column to a canvas cell column, clamped.
func (l layout) column(x int) int {
	return min(max(x-gutterWidth, 0), l.cw-1)
}

func (l layout) inChart(x, y int) bool {
	return y >= l.chartTop && y < l.chartTop+l.ch && x >= gutterWidth && x < gutterWidth+l.cw
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	l := m.layout()
	if !m.sess.CanExport() {
		return m
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if !l.inChart(msg.X, msg.Y) {
				return m
			}
			col := l.column(msg.X)
			m.drag = drag{active: true, pan: msg.Shift, from: col, to: col, scale: m.scale(l)}
		case tea.MouseButtonWheelUp:
			m.zoom(0.5)
		case tea.MouseButtonWheelDown:
			m.zoom(2)
		}
	case tea.MouseActionMotion:
		if !m.drag.active {
			m.hover = -1
			if l.inChart(msg.X, msg.Y) {
				s := m.scale(l)
				m.hover = int(math.Round(s.InvertX(float64(l.column(msg.X) * 2))))
			}
			return m
		}
		m.drag.to = l.column(msg.X)
		if m.drag.pan {
			s := m.drag.scale
			d := s.InvertX(float64(m.drag.from*2)) - s.InvertX(float64(m.drag.to*2))
			m.setWindow(s.XMin+d, s.XMax+d)
		}
	case tea.MouseActionRelease:
		if !m.drag.active {
			return m
		}
		g := m.drag
		m.drag = drag{}
		g.to = l.column(msg.X)
		if g.pan || absInt(g.to-g.from) < 2 {
			return m
		}
		a := g.scale.InvertX(float64(min(g.from, g.to) * 2))
		b := g.scale.InvertX(float64(max(g.from, g.to) * 2))
		if b-a < minSpan {
			c := (a + b) / 2
			a, b = c-minSpan/2, c+minSpan/2
		}
		m.setWindow(a, b)
		log.WithFields(log.Fields{"from": m.xLo, "to": m.xHi}).Debug("zoomed")
	}
	return m
}

func (m Model) windowLabel() string {
	if !m.zoomed {
		return ""
	}
	lo, hi := m.window(m.fullScale(chart.Frame{}))
	return fmt.Sprintf("zoom %s..%s", chart.FormatNumber(math.Round(lo*10)/10), chart.FormatNumber(math.Round(hi*10)/10))
}
