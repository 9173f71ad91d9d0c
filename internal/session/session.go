// Package session owns the state behind one interactive view: the raw input
// text, the generated rows, series visibility and annotations. Every input
// change runs Recompute synchronously; renderers and exporters read from the
// session instead of from shared globals.
package session

import (
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/config"
	"github.com/san-kum/fboinator/internal/export"
	"github.com/san-kum/fboinator/internal/series"
)

type Session struct {
	baseText   string
	growthText string
	maxText    string
	model      series.Model

	defaults series.Params
	rows     []series.Row
	inputErr error

	visible     chart.Visibility
	annotations annotate.State
}

// New seeds a session from cfg and computes the first rows.
func New(cfg *config.Config) *Session {
	p := cfg.Params()
	s := &Session{
		defaults:    p,
		model:       p.Model,
		visible:     cfg.Visibility(),
		annotations: annotate.NewState(cfg.AnnotationText(), cfg.Annotations.Enabled),
	}
	s.setInputs(p)
	s.Recompute()
	return s
}

// FormatBase, FormatGrowth and FormatMax render parameters the way the
// input fields show their defaults ("2.00", "40.0", "10"). A value the fixed
// precision would round is written out in full, so parsing the text back
// always yields the same number.
func FormatBase(v float64) string   { return formatRate(v, 2) }
func FormatGrowth(v float64) string { return formatRate(v, 1) }
func FormatMax(v int) string        { return strconv.Itoa(v) }

func formatRate(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if back, err := strconv.ParseFloat(s, 64); err == nil && back == v {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Session) setInputs(p series.Params) {
	s.baseText = FormatBase(p.BaseRate)
	s.growthText = FormatGrowth(p.GrowthRate)
	s.maxText = FormatMax(p.MaxIndex)
}

// Recompute regenerates the rows from the current input text. Unusable input
// leaves the session empty.
func (s *Session) Recompute() {
	p, err := series.ParseParams(s.baseText, s.growthText, s.maxText, s.model)
	if err != nil {
		s.rows = nil
		s.inputErr = err
		log.WithError(err).Debug("input not usable, chart cleared")
		return
	}
	s.inputErr = nil
	s.rows = series.Generate(p)
	log.WithFields(log.Fields{
		"base":   p.BaseRate,
		"growth": p.GrowthRate,
		"max":    p.MaxIndex,
		"model":  p.Model.String(),
	}).Debug("series recomputed")
}

func (s *Session) SetBase(text string) {
	s.baseText = text
	s.Recompute()
}

func (s *Session) SetGrowth(text string) {
	s.growthText = text
	s.Recompute()
}

func (s *Session) SetMax(text string) {
	s.maxText = text
	s.Recompute()
}

func (s *Session) SetModel(m series.Model) {
	s.model = m
	s.Recompute()
}

// CycleModel switches to the other growth model.
func (s *Session) CycleModel() series.Model {
	if s.model == series.Multiplicative {
		s.SetModel(series.Odds)
	} else {
		s.SetModel(series.Multiplicative)
	}
	return s.model
}

// Reset restores the three numeric defaults. Visibility, annotations and
// the model are left alone.
func (s *Session) Reset() {
	s.setInputs(s.defaults)
	s.Recompute()
}

func (s *Session) Inputs() (base, growth, maxN string) {
	return s.baseText, s.growthText, s.maxText
}

func (s *Session) Model() series.Model { return s.model }

// Rows returns the current rows; callers must not modify them.
func (s *Session) Rows() []series.Row { return s.rows }

// InputErr is the reason the session is empty, if it is.
func (s *Session) InputErr() error { return s.inputErr }

func (s *Session) CanExport() bool { return len(s.rows) > 0 }

func (s *Session) Visible() chart.Visibility { return s.visible }

func (s *Session) SetVisible(i int, on bool) {
	if i < 0 || i >= chart.NumSeries {
		return
	}
	s.visible[i] = on
}

// Toggle flips one series and returns its new state.
func (s *Session) Toggle(i int) bool {
	if i < 0 || i >= chart.NumSeries {
		return false
	}
	s.visible[i] = !s.visible[i]
	return s.visible[i]
}

func (s *Session) Annotations() annotate.State { return s.annotations }

func (s *Session) SetAnnotationText(text string) { s.annotations.SetText(text) }

func (s *Session) SetAnnotationsEnabled(on bool) { s.annotations.SetEnabled(on) }

// Scene lays out the export chart for the current state; nil when empty.
func (s *Session) Scene() *chart.Scene {
	return chart.BuildScene(s.rows, chart.Options{
		Visible:     s.visible,
		Annotations: s.annotations.Active(),
	})
}

// ExportSVG, ExportPNG and ExportCSV write one file each through d. With no
// rows they do nothing and return export.ErrNoData.
func (s *Session) ExportSVG(d *export.Downloader) (string, error) {
	return s.export("svg", func() (string, error) { return d.SVG(s.Scene()) })
}

func (s *Session) ExportPNG(d *export.Downloader) (string, error) {
	return s.export("png", func() (string, error) { return d.PNG(s.Scene()) })
}

func (s *Session) ExportCSV(d *export.Downloader) (string, error) {
	return s.export("csv", func() (string, error) { return d.CSV(s.rows) })
}

func (s *Session) export(kind string, run func() (string, error)) (string, error) {
	if !s.CanExport() {
		return "", export.ErrNoData
	}
	path, err := run()
	if err != nil {
		entry := log.WithError(err).WithField("format", kind)
		if errors.Is(err, export.ErrFontDecode) {
			entry.Warn("raster export abandoned")
		} else {
			entry.Error("export failed")
		}
		return "", fmt.Errorf("export %s: %w", kind, err)
	}
	log.WithFields(log.Fields{"format": kind, "path": path, "rows": len(s.rows)}).Info("export written")
	return path, nil
}
