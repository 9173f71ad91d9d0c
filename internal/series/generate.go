package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Clamp limits a probability to [0, MaxProbability]. NaN clamps to 0.
func Clamp(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

// stepProbability returns the unclamped probability at index n.
func stepProbability(m Model, base, growth float64, n int) float64 {
	factor := math.Pow(1+growth, float64(n))
	switch m {
	case Odds:
		if base >= 1 {
			return 1
		}
		odds := base / (1 - base) * factor
		if math.IsInf(odds, 1) {
			return 1
		}
		return odds / (1 + odds)
	default:
		return base * factor
	}
}

// Generate computes rows for indices 0..p.MaxIndex. MaxIndex is clamped to
// [0, MaxIndexLimit].
func Generate(p Params) []Row {
	maxN := min(max(p.MaxIndex, 0), MaxIndexLimit)
	base := p.BaseRate / 100
	growth := p.GrowthRate / 100

	rows := make([]Row, 0, maxN+1)
	notYet := 1.0
	sum := 0.0
	for n := 0; n <= maxN; n++ {
		prob := Clamp(stepProbability(p.Model, base, growth, n))
		sum += prob
		notYet *= 1 - prob
		rows = append(rows, Row{
			N:          n,
			PerStep:    prob * 100,
			Cumulative: Clamp(1-notYet) * 100,
			Average:    sum / float64(n+1) * 100,
		})
	}
	return rows
}

// ParseParams reads the three free-form input fields. Rates must be finite
// and the base rate non-negative. A fractional index is truncated; a negative
// one or one above MaxIndexLimit is rejected so the caller falls into the
// empty state.
func ParseParams(baseText, growthText, maxText string, m Model) (Params, error) {
	base, err := parseRate(baseText)
	if err != nil {
		return Params{}, fmt.Errorf("base rate: %w", err)
	}
	if base < 0 {
		return Params{}, fmt.Errorf("base rate %v: %w", base, ErrInvalidInput)
	}
	growth, err := parseRate(growthText)
	if err != nil {
		return Params{}, fmt.Errorf("growth rate: %w", err)
	}
	maxN, err := parseIndex(maxText)
	if err != nil {
		return Params{}, fmt.Errorf("max index: %w", err)
	}
	return Params{BaseRate: base, GrowthRate: growth, MaxIndex: maxN, Model: m}, nil
}

// Compute parses the inputs and generates rows. Unusable input yields nil.
func Compute(baseText, growthText, maxText string, m Model) []Row {
	p, err := ParseParams(baseText, growthText, maxText, m)
	if err != nil {
		return nil
	}
	return Generate(p)
}

func parseRate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidInput)
	}
	return v, nil
}

func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidInput)
	}
	f = math.Trunc(f)
	if f < 0 || f > MaxIndexLimit {
		return 0, fmt.Errorf("%v: %w", f, ErrInvalidInput)
	}
	return int(f), nil
}
