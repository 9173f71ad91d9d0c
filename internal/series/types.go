package series

import (
	"fmt"
	"strings"
)

// MaxProbability caps every per-step probability so the complement product
// never reaches zero.
const MaxProbability = 0.999

// MaxIndexLimit is the largest accepted max index. Larger values are
// invalid input and leave the caller in the empty state.
const MaxIndexLimit = 100000

const (
	DefaultBaseRate   = 2.00
	DefaultGrowthRate = 40.0
	DefaultMaxIndex   = 10
)

type Model int

const (
	Multiplicative Model = iota
	Odds
)

func (m Model) String() string {
	switch m {
	case Multiplicative:
		return "multiplicative"
	case Odds:
		return "odds"
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// ParseModel accepts the long and short names of each model.
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "multiplicative", "mult":
		return Multiplicative, nil
	case "odds", "odds-ratio", "odds_ratio":
		return Odds, nil
	}
	return Multiplicative, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// Params holds rates as percentages (2.0 means 2%).
type Params struct {
	BaseRate   float64
	GrowthRate float64
	MaxIndex   int
	Model      Model
}

func DefaultParams() Params {
	return Params{
		BaseRate:   DefaultBaseRate,
		GrowthRate: DefaultGrowthRate,
		MaxIndex:   DefaultMaxIndex,
		Model:      Multiplicative,
	}
}

// Row is one step of the sequence. All values are percentages.
type Row struct {
	N          int
	PerStep    float64
	Cumulative float64
	Average    float64
}

// Value returns the series value by position: 0 per-step, 1 cumulative, 2 average.
func (r Row) Value(series int) float64 {
	switch series {
	case 0:
		return r.PerStep
	case 1:
		return r.Cumulative
	case 2:
		return r.Average
	}
	return 0
}
