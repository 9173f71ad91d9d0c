package series

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestGenerate_Scenario(t *testing.T) {
	rows := Generate(Params{BaseRate: 2.0, GrowthRate: 40.0, MaxIndex: 2})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []Row{
		{N: 0, PerStep: 2.0, Cumulative: 2.0, Average: 2.0},
		{N: 1, PerStep: 2.8, Cumulative: 4.744, Average: 2.4},
		{N: 2, PerStep: 3.92, Cumulative: 8.4780352, Average: 8.72 / 3},
	}
	for i, w := range want {
		got := rows[i]
		if got.N != w.N {
			t.Errorf("row %d: expected index %d, got %d", i, w.N, got.N)
		}
		if math.Abs(got.PerStep-w.PerStep) > tol {
			t.Errorf("row %d: per-step %f, want %f", i, got.PerStep, w.PerStep)
		}
		if math.Abs(got.Cumulative-w.Cumulative) > tol {
			t.Errorf("row %d: cumulative %f, want %f", i, got.Cumulative, w.Cumulative)
		}
		if math.Abs(got.Average-w.Average) > tol {
			t.Errorf("row %d: average %f, want %f", i, got.Average, w.Average)
		}
	}
}

func TestGenerate_RowCountAndOrder(t *testing.T) {
	for _, maxN := range []int{0, 1, 5, 10, 60} {
		for _, m := range []Model{Multiplicative, Odds} {
			rows := Generate(Params{BaseRate: 3, GrowthRate: 25, MaxIndex: maxN, Model: m})
			if len(rows) != maxN+1 {
				t.Errorf("%s max %d: expected %d rows, got %d", m, maxN, maxN+1, len(rows))
				continue
			}
			for i, r := range rows {
				if r.N != i {
					t.Errorf("%s max %d: row %d has index %d", m, maxN, i, r.N)
				}
			}
		}
	}
}

func TestGenerate_Bounds(t *testing.T) {
	cases := []Params{
		{BaseRate: 2, GrowthRate: 40, MaxIndex: 30},
		{BaseRate: 99, GrowthRate: 500, MaxIndex: 20},
		{BaseRate: 150, GrowthRate: 0, MaxIndex: 5},
		{BaseRate: 10, GrowthRate: -80, MaxIndex: 12},
		{BaseRate: 0, GrowthRate: 40, MaxIndex: 4},
		{BaseRate: 100, GrowthRate: 10, MaxIndex: 4, Model: Odds},
		{BaseRate: 50, GrowthRate: 900, MaxIndex: 40, Model: Odds},
	}
	for _, p := range cases {
		for _, r := range Generate(p) {
			if r.PerStep < 0 || r.PerStep > MaxProbability*100+tol {
				t.Errorf("%+v n=%d: per-step %f out of range", p, r.N, r.PerStep)
			}
			if r.Cumulative < 0 || r.Cumulative > 100 {
				t.Errorf("%+v n=%d: cumulative %f out of range", p, r.N, r.Cumulative)
			}
			if r.Average < 0 || r.Average > 100 {
				t.Errorf("%+v n=%d: average %f out of range", p, r.N, r.Average)
			}
		}
	}
}

func TestGenerate_CumulativeNonDecreasing(t *testing.T) {
	for _, m := range []Model{Multiplicative, Odds} {
		rows := Generate(Params{BaseRate: 1.5, GrowthRate: -30, MaxIndex: 25, Model: m})
		for i := 1; i < len(rows); i++ {
			if rows[i].Cumulative < rows[i-1].Cumulative {
				t.Errorf("%s: cumulative dropped at n=%d: %f < %f", m, i, rows[i].Cumulative, rows[i-1].Cumulative)
			}
		}
	}
}

func TestGenerate_ZeroGrowthIsConstant(t *testing.T) {
	for _, m := range []Model{Multiplicative, Odds} {
		rows := Generate(Params{BaseRate: 7.25, GrowthRate: 0, MaxIndex: 15, Model: m})
		for _, r := range rows {
			if math.Abs(r.PerStep-7.25) > 1e-9 {
				t.Errorf("%s n=%d: expected 7.25, got %f", m, r.N, r.PerStep)
			}
			if math.Abs(r.Average-7.25) > 1e-9 {
				t.Errorf("%s n=%d: expected average 7.25, got %f", m, r.N, r.Average)
			}
		}
	}
}

func TestGenerate_OddsDiffersBeyondZero(t *testing.T) {
	mult := Generate(Params{BaseRate: 2, GrowthRate: 40, MaxIndex: 1})
	odds := Generate(Params{BaseRate: 2, GrowthRate: 40, MaxIndex: 1, Model: Odds})

	if math.Abs(mult[0].PerStep-odds[0].PerStep) > tol {
		t.Errorf("index 0 should agree: %f vs %f", mult[0].PerStep, odds[0].PerStep)
	}
	want := (0.02 / 0.98 * 1.4) / (1 + 0.02/0.98*1.4) * 100
	if math.Abs(odds[1].PerStep-want) > tol {
		t.Errorf("odds index 1: expected %f, got %f", want, odds[1].PerStep)
	}
	if math.Abs(mult[1].PerStep-odds[1].PerStep) < 1e-3 {
		t.Error("models should differ at index 1")
	}
}

func TestGenerate_NegativeMaxFloors(t *testing.T) {
	rows := Generate(Params{BaseRate: 2, GrowthRate: 40, MaxIndex: -4})
	if len(rows) != 1 {
		t.Errorf("expected a single row, got %d", len(rows))
	}
}

func TestGenerate_MaxIndexCapped(t *testing.T) {
	rows := Generate(Params{BaseRate: 2, GrowthRate: 0, MaxIndex: math.MaxInt})
	if len(rows) != MaxIndexLimit+1 {
		t.Errorf("expected %d rows, got %d", MaxIndexLimit+1, len(rows))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{0.999, 0.999},
		{1, MaxProbability},
		{42, MaxProbability},
		{math.NaN(), 0},
		{math.Inf(1), MaxProbability},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name              string
		base, growth, max string
		want              Params
		wantErr           bool
	}{
		{"defaults", "2.00", "40.0", "10", Params{BaseRate: 2, GrowthRate: 40, MaxIndex: 10}, false},
		{"whitespace", " 3.5 ", "\t-10", " 4 ", Params{BaseRate: 3.5, GrowthRate: -10, MaxIndex: 4}, false},
		{"fractional index", "1", "1", "6.8", Params{BaseRate: 1, GrowthRate: 1, MaxIndex: 6}, false},
		{"empty base", "", "40", "10", Params{}, true},
		{"text growth", "2", "abc", "10", Params{}, true},
		{"negative base", "-1", "40", "10", Params{}, true},
		{"infinite base", "Inf", "40", "10", Params{}, true},
		{"nan growth", "2", "NaN", "10", Params{}, true},
		{"negative max", "2", "40", "-3", Params{}, true},
		{"text max", "2", "40", "ten", Params{}, true},
		{"max at limit", "2", "40", "100000", Params{BaseRate: 2, GrowthRate: 40, MaxIndex: MaxIndexLimit}, false},
		{"max above limit", "2", "40", "100001", Params{}, true},
		{"max exponent", "2", "40", "1e12", Params{}, true},
		{"max int64", "2", "40", "9223372036854775807", Params{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.base, tt.growth, tt.max, Multiplicative)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompute_EmptyState(t *testing.T) {
	if rows := Compute("2", "40", "-1", Multiplicative); len(rows) != 0 {
		t.Errorf("negative max: expected no rows, got %d", len(rows))
	}
	if rows := Compute("2", "40", "9223372036854775807", Multiplicative); len(rows) != 0 {
		t.Errorf("huge max: expected no rows, got %d", len(rows))
	}
	if rows := Compute("2", "40", "x", Multiplicative); len(rows) != 0 {
		t.Errorf("text max: expected no rows, got %d", len(rows))
	}
	if rows := Compute("2", "40", "3", Odds); len(rows) != 4 {
		t.Errorf("expected 4 rows, got %d", len(rows))
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in   string
		want Model
	}{
		{"", Multiplicative},
		{"multiplicative", Multiplicative},
		{"MULT", Multiplicative},
		{"odds", Odds},
		{" odds-ratio ", Odds},
	}
	for _, tt := range tests {
		got, err := ParseModel(tt.in)
		if err != nil {
			t.Errorf("ParseModel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseModel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseModel("logistic"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}
