package config

import "sort"

var Presets = map[string]*Config{
	"default": {BaseRate: 2.00, GrowthRate: 40.0, MaxIndex: 10, Model: "multiplicative"},
	"steady":  {BaseRate: 5.00, GrowthRate: 0, MaxIndex: 20, Model: "multiplicative"},
	"gentle":  {BaseRate: 1.00, GrowthRate: 10.0, MaxIndex: 30, Model: "multiplicative"},
	"steep":   {BaseRate: 2.00, GrowthRate: 80.0, MaxIndex: 12, Model: "multiplicative"},
	"odds":    {BaseRate: 2.00, GrowthRate: 40.0, MaxIndex: 25, Model: "odds"},
	"decline": {BaseRate: 20.0, GrowthRate: -15.0, MaxIndex: 15, Model: "multiplicative"},
}

// GetPreset returns a copy of the named preset with output settings from
// DefaultConfig, or nil when it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.BaseRate = p.BaseRate
	cfg.GrowthRate = p.GrowthRate
	cfg.MaxIndex = p.MaxIndex
	cfg.Model = p.Model
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
