package strategy

import (
	"github.com/minsuk/argos/internal/contracts"
)

// Definition binds a strategy name to its universe, filter bounds, and
// selection parameters. Definitions are immutable once loaded.
type Definition struct {
	Name       string               `yaml:"name" json:"name"`
	Universe   string               `yaml:"universe" json:"universe"`
	Filter     contracts.FilterSpec `yaml:"filter" json:"filter"`
	MinScore   float64              `yaml:"min_score" json:"min_score"`
	TopN       int                  `yaml:"top_n" json:"top_n"`
	MaxSymbols int                  `yaml:"max_symbols" json:"max_symbols"`
}

func f(v float64) *float64 { return &v }

// Defaults returns the built-in strategy definitions, keyed by name.
// A YAML file loaded at startup overrides or extends these.
func Defaults() map[string]Definition {
	return map[string]Definition{
		"broad-market": {
			Name:       "broad-market",
			Universe:   "broad-market",
			MinScore:   60,
			TopN:       10,
			MaxSymbols: 100,
		},
		"growth": {
			Name:     "growth",
			Universe: "growth",
			Filter: contracts.FilterSpec{
				MinGrowth: f(0.05),
			},
			MinScore:   60,
			TopN:       5,
			MaxSymbols: 50,
		},
		"value": {
			Name:     "value",
			Universe: "value",
			Filter: contracts.FilterSpec{
				MaxPER: f(20),
				MinROE: f(8),
			},
			MinScore:   60,
			TopN:       5,
			MaxSymbols: 50,
		},
		"tech-sector": {
			Name:     "tech-sector",
			Universe: "tech-sector",
			Filter: contracts.FilterSpec{
				AllowedSectors: []string{"Technology"},
			},
			MinScore:   60,
			TopN:       5,
			MaxSymbols: 50,
		},
	}
}
