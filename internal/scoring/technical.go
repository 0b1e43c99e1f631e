package scoring

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// TechnicalCalculator scores the price/volume summary of a snapshot
type TechnicalCalculator struct {
	logger *logger.Logger
}

// NewTechnicalCalculator creates a new technical calculator
func NewTechnicalCalculator(log *logger.Logger) *TechnicalCalculator {
	return &TechnicalCalculator{logger: log}
}

// Calculate returns the technical sub-score (0-100). The score starts
// at a neutral 50 and moves on price position vs the short moving
// average, one-month momentum, and relative volume.
func (c *TechnicalCalculator) Calculate(m *contracts.SymbolMetrics) float64 {
	score := 50.0

	if m.Price != nil && m.MA20 != nil && *m.MA20 > 0 {
		above := (*m.Price - *m.MA20) / *m.MA20
		switch {
		case above >= 0.05:
			score += 15
		case above > 0:
			score += 5
		}
	}

	if m.Return1M != nil {
		switch {
		case *m.Return1M >= 0.10:
			score += 10
		case *m.Return1M >= 0.03:
			score += 5
		}
	}

	if m.VolumeRatio != nil {
		switch {
		case *m.VolumeRatio >= 1.5:
			score += 5
		case *m.VolumeRatio <= 0.5:
			score -= 5
		}
	}

	score = contracts.Clamp100(score)

	c.logger.WithFields(map[string]interface{}{
		"symbol": m.Symbol,
		"score":  score,
	}).Debug("Calculated technical score")

	return score
}
