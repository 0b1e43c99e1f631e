package scoring

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// Fixed risk flag thresholds
const (
	highDebtThreshold      = 200.0 // debt ratio %
	lowLiquidityThreshold  = 1.0   // current ratio
	highBetaThreshold      = 1.5
	richValuationThreshold = 60.0 // P/E
)

// RiskCalculator counts discrete risk flags and converts the band to
// the inverted numeric score used in composite blending.
type RiskCalculator struct {
	sentiment *SentimentCalculator
	logger    *logger.Logger
}

// NewRiskCalculator creates a new risk calculator. It shares the
// sentiment calculator so the negative-sentiment flag uses the same
// bucketing as the sentiment sub-score.
func NewRiskCalculator(sentiment *SentimentCalculator, log *logger.Logger) *RiskCalculator {
	return &RiskCalculator{
		sentiment: sentiment,
		logger:    log,
	}
}

// Calculate returns the risk sub-score (higher is safer) and the flags
// that produced it.
func (c *RiskCalculator) Calculate(m *contracts.SymbolMetrics) (float64, []string) {
	flags := make([]string, 0, 5)

	if m.DebtRatio != nil && *m.DebtRatio > highDebtThreshold {
		flags = append(flags, "high_debt")
	}
	if m.CurrentRatio != nil && *m.CurrentRatio < lowLiquidityThreshold {
		flags = append(flags, "low_liquidity")
	}
	if m.Beta != nil && *m.Beta > highBetaThreshold {
		flags = append(flags, "high_beta")
	}
	if bucket := c.sentiment.NewsBucket(m.Headlines); bucket <= SentimentNegative {
		flags = append(flags, "negative_sentiment")
	}
	if m.PER != nil && *m.PER > richValuationThreshold {
		flags = append(flags, "rich_valuation")
	}

	band := contracts.RiskBandFromFlags(len(flags))
	score := band.Score()

	c.logger.WithFields(map[string]interface{}{
		"symbol": m.Symbol,
		"flags":  flags,
		"band":   band,
		"score":  score,
	}).Debug("Calculated risk score")

	return score, flags
}
