package scoring

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// Scorer computes the four independent sub-scores for one snapshot.
// The benchmark table is injected at construction and never mutated.
type Scorer struct {
	fundamental *FundamentalCalculator
	technical   *TechnicalCalculator
	sentiment   *SentimentCalculator
	risk        *RiskCalculator

	logger *logger.Logger
}

// NewScorer wires the four calculators around one benchmark table
func NewScorer(benchmarks *BenchmarkTable, log *logger.Logger) *Scorer {
	sentiment := NewSentimentCalculator(log)
	return &Scorer{
		fundamental: NewFundamentalCalculator(benchmarks, log),
		technical:   NewTechnicalCalculator(log),
		sentiment:   sentiment,
		risk:        NewRiskCalculator(sentiment, log),
		logger:      log,
	}
}

// Score computes SubScores for a snapshot. A snapshot that cannot
// support any sub-score returns MetricsUnavailableError so the caller
// skips the symbol instead of scoring it zero across the board.
func (s *Scorer) Score(m *contracts.SymbolMetrics) (contracts.SubScores, error) {
	if m == nil || !m.Scoreable() {
		symbol := ""
		if m != nil {
			symbol = m.Symbol
		}
		return contracts.SubScores{}, &contracts.MetricsUnavailableError{Symbol: symbol}
	}

	riskScore, flags := s.risk.Calculate(m)

	sub := contracts.SubScores{
		Fundamental: s.fundamental.Calculate(m),
		Technical:   s.technical.Calculate(m),
		Sentiment:   s.sentiment.Calculate(m),
		Risk:        riskScore,
		RiskFlags:   flags,
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol":      m.Symbol,
		"fundamental": sub.Fundamental,
		"technical":   sub.Technical,
		"sentiment":   sub.Sentiment,
		"risk":        sub.Risk,
	}).Debug("Sub-scores calculated")

	return sub, nil
}
