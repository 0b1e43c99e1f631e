package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/config"
	"github.com/minsuk/argos/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

func candidate(symbol string, score float64, conf contracts.Confidence) contracts.Candidate {
	return contracts.Candidate{
		Symbol: symbol,
		Composite: contracts.CompositeResult{
			Score:      score,
			Rating:     contracts.RatingFromScore(score),
			Confidence: conf,
		},
	}
}

func symbols(picks []contracts.Candidate) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Symbol
	}
	return out
}

func TestSelector_ThresholdAndOrder(t *testing.T) {
	selector := NewSelector(newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("LOW1", 45, contracts.ConfidenceHigh),
		candidate("MID", 65, contracts.ConfidenceHigh),
		candidate("TOP", 88, contracts.ConfidenceHigh),
		candidate("LOW2", 59.9, contracts.ConfidenceHigh),
		candidate("EDGE", 60, contracts.ConfidenceHigh),
	}, 10)

	assert.Equal(t, []string{"TOP", "MID", "EDGE"}, symbols(picks))
}

func TestSelector_TieBreakConfidenceThenSymbol(t *testing.T) {
	selector := NewSelector(newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("ZETA", 75, contracts.ConfidenceHigh),
		candidate("BETA", 75, contracts.ConfidenceModerate),
		candidate("ALFA", 75, contracts.ConfidenceModerate),
		candidate("GAMA", 75, contracts.ConfidenceHigh),
	}, 10)

	// High confidence first, then symbol ascending within each group
	assert.Equal(t, []string{"GAMA", "ZETA", "ALFA", "BETA"}, symbols(picks))
}

func TestSelector_TruncatesToTopN(t *testing.T) {
	selector := NewSelector(newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("A", 90, contracts.ConfidenceHigh),
		candidate("B", 85, contracts.ConfidenceHigh),
		candidate("C", 80, contracts.ConfidenceHigh),
		candidate("D", 75, contracts.ConfidenceHigh),
	}, 2)

	assert.Equal(t, []string{"A", "B"}, symbols(picks))
}

func TestSelector_NeverPads(t *testing.T) {
	selector := NewSelector(newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("A", 70, contracts.ConfidenceHigh),
		candidate("B", 30, contracts.ConfidenceHigh),
	}, 5)

	assert.Len(t, picks, 1)
}

func TestSelector_EmptyResultIsValid(t *testing.T) {
	selector := NewSelector(newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("A", 10, contracts.ConfidenceHigh),
	}, 5)

	assert.Empty(t, picks)
}

func TestSelector_CustomMinScore(t *testing.T) {
	selector := NewSelectorWithMinScore(80, newTestLogger())

	picks := selector.Select([]contracts.Candidate{
		candidate("A", 85, contracts.ConfidenceHigh),
		candidate("B", 75, contracts.ConfidenceHigh),
	}, 5)

	assert.Equal(t, []string{"A"}, symbols(picks))
}

func TestSelector_Deterministic(t *testing.T) {
	selector := NewSelector(newTestLogger())

	input := []contracts.Candidate{
		candidate("C", 70, contracts.ConfidenceModerate),
		candidate("A", 70, contracts.ConfidenceHigh),
		candidate("B", 82, contracts.ConfidenceModerate),
	}

	first := selector.Select(input, 3)
	second := selector.Select(input, 3)
	assert.Equal(t, symbols(first), symbols(second))
	assert.Equal(t, []string{"B", "A", "C"}, symbols(first))
}
