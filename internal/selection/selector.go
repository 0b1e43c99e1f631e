package selection

import (
	"sort"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// DefaultMinScore is the composite score a candidate must reach to be
// eligible for selection
const DefaultMinScore = 60.0

// Selector ranks scored candidates and keeps the top N. Ranking is
// fully deterministic: same candidates in, same order out.
type Selector struct {
	minScore float64
	logger   *logger.Logger
}

// NewSelector creates a selector with the default score threshold
func NewSelector(log *logger.Logger) *Selector {
	return &Selector{minScore: DefaultMinScore, logger: log}
}

// NewSelectorWithMinScore creates a selector with a custom threshold
func NewSelectorWithMinScore(minScore float64, log *logger.Logger) *Selector {
	return &Selector{minScore: minScore, logger: log}
}

// Select drops candidates below the threshold, sorts the rest by score
// descending with a deterministic tie-break, and truncates to topN.
// Fewer than topN survivors returns exactly the survivors; the result
// is never padded.
func (s *Selector) Select(candidates []contracts.Candidate, topN int) []contracts.Candidate {
	eligible := make([]contracts.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Composite.Score >= s.minScore {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Composite.Score != b.Composite.Score {
			return a.Composite.Score > b.Composite.Score
		}
		// Equal scores: high confidence outranks moderate
		if a.Composite.Confidence != b.Composite.Confidence {
			return a.Composite.Confidence == contracts.ConfidenceHigh
		}
		return a.Symbol < b.Symbol
	})

	if topN > 0 && len(eligible) > topN {
		eligible = eligible[:topN]
	}

	s.logger.WithFields(map[string]interface{}{
		"candidates": len(candidates),
		"selected":   len(eligible),
		"min_score":  s.minScore,
	}).Debug("Selected top candidates")

	return eligible
}
