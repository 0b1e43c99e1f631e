package scoring

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// WeightProfile defines the blend weights for one analysis method.
// Components are already 0-100, so the weighted sum stays in [0,100].
type WeightProfile struct {
	Fundamental float64
	Technical   float64
	Sentiment   float64 // replaced by the opinion score in the enhanced profile
	Opinion     float64
	Risk        float64
}

// FallbackWeights is used when no valid external opinion is present
var FallbackWeights = WeightProfile{
	Fundamental: 0.50,
	Technical:   0.25,
	Sentiment:   0.15,
	Risk:        0.10,
}

// EnhancedWeights is used when a validated opinion is available
var EnhancedWeights = WeightProfile{
	Fundamental: 0.40,
	Technical:   0.20,
	Opinion:     0.30,
	Risk:        0.10,
}

// Composer blends sub-scores into the composite result, derives the
// rating tier, and applies the coverage-based confidence downgrade.
type Composer struct {
	logger *logger.Logger
}

// NewComposer creates a new composite scorer
func NewComposer(log *logger.Logger) *Composer {
	return &Composer{logger: log}
}

// Compose produces the CompositeResult for one symbol. The outcome
// variant selects the weight profile: the enhanced profile swaps the
// sentiment component for the external opinion score. The confidence
// downgrade moves the rating exactly one tier, never more.
func (c *Composer) Compose(sub contracts.SubScores, outcome contracts.AnalysisOutcome, coverage int) contracts.CompositeResult {
	var score float64
	var opinion *contracts.AnalystOpinion

	if outcome.Method == contracts.MethodEnhanced && outcome.Opinion != nil {
		opinion = outcome.Opinion
		score = sub.Fundamental*EnhancedWeights.Fundamental +
			sub.Technical*EnhancedWeights.Technical +
			opinion.OverallScore*EnhancedWeights.Opinion +
			sub.Risk*EnhancedWeights.Risk
	} else {
		outcome.Method = contracts.MethodFallback
		score = sub.Fundamental*FallbackWeights.Fundamental +
			sub.Technical*FallbackWeights.Technical +
			sub.Sentiment*FallbackWeights.Sentiment +
			sub.Risk*FallbackWeights.Risk
	}

	score = contracts.Clamp100(score)
	rating := contracts.RatingFromScore(score)

	confidence := contracts.ConfidenceHigh
	if coverage < contracts.MinCoverageForHighConfidence {
		confidence = contracts.ConfidenceModerate
		rating = rating.Downgrade()
	}

	c.logger.WithFields(map[string]interface{}{
		"score":      score,
		"rating":     rating,
		"confidence": confidence,
		"method":     outcome.Method,
	}).Debug("Composite score calculated")

	return contracts.CompositeResult{
		Score:      score,
		Rating:     rating,
		Confidence: confidence,
		Method:     outcome.Method,
		SubScores:  sub,
		Opinion:    opinion,
	}
}
