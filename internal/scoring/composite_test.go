package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minsuk/argos/internal/contracts"
)

func TestComposer_FallbackBlend(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{
		Fundamental: 80,
		Technical:   70,
		Sentiment:   60,
		Risk:        100,
	}

	// 0.5*80 + 0.25*70 + 0.15*60 + 0.10*100 = 76.5
	result := composer.Compose(sub, contracts.Fallback("no opinion"), 15)

	assert.InDelta(t, 76.5, result.Score, 1e-9)
	assert.Equal(t, contracts.RatingBuy, result.Rating)
	assert.Equal(t, contracts.ConfidenceHigh, result.Confidence)
	assert.Equal(t, contracts.MethodFallback, result.Method)
	assert.Nil(t, result.Opinion)
}

func TestComposer_LowCoverageDowngradesOneTier(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{
		Fundamental: 80,
		Technical:   70,
		Sentiment:   60,
		Risk:        100,
	}

	// Same blend, coverage of 3: Buy becomes ModerateBuy
	result := composer.Compose(sub, contracts.Fallback("no opinion"), 3)

	assert.InDelta(t, 76.5, result.Score, 1e-9)
	assert.Equal(t, contracts.RatingModerateBuy, result.Rating)
	assert.Equal(t, contracts.ConfidenceModerate, result.Confidence)
}

func TestComposer_DowngradeStopsAtSell(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{Fundamental: 10, Technical: 20, Sentiment: 20, Risk: 20}
	result := composer.Compose(sub, contracts.Fallback("no opinion"), 0)

	assert.Equal(t, contracts.RatingSell, result.Rating)
	assert.Equal(t, contracts.ConfidenceModerate, result.Confidence)
}

func TestComposer_EnhancedBlend(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{
		Fundamental: 80,
		Technical:   70,
		Sentiment:   60,
		Risk:        100,
	}
	opinion := &contracts.AnalystOpinion{OverallScore: 90}

	// 0.4*80 + 0.2*70 + 0.3*90 + 0.1*100 = 83
	result := composer.Compose(sub, contracts.Enhanced(opinion), 20)

	assert.InDelta(t, 83.0, result.Score, 1e-9)
	assert.Equal(t, contracts.RatingStrongBuy, result.Rating)
	assert.Equal(t, contracts.MethodEnhanced, result.Method)
	assert.Same(t, opinion, result.Opinion)
}

func TestComposer_EnhancedWithoutOpinionFallsBack(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{Fundamental: 80, Technical: 70, Sentiment: 60, Risk: 100}

	// A mislabeled outcome with no payload must degrade, not panic
	result := composer.Compose(sub, contracts.AnalysisOutcome{Method: contracts.MethodEnhanced}, 15)

	assert.Equal(t, contracts.MethodFallback, result.Method)
	assert.InDelta(t, 76.5, result.Score, 1e-9)
}

func TestComposer_FallbackEqualsFallbackWeightsExactly(t *testing.T) {
	composer := NewComposer(newTestLogger())

	sub := contracts.SubScores{Fundamental: 63, Technical: 55, Sentiment: 40, Risk: 60}
	want := sub.Fundamental*FallbackWeights.Fundamental +
		sub.Technical*FallbackWeights.Technical +
		sub.Sentiment*FallbackWeights.Sentiment +
		sub.Risk*FallbackWeights.Risk

	result := composer.Compose(sub, contracts.Fallback("service down"), 12)
	assert.Equal(t, want, result.Score)
}

func TestWeightProfiles_SumToOne(t *testing.T) {
	fallback := FallbackWeights.Fundamental + FallbackWeights.Technical +
		FallbackWeights.Sentiment + FallbackWeights.Risk
	enhanced := EnhancedWeights.Fundamental + EnhancedWeights.Technical +
		EnhancedWeights.Opinion + EnhancedWeights.Risk

	assert.InDelta(t, 1.0, fallback, 1e-9)
	assert.InDelta(t, 1.0, enhanced, 1e-9)
}
