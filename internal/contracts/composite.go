package contracts

// Rating is the six-tier ordinal label derived from the composite score
type Rating string

const (
	RatingStrongBuy   Rating = "StrongBuy"
	RatingBuy         Rating = "Buy"
	RatingModerateBuy Rating = "ModerateBuy"
	RatingHold        Rating = "Hold"
	RatingWeakHold    Rating = "WeakHold"
	RatingSell        Rating = "Sell"
)

// ratingOrder lists tiers from best to worst for downgrade arithmetic
var ratingOrder = []Rating{
	RatingStrongBuy,
	RatingBuy,
	RatingModerateBuy,
	RatingHold,
	RatingWeakHold,
	RatingSell,
}

// RatingFromScore maps a composite score to its rating tier.
// Pure and monotonic: same score always yields the same rating.
func RatingFromScore(score float64) Rating {
	switch {
	case score >= 80:
		return RatingStrongBuy
	case score >= 70:
		return RatingBuy
	case score >= 60:
		return RatingModerateBuy
	case score >= 50:
		return RatingHold
	case score >= 40:
		return RatingWeakHold
	default:
		return RatingSell
	}
}

// Downgrade returns the rating exactly one tier below, or Sell unchanged
func (r Rating) Downgrade() Rating {
	for i, tier := range ratingOrder {
		if tier == r {
			if i == len(ratingOrder)-1 {
				return r
			}
			return ratingOrder[i+1]
		}
	}
	return r
}

// Confidence reflects analyst-coverage depth
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
)

// MinCoverageForHighConfidence is the analyst count at which a rating is
// emitted without the one-tier downgrade.
const MinCoverageForHighConfidence = 10

// AnalysisMethod records which weight profile produced a composite score
type AnalysisMethod string

const (
	MethodEnhanced AnalysisMethod = "enhanced"
	MethodFallback AnalysisMethod = "fallback"
)

// AnalystOpinion is the structured payload returned by the external
// analysis service, validated against a fixed schema before use.
type AnalystOpinion struct {
	OverallScore  float64  `json:"overall_score"` // 0-100
	Strengths     []string `json:"strengths"`
	Risks         []string `json:"risks"`
	AllocationPct float64  `json:"suggested_allocation_pct"` // 0-100
}

// AnalysisOutcome is the two-variant result of the external analysis
// call: either an enhanced outcome carrying a validated opinion, or a
// fallback outcome carrying the reason the opinion is unusable. The
// composite scorer branches on Method, never on nil-checks scattered
// through the pipeline.
type AnalysisOutcome struct {
	Method  AnalysisMethod
	Opinion *AnalystOpinion // set only when Method == MethodEnhanced
	Reason  string          // set only when Method == MethodFallback
}

// Enhanced wraps a validated opinion
func Enhanced(op *AnalystOpinion) AnalysisOutcome {
	return AnalysisOutcome{Method: MethodEnhanced, Opinion: op}
}

// Fallback records why the enhanced profile is unavailable
func Fallback(reason string) AnalysisOutcome {
	return AnalysisOutcome{Method: MethodFallback, Reason: reason}
}

// CompositeResult is the blended scoring output for one symbol
type CompositeResult struct {
	Score      float64         `json:"score"` // 0-100
	Rating     Rating          `json:"rating"`
	Confidence Confidence      `json:"confidence"`
	Method     AnalysisMethod  `json:"method"`
	SubScores  SubScores       `json:"sub_scores"`
	Opinion    *AnalystOpinion `json:"opinion,omitempty"`
}
