package contracts

import (
	"testing"
)

func TestRatingFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Rating
	}{
		{95, RatingStrongBuy},
		{80, RatingStrongBuy},
		{79.99, RatingBuy},
		{70, RatingBuy},
		{69.5, RatingModerateBuy},
		{60, RatingModerateBuy},
		{59, RatingHold},
		{50, RatingHold},
		{49, RatingWeakHold},
		{40, RatingWeakHold},
		{39.99, RatingSell},
		{0, RatingSell},
	}

	for _, tt := range tests {
		if got := RatingFromScore(tt.score); got != tt.want {
			t.Errorf("RatingFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRatingFromScore_Monotonic(t *testing.T) {
	// Walking the score down must never improve the rating
	prev := RatingStrongBuy
	for s := 100.0; s >= 0; s -= 0.25 {
		got := RatingFromScore(s)
		if ratingIndex(got) < ratingIndex(prev) {
			t.Fatalf("rating improved as score decreased: %s -> %s at %v", prev, got, s)
		}
		prev = got
	}
}

func ratingIndex(r Rating) int {
	for i, tier := range ratingOrder {
		if tier == r {
			return i
		}
	}
	return -1
}

func TestRating_Downgrade(t *testing.T) {
	tests := []struct {
		in   Rating
		want Rating
	}{
		{RatingStrongBuy, RatingBuy},
		{RatingBuy, RatingModerateBuy},
		{RatingModerateBuy, RatingHold},
		{RatingHold, RatingWeakHold},
		{RatingWeakHold, RatingSell},
		{RatingSell, RatingSell}, // never below Sell
	}

	for _, tt := range tests {
		if got := tt.in.Downgrade(); got != tt.want {
			t.Errorf("%s.Downgrade() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRiskBandFromFlags(t *testing.T) {
	tests := []struct {
		count int
		band  RiskBand
		score float64
	}{
		{0, RiskLow, 100},
		{3, RiskLow, 100},
		{4, RiskModerate, 60},
		{6, RiskModerate, 60},
		{7, RiskHigh, 20},
		{10, RiskHigh, 20},
	}

	for _, tt := range tests {
		band := RiskBandFromFlags(tt.count)
		if band != tt.band {
			t.Errorf("RiskBandFromFlags(%d) = %s, want %s", tt.count, band, tt.band)
		}
		if band.Score() != tt.score {
			t.Errorf("%s.Score() = %v, want %v", band, band.Score(), tt.score)
		}
	}
}

func TestClamp100(t *testing.T) {
	if got := Clamp100(-5); got != 0 {
		t.Errorf("Clamp100(-5) = %v, want 0", got)
	}
	if got := Clamp100(105); got != 100 {
		t.Errorf("Clamp100(105) = %v, want 100", got)
	}
	if got := Clamp100(42.5); got != 42.5 {
		t.Errorf("Clamp100(42.5) = %v, want 42.5", got)
	}
}

func TestAnalysisOutcome_Variants(t *testing.T) {
	op := &AnalystOpinion{OverallScore: 72}

	enhanced := Enhanced(op)
	if enhanced.Method != MethodEnhanced || enhanced.Opinion != op {
		t.Errorf("Enhanced() = %+v, want enhanced variant with opinion", enhanced)
	}

	fallback := Fallback("timeout")
	if fallback.Method != MethodFallback || fallback.Opinion != nil || fallback.Reason != "timeout" {
		t.Errorf("Fallback() = %+v, want fallback variant with reason", fallback)
	}
}
