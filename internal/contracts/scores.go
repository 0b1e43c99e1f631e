package contracts

// SubScores holds the four independent 0-100 dimension scores for one
// symbol on one analysis date, plus the discrete risk flags behind the
// risk value.
type SubScores struct {
	Fundamental float64  `json:"fundamental"`
	Technical   float64  `json:"technical"`
	Sentiment   float64  `json:"sentiment"`
	Risk        float64  `json:"risk"` // inverted: higher is safer
	RiskFlags   []string `json:"risk_flags,omitempty"`
}

// RiskBand is the qualitative band derived from the risk flag count
type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskModerate RiskBand = "moderate"
	RiskHigh     RiskBand = "high"
)

// RiskBandFromFlags maps a flag count to a band: 0-3 low, 4-6 moderate,
// 7+ high.
func RiskBandFromFlags(count int) RiskBand {
	switch {
	case count <= 3:
		return RiskLow
	case count <= 6:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Score converts the band to the numeric risk sub-score used in
// composite blending.
func (b RiskBand) Score() float64 {
	switch b {
	case RiskLow:
		return 100
	case RiskModerate:
		return 60
	default:
		return 20
	}
}

// Clamp100 bounds a score to [0, 100]
func Clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
