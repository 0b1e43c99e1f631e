package scoring

import (
	"strings"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// SentimentBucket is the five-level ordinal derived from headline
// keyword polarity.
type SentimentBucket int

const (
	SentimentVeryNegative SentimentBucket = iota
	SentimentNegative
	SentimentNeutral
	SentimentPositive
	SentimentVeryPositive
)

// AnalystBucket is the coarse consensus bucket from the mean rating
type AnalystBucket int

const (
	AnalystSell AnalystBucket = iota
	AnalystHold
	AnalystBuy
)

var positiveKeywords = []string{
	"beat", "beats", "surge", "soar", "record", "upgrade", "outperform",
	"strong", "growth", "profit", "rally", "buyback", "dividend",
	"raise", "expand", "partnership", "breakthrough",
}

var negativeKeywords = []string{
	"miss", "misses", "plunge", "drop", "downgrade", "underperform",
	"weak", "loss", "lawsuit", "recall", "layoff", "cut", "decline",
	"probe", "investigation", "warning", "bankruptcy",
}

// SentimentCalculator scores headline polarity combined with analyst
// consensus into a 0-100 value.
type SentimentCalculator struct {
	logger *logger.Logger
}

// NewSentimentCalculator creates a new sentiment calculator
func NewSentimentCalculator(log *logger.Logger) *SentimentCalculator {
	return &SentimentCalculator{logger: log}
}

// Calculate returns the sentiment sub-score (0-100). Very-positive news
// plus a buy consensus maps to the top, very-negative plus sell to the
// bottom, neutral plus hold to exactly 50.
func (c *SentimentCalculator) Calculate(m *contracts.SymbolMetrics) float64 {
	bucket := c.NewsBucket(m.Headlines)
	analyst := c.AnalystBucketOf(m.AnalystMeanRating)

	score := contracts.Clamp100(bucketBase(bucket) + analystAdjustment(analyst))

	c.logger.WithFields(map[string]interface{}{
		"symbol":    m.Symbol,
		"headlines": len(m.Headlines),
		"score":     score,
	}).Debug("Calculated sentiment score")

	return score
}

// NewsBucket maps the positive-minus-negative keyword count over recent
// headlines to the five-level ordinal.
func (c *SentimentCalculator) NewsBucket(headlines []contracts.NewsItem) SentimentBucket {
	polarity := 0
	for _, item := range headlines {
		lower := strings.ToLower(item.Headline)
		for _, kw := range positiveKeywords {
			if strings.Contains(lower, kw) {
				polarity++
				break
			}
		}
		for _, kw := range negativeKeywords {
			if strings.Contains(lower, kw) {
				polarity--
				break
			}
		}
	}

	switch {
	case polarity >= 3:
		return SentimentVeryPositive
	case polarity >= 1:
		return SentimentPositive
	case polarity == 0:
		return SentimentNeutral
	case polarity <= -3:
		return SentimentVeryNegative
	default:
		return SentimentNegative
	}
}

// AnalystBucketOf maps a 1-5 mean rating (1 = strong buy) to the
// consensus bucket. Missing coverage counts as hold.
func (c *SentimentCalculator) AnalystBucketOf(meanRating *float64) AnalystBucket {
	if meanRating == nil {
		return AnalystHold
	}
	switch {
	case *meanRating <= 2.2:
		return AnalystBuy
	case *meanRating >= 3.8:
		return AnalystSell
	default:
		return AnalystHold
	}
}

func bucketBase(b SentimentBucket) float64 {
	switch b {
	case SentimentVeryPositive:
		return 90
	case SentimentPositive:
		return 70
	case SentimentNeutral:
		return 50
	case SentimentNegative:
		return 30
	default:
		return 10
	}
}

func analystAdjustment(a AnalystBucket) float64 {
	switch a {
	case AnalystBuy:
		return 10
	case AnalystSell:
		return -10
	default:
		return 0
	}
}
