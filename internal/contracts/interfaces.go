package contracts

import (
	"context"
	"time"
)

// UniverseProvider resolves a named strategy to an ordered,
// deduplicated list of symbols. Order is stable across calls so that
// downstream tie-breaks are reproducible.
type UniverseProvider interface {
	Resolve(ctx context.Context, strategy string) ([]string, error)
}

// MetricsProvider supplies a snapshot for one symbol and date, or an
// explicit MetricsUnavailableError. Silent partial failures are not
// acceptable output.
type MetricsProvider interface {
	Fetch(ctx context.Context, symbol string, date time.Time) (*SymbolMetrics, error)
}

// FilterEngine shrinks a universe against a FilterSpec, preserving
// input order and recording skip reasons.
type FilterEngine interface {
	Apply(symbols []string, metrics map[string]*SymbolMetrics, spec FilterSpec) (kept []string, skipped map[string]int)
}

// FactorScorer computes the four sub-scores for one snapshot
type FactorScorer interface {
	Score(metrics *SymbolMetrics) (SubScores, error)
}

// OpinionService returns a validated structured opinion for a symbol,
// or an ExternalAnalysisError / ValidationError the caller degrades on.
type OpinionService interface {
	Analyze(ctx context.Context, metrics *SymbolMetrics) (*AnalystOpinion, error)
}

// CompositeScorer blends sub-scores and an analysis outcome into a
// CompositeResult.
type CompositeScorer interface {
	Compose(sub SubScores, outcome AnalysisOutcome, coverage int) CompositeResult
}

// Selector filters candidates by minimum score, ranks deterministically
// and truncates to topN.
type Selector interface {
	Select(candidates []Candidate, topN int) []Candidate
}

// ReasoningGenerator produces the deterministic explanation and stats
// for a selection. It never calls an external service.
type ReasoningGenerator interface {
	Explain(picks []Candidate, strategy string) (string, SelectionStats)
}

// DecisionStore is the append-only persistence boundary for decisions
type DecisionStore interface {
	Save(ctx context.Context, decision *SelectionDecision) error
	GetByStrategyAndDate(ctx context.Context, strategy string, date time.Time) (*SelectionDecision, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]SelectionDecision, error)
	ScoreHistory(ctx context.Context, symbol string, from, to time.Time) ([]ScorePoint, error)
}

// ScorePoint is one historical composite score observation for a symbol
type ScorePoint struct {
	Symbol   string    `json:"symbol"`
	Strategy string    `json:"strategy"`
	Date     time.Time `json:"date"`
	Score    float64   `json:"score"`
	Rating   Rating    `json:"rating"`
}

// Notifier relays the post-run summary event. Delivery failures must
// not fail the run.
type Notifier interface {
	Notify(ctx context.Context, event SummaryEvent) error
}
