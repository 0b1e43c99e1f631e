package contracts

import "time"

// Candidate pairs a symbol with its composite result and the metrics it
// was derived from. Produced fresh each run and never updated in place;
// a later run's candidate for the same symbol supersedes but does not
// overwrite the prior one in storage.
type Candidate struct {
	Symbol    string          `json:"symbol"`
	Sector    string          `json:"sector"`
	Composite CompositeResult `json:"composite"`
	Metrics   *SymbolMetrics  `json:"metrics,omitempty"`
}

// SelectionStats holds the aggregate statistics for one decision
type SelectionStats struct {
	MeanScore      float64        `json:"mean_score"`
	SectorCounts   map[string]int `json:"sector_counts"`
	DominantSector string         `json:"dominant_sector,omitempty"`
	StrongGrowth   int            `json:"strong_growth"` // picks above the strong-growth threshold
	UniverseSize   int            `json:"universe_size"`
	FilteredOut    int            `json:"filtered_out"`
	Skipped        int            `json:"skipped"`  // symbols dropped for missing metrics
	Degraded       int            `json:"degraded"` // symbols scored with the fallback profile
	SkipReasons    map[string]int `json:"skip_reasons,omitempty"`
}

// SelectionDecision is the per-run output of the research pipeline:
// the ordered top picks, the deterministic reasoning text, and the
// aggregate statistics. Keyed by (strategy, date); at most one per key
// unless an explicit re-run supersedes it. Append-only in storage.
type SelectionDecision struct {
	ID        int64          `json:"id,omitempty"`
	Strategy  string         `json:"strategy"`
	Date      time.Time      `json:"date"`
	Picks     []Candidate    `json:"picks"`
	Reasoning string         `json:"reasoning"`
	Stats     SelectionStats `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
}

// IsEmpty reports whether no candidate cleared the selection threshold.
// An empty decision is a valid terminal state, not an error.
func (d *SelectionDecision) IsEmpty() bool {
	return len(d.Picks) == 0
}

// TopPick returns the highest ranked candidate, if any
func (d *SelectionDecision) TopPick() (Candidate, bool) {
	if len(d.Picks) == 0 {
		return Candidate{}, false
	}
	return d.Picks[0], true
}

// SummaryEvent is the payload emitted to the notification boundary
// after a decision is persisted. The pipeline does not format or
// deliver notifications beyond this structure.
type SummaryEvent struct {
	Strategy  string    `json:"strategy"`
	Date      time.Time `json:"date"`
	PickCount int       `json:"pick_count"`
	MeanScore float64   `json:"mean_score"`
	TopPicks  []string  `json:"top_picks"`
}
