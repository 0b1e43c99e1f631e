package reasoning

import (
	"fmt"
	"strings"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/scoring"
	"github.com/minsuk/argos/pkg/logger"
)

// Generator produces the explanation text and aggregate stats for a
// selection. Output is a pure function of the picks: no external calls,
// no randomness, so the same decision always reads the same.
type Generator struct {
	logger *logger.Logger
}

// NewGenerator creates a reasoning generator
func NewGenerator(log *logger.Logger) *Generator {
	return &Generator{logger: log}
}

// Explain computes the per-selection statistics and renders the
// reasoning text. An empty selection yields a fixed explanation, not an
// error.
func (g *Generator) Explain(picks []contracts.Candidate, strategy string) (string, contracts.SelectionStats) {
	stats := contracts.SelectionStats{
		SectorCounts: make(map[string]int),
	}

	if len(picks) == 0 {
		return fmt.Sprintf("No qualifying candidates were found for the %s strategy; no selection was made.", strategy), stats
	}

	var sum float64
	for _, pick := range picks {
		sum += pick.Composite.Score
		if pick.Sector != "" {
			stats.SectorCounts[pick.Sector]++
		}
		if pick.Metrics != nil && pick.Metrics.RevenueGrowth != nil &&
			*pick.Metrics.RevenueGrowth >= scoring.StrongGrowthThreshold {
			stats.StrongGrowth++
		}
	}
	stats.MeanScore = sum / float64(len(picks))
	stats.DominantSector = dominantSector(stats.SectorCounts)

	text := g.render(picks, strategy, stats)
	return text, stats
}

// render builds the explanation from the computed stats
func (g *Generator) render(picks []contracts.Candidate, strategy string, stats contracts.SelectionStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Selected %d candidate%s for the %s strategy with a mean composite score of %.1f.",
		len(picks), plural(len(picks)), strategy, stats.MeanScore)

	if stats.DominantSector != "" {
		count := stats.SectorCounts[stats.DominantSector]
		if count > 1 {
			fmt.Fprintf(&b, " The selection leans toward %s (%d of %d picks).",
				stats.DominantSector, count, len(picks))
		}
	}

	if stats.StrongGrowth > 0 {
		fmt.Fprintf(&b, " %d pick%s show%s strong revenue growth.",
			stats.StrongGrowth, plural(stats.StrongGrowth), singularVerb(stats.StrongGrowth))
	}

	top := picks[0]
	fmt.Fprintf(&b, " Top pick %s is rated %s at %.1f with %s confidence.",
		top.Symbol, top.Composite.Rating, top.Composite.Score, top.Composite.Confidence)

	return b.String()
}

// dominantSector returns the most frequent sector; ties resolve to the
// lexicographically smallest name so output stays deterministic
func dominantSector(counts map[string]int) string {
	best := ""
	bestCount := 0
	for sector, count := range counts {
		if count > bestCount || (count == bestCount && sector < best) {
			best = sector
			bestCount = count
		}
	}
	return best
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func singularVerb(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}
