package screening

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// Skip reason labels, used as keys in the skipped counter map
const (
	ReasonNoMetrics = "no_metrics"
	ReasonMarketCap = "market_cap"
	ReasonPER       = "per"
	ReasonROE       = "roe"
	ReasonGrowth    = "growth"
	ReasonSector    = "sector"
)

// Filter applies a FilterSpec to a universe. Filtering is fail-closed:
// a symbol missing a metric that an active bound needs is dropped with
// the bound's reason, never passed through on a guess.
type Filter struct {
	logger *logger.Logger
}

// NewFilter creates a filter engine
func NewFilter(log *logger.Logger) *Filter {
	return &Filter{logger: log}
}

// Apply returns the symbols that pass every active bound, in input
// order, plus a reason counter for the rest. A symbol with no snapshot
// at all is always skipped, even under a zero spec.
func (f *Filter) Apply(symbols []string, metrics map[string]*contracts.SymbolMetrics, spec contracts.FilterSpec) ([]string, map[string]int) {
	kept := make([]string, 0, len(symbols))
	skipped := make(map[string]int)

	for _, symbol := range symbols {
		m, ok := metrics[symbol]
		if !ok || m == nil {
			skipped[ReasonNoMetrics]++
			continue
		}

		if reason := f.check(m, spec); reason != "" {
			skipped[reason]++
			continue
		}
		kept = append(kept, symbol)
	}

	f.logger.WithFields(map[string]interface{}{
		"universe": len(symbols),
		"kept":     len(kept),
		"skipped":  len(symbols) - len(kept),
	}).Debug("Applied universe filter")

	return kept, skipped
}

// check returns the first failing bound's reason, or "" when the
// snapshot passes all active bounds
func (f *Filter) check(m *contracts.SymbolMetrics, spec contracts.FilterSpec) string {
	if spec.MinMarketCap != nil || spec.MaxMarketCap != nil {
		if m.MarketCap == nil {
			return ReasonMarketCap
		}
		if spec.MinMarketCap != nil && *m.MarketCap < *spec.MinMarketCap {
			return ReasonMarketCap
		}
		if spec.MaxMarketCap != nil && *m.MarketCap > *spec.MaxMarketCap {
			return ReasonMarketCap
		}
	}

	if spec.MinPER != nil || spec.MaxPER != nil {
		if m.PER == nil {
			return ReasonPER
		}
		if spec.MinPER != nil && *m.PER < *spec.MinPER {
			return ReasonPER
		}
		if spec.MaxPER != nil && *m.PER > *spec.MaxPER {
			return ReasonPER
		}
	}

	if spec.MinROE != nil {
		if m.ROE == nil || *m.ROE < *spec.MinROE {
			return ReasonROE
		}
	}

	if spec.MinGrowth != nil {
		if m.RevenueGrowth == nil || *m.RevenueGrowth < *spec.MinGrowth {
			return ReasonGrowth
		}
	}

	if !spec.SectorAllowed(m.Sector) {
		return ReasonSector
	}

	return ""
}
