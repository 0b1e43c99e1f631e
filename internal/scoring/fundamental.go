package scoring

import (
	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// Point awards per fundamental sub-component. Each of valuation,
// profitability, growth and balance-sheet health contributes up to 25.
const (
	fullPoints    = 25.0
	partialPoints = 15.0
)

// Growth thresholds are absolute because benchmarks carry no growth
// column. StrongGrowthThreshold is shared with the reasoning stats.
const (
	StrongGrowthThreshold   = 0.15
	moderateGrowthThreshold = 0.05
)

// FundamentalCalculator scores valuation, profitability, growth and
// balance-sheet health against the sector benchmark table.
type FundamentalCalculator struct {
	benchmarks *BenchmarkTable
	logger     *logger.Logger
}

// NewFundamentalCalculator creates a new fundamental calculator
func NewFundamentalCalculator(benchmarks *BenchmarkTable, log *logger.Logger) *FundamentalCalculator {
	return &FundamentalCalculator{
		benchmarks: benchmarks,
		logger:     log,
	}
}

// Calculate returns the fundamental sub-score (0-100) for a snapshot.
// A missing sub-component metric scores that component as 0, not as
// skipped.
func (c *FundamentalCalculator) Calculate(m *contracts.SymbolMetrics) float64 {
	bench := c.benchmarks.Lookup(m.Sector)

	score := c.valuationPoints(m, bench) +
		c.profitabilityPoints(m, bench) +
		c.growthPoints(m) +
		c.healthPoints(m, bench)

	c.logger.WithFields(map[string]interface{}{
		"symbol": m.Symbol,
		"sector": m.Sector,
		"score":  score,
	}).Debug("Calculated fundamental score")

	return contracts.Clamp100(score)
}

// valuationPoints: lower P/E than the sector average is favorable
func (c *FundamentalCalculator) valuationPoints(m *contracts.SymbolMetrics, bench SectorBenchmark) float64 {
	if m.PER == nil || *m.PER <= 0 {
		return 0
	}
	switch {
	case *m.PER <= bench.AvgPER:
		return fullPoints
	case *m.PER <= bench.AvgPER*1.2:
		return partialPoints
	default:
		return 0
	}
}

// profitabilityPoints: higher ROE than the sector average is favorable
func (c *FundamentalCalculator) profitabilityPoints(m *contracts.SymbolMetrics, bench SectorBenchmark) float64 {
	if m.ROE == nil {
		return 0
	}
	switch {
	case *m.ROE >= bench.AvgROE:
		return fullPoints
	case *m.ROE >= bench.AvgROE*0.8:
		return partialPoints
	default:
		return 0
	}
}

// growthPoints: revenue growth against absolute thresholds
func (c *FundamentalCalculator) growthPoints(m *contracts.SymbolMetrics) float64 {
	if m.RevenueGrowth == nil {
		return 0
	}
	switch {
	case *m.RevenueGrowth >= StrongGrowthThreshold:
		return fullPoints
	case *m.RevenueGrowth >= moderateGrowthThreshold:
		return partialPoints
	default:
		return 0
	}
}

// healthPoints: lower leverage than the sector average is favorable
func (c *FundamentalCalculator) healthPoints(m *contracts.SymbolMetrics, bench SectorBenchmark) float64 {
	if m.DebtRatio == nil {
		return 0
	}
	switch {
	case *m.DebtRatio <= bench.AvgDebtRatio:
		return fullPoints
	case *m.DebtRatio <= bench.AvgDebtRatio*1.2:
		return partialPoints
	default:
		return 0
	}
}
