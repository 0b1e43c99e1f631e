package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SectorBenchmark holds the average ratios for one sector, used only
// for relative comparison. Tables are immutable once constructed and
// injected into the factor scorer; nothing reads them from shared
// global state.
type SectorBenchmark struct {
	AvgPER       float64 `yaml:"avg_per"`
	AvgROE       float64 `yaml:"avg_roe"`        // %
	AvgDebtRatio float64 `yaml:"avg_debt_ratio"` // %
}

// BenchmarkTable maps sector labels to their benchmark entries
type BenchmarkTable struct {
	sectors  map[string]SectorBenchmark
	fallback SectorBenchmark
}

// NewBenchmarkTable builds an immutable table from a sector map.
// Sectors absent from the map compare against the market-wide fallback.
func NewBenchmarkTable(sectors map[string]SectorBenchmark, fallback SectorBenchmark) *BenchmarkTable {
	copied := make(map[string]SectorBenchmark, len(sectors))
	for k, v := range sectors {
		copied[k] = v
	}
	return &BenchmarkTable{sectors: copied, fallback: fallback}
}

// Lookup returns the benchmark for a sector, falling back to the
// market-wide entry for unknown labels.
func (t *BenchmarkTable) Lookup(sector string) SectorBenchmark {
	if b, ok := t.sectors[sector]; ok {
		return b
	}
	return t.fallback
}

// Sectors returns the number of sector-specific entries
func (t *BenchmarkTable) Sectors() int {
	return len(t.sectors)
}

// DefaultBenchmarks returns the built-in table. Values approximate
// long-run US sector averages.
func DefaultBenchmarks() *BenchmarkTable {
	return NewBenchmarkTable(map[string]SectorBenchmark{
		"Technology":             {AvgPER: 28, AvgROE: 18, AvgDebtRatio: 70},
		"Healthcare":             {AvgPER: 24, AvgROE: 14, AvgDebtRatio: 90},
		"Financial Services":     {AvgPER: 13, AvgROE: 11, AvgDebtRatio: 180},
		"Consumer Cyclical":      {AvgPER: 20, AvgROE: 15, AvgDebtRatio: 100},
		"Consumer Defensive":     {AvgPER: 21, AvgROE: 16, AvgDebtRatio: 110},
		"Industrials":            {AvgPER: 19, AvgROE: 13, AvgDebtRatio: 120},
		"Energy":                 {AvgPER: 12, AvgROE: 12, AvgDebtRatio: 80},
		"Utilities":              {AvgPER: 17, AvgROE: 9, AvgDebtRatio: 150},
		"Communication Services": {AvgPER: 22, AvgROE: 14, AvgDebtRatio: 95},
		"Real Estate":            {AvgPER: 30, AvgROE: 7, AvgDebtRatio: 160},
		"Basic Materials":        {AvgPER: 15, AvgROE: 11, AvgDebtRatio: 85},
	}, SectorBenchmark{AvgPER: 20, AvgROE: 13, AvgDebtRatio: 100})
}

// benchmarkFile is the YAML shape for a benchmark override file
type benchmarkFile struct {
	Fallback SectorBenchmark            `yaml:"fallback"`
	Sectors  map[string]SectorBenchmark `yaml:"sectors"`
}

// LoadBenchmarks reads a benchmark table from a YAML file
func LoadBenchmarks(path string) (*BenchmarkTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}

	var file benchmarkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse benchmark file: %w", err)
	}

	if len(file.Sectors) == 0 {
		return nil, fmt.Errorf("benchmark file %s defines no sectors", path)
	}

	fallback := file.Fallback
	if fallback == (SectorBenchmark{}) {
		fallback = SectorBenchmark{AvgPER: 20, AvgROE: 13, AvgDebtRatio: 100}
	}

	return NewBenchmarkTable(file.Sectors, fallback), nil
}
