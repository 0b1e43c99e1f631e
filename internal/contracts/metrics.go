package contracts

import "time"

// SymbolMetrics is an immutable snapshot of one instrument's raw inputs
// for a single analysis date. It is produced by the metrics provider and
// read-only to every pipeline stage. Optional metrics are pointers so
// that absence is distinguishable from zero.
type SymbolMetrics struct {
	Symbol string    `json:"symbol"`
	Sector string    `json:"sector"`
	AsOf   time.Time `json:"as_of"`

	// Valuation
	PER       *float64 `json:"per,omitempty"`
	PBR       *float64 `json:"pbr,omitempty"`
	MarketCap *float64 `json:"market_cap,omitempty"` // USD

	// Profitability
	ROE             *float64 `json:"roe,omitempty"`              // %
	OperatingMargin *float64 `json:"operating_margin,omitempty"` // %

	// Growth
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"` // fraction, 0.15 = 15%
	EPSGrowth     *float64 `json:"eps_growth,omitempty"`

	// Balance sheet
	DebtRatio    *float64 `json:"debt_ratio,omitempty"`    // %
	CurrentRatio *float64 `json:"current_ratio,omitempty"` // x
	Beta         *float64 `json:"beta,omitempty"`

	// Price series summary
	Price       *float64 `json:"price,omitempty"`
	MA20        *float64 `json:"ma20,omitempty"`
	MA60        *float64 `json:"ma60,omitempty"`
	Return1M    *float64 `json:"return_1m,omitempty"`    // fraction
	VolumeRatio *float64 `json:"volume_ratio,omitempty"` // vs trailing average

	// News and coverage
	Headlines         []NewsItem `json:"headlines,omitempty"`
	AnalystCount      int        `json:"analyst_count"`
	AnalystMeanRating *float64   `json:"analyst_mean_rating,omitempty"` // 1=strong buy .. 5=sell
}

// NewsItem is a single recent headline for a symbol
type NewsItem struct {
	Headline    string    `json:"headline"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// HasFundamentals reports whether at least one fundamental metric family
// is present. A snapshot without any of them cannot be scored at all.
func (m *SymbolMetrics) HasFundamentals() bool {
	return m.PER != nil || m.ROE != nil || m.RevenueGrowth != nil || m.DebtRatio != nil
}

// HasPriceData reports whether the price series summary is usable
func (m *SymbolMetrics) HasPriceData() bool {
	return m.Price != nil && m.MA20 != nil
}

// Scoreable reports whether the snapshot carries enough data to compute
// any sub-score. Snapshots failing this are skipped, not scored as zero.
func (m *SymbolMetrics) Scoreable() bool {
	return m.HasFundamentals() || m.HasPriceData() || len(m.Headlines) > 0
}
