package contracts

// FilterSpec is a sparse set of named bounds applied by the filter
// engine. Absent bounds (nil pointers, empty slice) impose no
// constraint. A symbol missing a metric required by an active bound is
// dropped, not passed through.
type FilterSpec struct {
	MinMarketCap   *float64 `yaml:"min_market_cap" json:"min_market_cap,omitempty"`
	MaxMarketCap   *float64 `yaml:"max_market_cap" json:"max_market_cap,omitempty"`
	MinPER         *float64 `yaml:"min_per" json:"min_per,omitempty"`
	MaxPER         *float64 `yaml:"max_per" json:"max_per,omitempty"`
	MinROE         *float64 `yaml:"min_roe" json:"min_roe,omitempty"`
	MinGrowth      *float64 `yaml:"min_growth" json:"min_growth,omitempty"`
	AllowedSectors []string `yaml:"allowed_sectors" json:"allowed_sectors,omitempty"`
}

// IsZero reports whether no bound is active
func (f FilterSpec) IsZero() bool {
	return f.MinMarketCap == nil && f.MaxMarketCap == nil &&
		f.MinPER == nil && f.MaxPER == nil &&
		f.MinROE == nil && f.MinGrowth == nil &&
		len(f.AllowedSectors) == 0
}

// SectorAllowed checks the sector allow-list; an empty list allows all
func (f FilterSpec) SectorAllowed(sector string) bool {
	if len(f.AllowedSectors) == 0 {
		return true
	}
	for _, s := range f.AllowedSectors {
		if s == sector {
			return true
		}
	}
	return false
}
