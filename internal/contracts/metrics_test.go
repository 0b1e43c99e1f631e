package contracts

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestSymbolMetrics_Scoreable(t *testing.T) {
	tests := []struct {
		name    string
		metrics SymbolMetrics
		want    bool
	}{
		{
			name:    "empty snapshot",
			metrics: SymbolMetrics{Symbol: "AAPL"},
			want:    false,
		},
		{
			name:    "fundamentals only",
			metrics: SymbolMetrics{Symbol: "AAPL", ROE: f(18.5)},
			want:    true,
		},
		{
			name:    "price data only",
			metrics: SymbolMetrics{Symbol: "AAPL", Price: f(187.2), MA20: f(180.1)},
			want:    true,
		},
		{
			name: "headlines only",
			metrics: SymbolMetrics{
				Symbol:    "AAPL",
				Headlines: []NewsItem{{Headline: "Apple beats earnings estimates"}},
			},
			want: true,
		},
		{
			name:    "price without moving average",
			metrics: SymbolMetrics{Symbol: "AAPL", Price: f(187.2)},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.metrics.Scoreable(); got != tt.want {
				t.Errorf("Scoreable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	base := errors.New("connection refused")

	var metricsErr *MetricsUnavailableError
	err := error(&MetricsUnavailableError{Symbol: "MSFT", Cause: base})
	if !errors.As(err, &metricsErr) {
		t.Fatal("errors.As failed for MetricsUnavailableError")
	}
	if !errors.Is(err, base) {
		t.Error("MetricsUnavailableError should unwrap to its cause")
	}

	var strategyErr *UnknownStrategyError
	err = error(&UnknownStrategyError{Strategy: "foo123"})
	if !errors.As(err, &strategyErr) {
		t.Fatal("errors.As failed for UnknownStrategyError")
	}
	if strategyErr.Strategy != "foo123" {
		t.Errorf("Strategy = %s, want foo123", strategyErr.Strategy)
	}

	var persistErr *PersistenceError
	err = error(&PersistenceError{Op: "save decision", Cause: base})
	if !errors.As(err, &persistErr) {
		t.Fatal("errors.As failed for PersistenceError")
	}
}
