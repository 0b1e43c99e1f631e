package universe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/config"
	"github.com/minsuk/argos/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

func TestProvider_Resolve_Static(t *testing.T) {
	provider := NewProvider(nil, newTestLogger())
	ctx := context.Background()

	for _, strategy := range []string{"broad-market", "growth", "value", "tech-sector"} {
		t.Run(strategy, func(t *testing.T) {
			symbols, err := provider.Resolve(ctx, strategy)
			require.NoError(t, err)
			assert.NotEmpty(t, symbols)

			// No duplicates
			seen := make(map[string]bool)
			for _, s := range symbols {
				assert.Falsef(t, seen[s], "duplicate symbol %s", s)
				seen[s] = true
			}
		})
	}
}

func TestProvider_Resolve_OrderStable(t *testing.T) {
	provider := NewProvider(nil, newTestLogger())
	ctx := context.Background()

	first, err := provider.Resolve(ctx, "growth")
	require.NoError(t, err)
	second, err := provider.Resolve(ctx, "growth")
	require.NoError(t, err)

	assert.Equal(t, first, second, "resolution order must be stable across calls")
}

func TestProvider_Resolve_Unknown(t *testing.T) {
	provider := NewProvider(nil, newTestLogger())

	_, err := provider.Resolve(context.Background(), "foo123")
	require.Error(t, err)

	var unknown *contracts.UnknownStrategyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "foo123", unknown.Strategy)
}

func TestProvider_Resolve_DynamicWithoutFetcher(t *testing.T) {
	// Dynamic strategies are unknown when no fetcher is wired
	provider := NewProvider(nil, newTestLogger())

	_, err := provider.Resolve(context.Background(), "sp-500")
	var unknown *contracts.UnknownStrategyError
	require.ErrorAs(t, err, &unknown)
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"AAPL", "MSFT", "AAPL", "", "GOOGL", "MSFT"})
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, got)
}

func TestProvider_Strategies(t *testing.T) {
	provider := NewProvider(nil, newTestLogger())
	names := provider.Strategies()

	assert.Contains(t, names, "broad-market")
	assert.Contains(t, names, "value")
	assert.NotContains(t, names, "sp-500", "dynamic strategies hidden without fetcher")
}
