package universe

import (
	"context"
	"sort"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
)

// dynamicIndexes maps strategy names to the index slug the fetcher
// resolves at run time.
var dynamicIndexes = map[string]string{
	"nasdaq-100": "nasdaq100",
	"sp-500":     "sp500",
}

// Provider resolves strategy names to ordered symbol lists. Static
// strategies come from the curated tables; dynamic strategies fetch
// current index membership.
type Provider struct {
	fetcher *IndexFetcher // nil disables dynamic strategies
	logger  *logger.Logger
}

// NewProvider creates a universe provider
func NewProvider(fetcher *IndexFetcher, log *logger.Logger) *Provider {
	return &Provider{
		fetcher: fetcher,
		logger:  log,
	}
}

// Resolve returns the deduplicated, order-stable symbol list for a
// strategy. Unknown names fail with UnknownStrategyError.
func (p *Provider) Resolve(ctx context.Context, strategy string) ([]string, error) {
	if symbols, ok := staticUniverses[strategy]; ok {
		result := dedupe(symbols)
		p.logger.WithFields(map[string]interface{}{
			"strategy": strategy,
			"symbols":  len(result),
		}).Debug("Resolved static universe")
		return result, nil
	}

	if slug, ok := dynamicIndexes[strategy]; ok && p.fetcher != nil {
		members, err := p.fetcher.Members(ctx, slug)
		if err != nil {
			return nil, err
		}
		result := dedupe(members)
		p.logger.WithFields(map[string]interface{}{
			"strategy": strategy,
			"index":    slug,
			"symbols":  len(result),
		}).Debug("Resolved dynamic universe")
		return result, nil
	}

	return nil, &contracts.UnknownStrategyError{Strategy: strategy}
}

// Strategies returns all resolvable strategy names, sorted
func (p *Provider) Strategies() []string {
	names := make([]string, 0, len(staticUniverses)+len(dynamicIndexes))
	for name := range staticUniverses {
		names = append(names, name)
	}
	if p.fetcher != nil {
		for name := range dynamicIndexes {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// dedupe removes duplicates while preserving first-occurrence order.
// The result is never re-sorted: tie-breaks downstream rely on it.
func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	result := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}
