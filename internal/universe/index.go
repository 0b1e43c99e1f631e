package universe

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/minsuk/argos/pkg/httputil"
	"github.com/minsuk/argos/pkg/logger"
	"github.com/minsuk/argos/pkg/redis"
)

// IndexFetcher scrapes current index membership from a constituents
// page. Results are cached so repeated runs in one day do not re-fetch.
type IndexFetcher struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
}

// indexPaths maps index slugs to their constituents pages
var indexPaths = map[string]string{
	"sp500":     "/wiki/List_of_S%26P_500_companies",
	"nasdaq100": "/wiki/Nasdaq-100",
}

// NewIndexFetcher creates an index membership fetcher
func NewIndexFetcher(httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *IndexFetcher {
	return &IndexFetcher{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    "https://en.wikipedia.org",
	}
}

// Members returns the ticker symbols of an index in page order
func (f *IndexFetcher) Members(ctx context.Context, slug string) ([]string, error) {
	path, ok := indexPaths[slug]
	if !ok {
		return nil, fmt.Errorf("unknown index slug %q", slug)
	}

	// Try cache first
	if f.cache != nil {
		var cached []string
		found, err := f.cache.Get(ctx, redis.UniverseKey(slug), &cached)
		if err == nil && found && len(cached) > 0 {
			return cached, nil
		}
	}

	resp, err := f.httpClient.Get(ctx, f.baseURL+path)
	if err != nil {
		return nil, fmt.Errorf("fetch index page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch index page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	symbols := f.parseConstituents(doc)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no constituents found for index %q", slug)
	}

	if f.cache != nil {
		_ = f.cache.Set(ctx, redis.UniverseKey(slug), symbols, redis.TTLLong)
	}

	f.logger.WithFields(map[string]interface{}{
		"index":   slug,
		"symbols": len(symbols),
	}).Info("Fetched index membership")

	return symbols, nil
}

// parseConstituents extracts ticker symbols from the first constituents
// table on the page. The ticker is the first cell of each row.
func (f *IndexFetcher) parseConstituents(doc *goquery.Document) []string {
	symbols := make([]string, 0, 500)

	doc.Find("table.wikitable#constituents tbody tr").Each(func(i int, row *goquery.Selection) {
		cell := row.Find("td").First()
		symbol := strings.TrimSpace(cell.Text())
		if symbol == "" || len(symbol) > 6 {
			return
		}
		symbols = append(symbols, symbol)
	})

	// Some pages use a plain wikitable without the constituents id
	if len(symbols) == 0 {
		doc.Find("table.wikitable tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
			cell := row.Find("td").First()
			symbol := strings.TrimSpace(cell.Text())
			if symbol != "" && len(symbol) <= 6 && strings.ToUpper(symbol) == symbol {
				symbols = append(symbols, symbol)
			}
			return len(symbols) < 600
		})
	}

	return symbols
}
