package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/pkg/logger"
	"github.com/minsuk/argos/pkg/redis"
)

// newsWindow bounds how far back headlines are pulled for a snapshot
const newsWindow = 14 * 24 * time.Hour

// newsLimit caps the headlines attached to one snapshot
const newsLimit = 20

// Provider assembles SymbolMetrics snapshots from the market data
// tables, with a daily cache in front. A symbol with no usable data
// yields MetricsUnavailableError, never a silent empty snapshot.
type Provider struct {
	pool   *pgxpool.Pool
	cache  *redis.Cache
	logger *logger.Logger
}

// NewProvider creates a metrics provider
func NewProvider(pool *pgxpool.Pool, cache *redis.Cache, log *logger.Logger) *Provider {
	return &Provider{
		pool:   pool,
		cache:  cache,
		logger: log,
	}
}

// Fetch returns the snapshot for one symbol as of a date
func (p *Provider) Fetch(ctx context.Context, symbol string, date time.Time) (*contracts.SymbolMetrics, error) {
	cacheKey := redis.MetricsKey(symbol, date.Format("2006-01-02"))

	if p.cache != nil {
		var cached contracts.SymbolMetrics
		found, err := p.cache.Get(ctx, cacheKey, &cached)
		if err == nil && found {
			return &cached, nil
		}
	}

	m := &contracts.SymbolMetrics{
		Symbol: symbol,
		AsOf:   date,
	}

	if err := p.loadFundamentals(ctx, m, date); err != nil {
		return nil, &contracts.MetricsUnavailableError{Symbol: symbol, Cause: err}
	}
	if err := p.loadPriceSummary(ctx, m, date); err != nil {
		return nil, &contracts.MetricsUnavailableError{Symbol: symbol, Cause: err}
	}
	if err := p.loadHeadlines(ctx, m, date); err != nil {
		return nil, &contracts.MetricsUnavailableError{Symbol: symbol, Cause: err}
	}

	if !m.Scoreable() {
		return nil, &contracts.MetricsUnavailableError{Symbol: symbol}
	}

	if p.cache != nil {
		_ = p.cache.Set(ctx, cacheKey, m, redis.TTLDaily)
	}

	return m, nil
}

// loadFundamentals fills the fundamentals block from the most recent
// report on or before the date. No row is not an error: the snapshot
// may still be scoreable on price data alone.
func (p *Provider) loadFundamentals(ctx context.Context, m *contracts.SymbolMetrics, date time.Time) error {
	query := `
		SELECT
			sector, per, pbr, market_cap,
			roe, operating_margin, revenue_growth, eps_growth,
			debt_ratio, current_ratio, beta,
			analyst_count, analyst_mean_rating
		FROM marketdata.fundamentals
		WHERE symbol = $1 AND as_of <= $2
		ORDER BY as_of DESC
		LIMIT 1
	`

	err := p.pool.QueryRow(ctx, query, m.Symbol, date).Scan(
		&m.Sector, &m.PER, &m.PBR, &m.MarketCap,
		&m.ROE, &m.OperatingMargin, &m.RevenueGrowth, &m.EPSGrowth,
		&m.DebtRatio, &m.CurrentRatio, &m.Beta,
		&m.AnalystCount, &m.AnalystMeanRating,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load fundamentals: %w", err)
	}

	return nil
}

// loadPriceSummary fills the price series block from the latest trading
// day on or before the date
func (p *Provider) loadPriceSummary(ctx context.Context, m *contracts.SymbolMetrics, date time.Time) error {
	query := `
		SELECT close, ma20, ma60, return_1m, volume_ratio
		FROM marketdata.price_summary
		WHERE symbol = $1 AND trade_date <= $2
		ORDER BY trade_date DESC
		LIMIT 1
	`

	err := p.pool.QueryRow(ctx, query, m.Symbol, date).Scan(
		&m.Price, &m.MA20, &m.MA60, &m.Return1M, &m.VolumeRatio,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load price summary: %w", err)
	}

	return nil
}

// loadHeadlines attaches recent headlines, newest first
func (p *Provider) loadHeadlines(ctx context.Context, m *contracts.SymbolMetrics, date time.Time) error {
	query := `
		SELECT headline, source, published_at
		FROM marketdata.news
		WHERE symbol = $1 AND published_at BETWEEN $2 AND $3
		ORDER BY published_at DESC
		LIMIT $4
	`

	rows, err := p.pool.Query(ctx, query, m.Symbol, date.Add(-newsWindow), date, newsLimit)
	if err != nil {
		return fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item contracts.NewsItem
		if err := rows.Scan(&item.Headline, &item.Source, &item.PublishedAt); err != nil {
			return fmt.Errorf("failed to scan news row: %w", err)
		}
		m.Headlines = append(m.Headlines, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating news rows: %w", err)
	}

	return nil
}
