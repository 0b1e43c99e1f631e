package commands

import (
	"fmt"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/external/opinion"
	"github.com/minsuk/argos/internal/marketdata"
	"github.com/minsuk/argos/internal/notify"
	"github.com/minsuk/argos/internal/reasoning"
	"github.com/minsuk/argos/internal/research"
	"github.com/minsuk/argos/internal/scoring"
	"github.com/minsuk/argos/internal/screening"
	"github.com/minsuk/argos/internal/selection"
	"github.com/minsuk/argos/internal/strategy"
	"github.com/minsuk/argos/internal/universe"
	"github.com/minsuk/argos/pkg/config"
	"github.com/minsuk/argos/pkg/database"
	"github.com/minsuk/argos/pkg/httputil"
	"github.com/minsuk/argos/pkg/logger"
	"github.com/minsuk/argos/pkg/redis"
)

// app bundles the wired components shared by the CLI commands
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	db           *database.DB
	redisClient  *redis.Client
	store        *selection.Repository
	strategies   map[string]strategy.Definition
	orchestrator *research.Orchestrator
}

// newApp loads config and wires the full pipeline
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache")
		cfg.Redis.Enabled = false
		redisClient, _ = redis.New(cfg)
	}
	cache := redis.NewCache(redisClient, "argos")
	limiter := redis.NewRateLimiter(redisClient, "argos")

	httpClient := httputil.New(cfg, log)
	scrapeClient := httputil.New(cfg, log).
		WithRateLimiter(limiter, redis.IndexFetchRateLimit)
	opinionHTTP := httputil.NewWithTimeout(cfg, log, cfg.Opinion.Timeout).
		WithRateLimiter(limiter, redis.OpinionRateLimit)

	benchmarks := scoring.DefaultBenchmarks()
	if cfg.Research.BenchmarkFile != "" {
		benchmarks, err = scoring.LoadBenchmarks(cfg.Research.BenchmarkFile)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("load benchmarks: %w", err)
		}
	}

	strategies, err := strategy.Load(cfg.Research.StrategyFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load strategies: %w", err)
	}

	fetcher := universe.NewIndexFetcher(scrapeClient, cache, log)
	universeProvider := universe.NewProvider(fetcher, log)
	metricsProvider := marketdata.NewProvider(db.Pool, cache, log)
	store := selection.NewRepository(db.Pool)

	var opinionService contracts.OpinionService
	if cfg.Opinion.Enabled && cfg.Opinion.BaseURL != "" {
		opinionService = opinion.NewClient(cfg, opinionHTTP, log)
	}

	orchestrator := research.NewOrchestrator(
		universeProvider,
		metricsProvider,
		screening.NewFilter(log),
		scoring.NewScorer(benchmarks, log),
		opinionService,
		scoring.NewComposer(log),
		reasoning.NewGenerator(log),
		store,
		buildNotifier(cfg, httpClient, log),
		strategies,
		cfg.Research.BatchSize,
		cfg.Research.BatchDelay,
		log,
	)

	return &app{
		cfg:          cfg,
		log:          log,
		db:           db,
		redisClient:  redisClient,
		store:        store,
		strategies:   strategies,
		orchestrator: orchestrator,
	}, nil
}

// buildNotifier picks the webhook notifier when configured, the log
// notifier otherwise
func buildNotifier(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) contracts.Notifier {
	if cfg.Notify.WebhookURL != "" {
		return notify.NewWebhookNotifier(cfg.Notify.WebhookURL, httpClient, log)
	}
	return notify.NewLogNotifier(log)
}

// Close releases the app's connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redisClient != nil {
		a.redisClient.Close()
	}
}
