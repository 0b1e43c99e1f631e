package research

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/selection"
	"github.com/minsuk/argos/internal/strategy"
	"github.com/minsuk/argos/pkg/logger"
)

// Orchestrator coordinates one research run: resolve the universe,
// fetch metrics, filter, score, select, explain, persist, notify.
// Per-symbol failures degrade or skip that symbol; only an unknown
// strategy or a failed write aborts the run.
type Orchestrator struct {
	universe contracts.UniverseProvider
	metrics  contracts.MetricsProvider
	filter   contracts.FilterEngine
	scorer   contracts.FactorScorer
	opinion  contracts.OpinionService // nil when the service is not configured
	composer contracts.CompositeScorer
	reasoner contracts.ReasoningGenerator
	store    contracts.DecisionStore
	notifier contracts.Notifier

	strategies map[string]strategy.Definition
	batchSize  int
	batchDelay time.Duration

	logger *logger.Logger
}

// RunConfig holds the parameters for one run
type RunConfig struct {
	Strategy   string
	Date       time.Time
	ForceRun   bool // re-run even when a decision exists for the key
	MaxSymbols int  // overrides the strategy's symbol cap when positive
}

// NewOrchestrator creates a research orchestrator
func NewOrchestrator(
	universe contracts.UniverseProvider,
	metrics contracts.MetricsProvider,
	filter contracts.FilterEngine,
	scorer contracts.FactorScorer,
	opinion contracts.OpinionService,
	composer contracts.CompositeScorer,
	reasoner contracts.ReasoningGenerator,
	store contracts.DecisionStore,
	notifier contracts.Notifier,
	strategies map[string]strategy.Definition,
	batchSize int,
	batchDelay time.Duration,
	log *logger.Logger,
) *Orchestrator {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Orchestrator{
		universe:   universe,
		metrics:    metrics,
		filter:     filter,
		scorer:     scorer,
		opinion:    opinion,
		composer:   composer,
		reasoner:   reasoner,
		store:      store,
		notifier:   notifier,
		strategies: strategies,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		logger:     log,
	}
}

// Run executes the pipeline for one strategy and date. A decision that
// already exists for the key is returned as-is unless ForceRun is set.
// An empty selection still produces and persists a decision.
func (o *Orchestrator) Run(ctx context.Context, cfg RunConfig) (*contracts.SelectionDecision, error) {
	startTime := time.Now()
	date := cfg.Date.Truncate(24 * time.Hour)

	def, ok := o.strategies[cfg.Strategy]
	if !ok {
		return nil, &contracts.UnknownStrategyError{Strategy: cfg.Strategy}
	}

	o.logger.WithFields(map[string]interface{}{
		"strategy": cfg.Strategy,
		"date":     date.Format("2006-01-02"),
		"force":    cfg.ForceRun,
	}).Info("Starting research run")

	if !cfg.ForceRun {
		existing, err := o.store.GetByStrategyAndDate(ctx, cfg.Strategy, date)
		if err != nil {
			return nil, &contracts.PersistenceError{Op: "lookup existing decision", Cause: err}
		}
		if existing != nil {
			o.logger.WithFields(map[string]interface{}{
				"strategy": cfg.Strategy,
				"date":     date.Format("2006-01-02"),
				"picks":    len(existing.Picks),
			}).Info("Reusing existing decision")
			return existing, nil
		}
	}

	symbols, err := o.universe.Resolve(ctx, def.Universe)
	if err != nil {
		return nil, err
	}
	universeSize := len(symbols)
	maxSymbols := def.MaxSymbols
	if cfg.MaxSymbols > 0 {
		maxSymbols = cfg.MaxSymbols
	}
	if maxSymbols > 0 && len(symbols) > maxSymbols {
		symbols = symbols[:maxSymbols]
	}

	metricsBySymbol, fetchFailed := o.fetchMetrics(ctx, symbols, date)

	kept, skipReasons := o.filter.Apply(symbols, metricsBySymbol, def.Filter)

	outcomes := o.scoreSymbols(ctx, kept, metricsBySymbol)

	candidates := make([]contracts.Candidate, 0, len(outcomes))
	scoringSkipped := 0
	degraded := 0
	for _, outcome := range outcomes {
		if outcome.Skipped {
			scoringSkipped++
			skipReasons[outcome.Reason]++
			continue
		}
		if outcome.Candidate.Composite.Method == contracts.MethodFallback {
			degraded++
		}
		candidates = append(candidates, *outcome.Candidate)
	}

	selector := selection.NewSelectorWithMinScore(def.MinScore, o.logger)
	picks := selector.Select(candidates, def.TopN)

	reasoning, stats := o.reasoner.Explain(picks, cfg.Strategy)
	stats.UniverseSize = universeSize
	stats.Skipped = fetchFailed + scoringSkipped
	stats.FilteredOut = len(symbols) - len(kept) - fetchFailed
	stats.Degraded = degraded
	stats.SkipReasons = skipReasons

	decision := &contracts.SelectionDecision{
		Strategy:  cfg.Strategy,
		Date:      date,
		Picks:     picks,
		Reasoning: reasoning,
		Stats:     stats,
	}

	if err := o.store.Save(ctx, decision); err != nil {
		return nil, err
	}

	o.notify(ctx, decision)

	o.logger.WithFields(map[string]interface{}{
		"strategy": cfg.Strategy,
		"date":     date.Format("2006-01-02"),
		"universe": universeSize,
		"picks":    len(picks),
		"skipped":  stats.Skipped,
		"degraded": stats.Degraded,
		"duration": time.Since(startTime).Seconds(),
	}).Info("Research run completed")

	return decision, nil
}

// RunAll executes the pipeline for every configured strategy name.
// A failed strategy does not stop the others; the first error is
// returned after all strategies have been attempted.
func (o *Orchestrator) RunAll(ctx context.Context, names []string, date time.Time, force bool) error {
	var firstErr error
	for _, name := range names {
		if _, err := o.Run(ctx, RunConfig{Strategy: name, Date: date, ForceRun: force}); err != nil {
			o.logger.WithFields(map[string]interface{}{
				"strategy": name,
				"error":    err.Error(),
			}).Error("Research run failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("strategy %s: %w", name, err)
			}
		}
	}
	return firstErr
}

// fetchMetrics pulls snapshots for all symbols in concurrent batches.
// A symbol whose fetch fails is left out of the map and counted; the
// batch keeps going.
func (o *Orchestrator) fetchMetrics(ctx context.Context, symbols []string, date time.Time) (map[string]*contracts.SymbolMetrics, int) {
	results := make(map[string]*contracts.SymbolMetrics, len(symbols))
	failed := 0

	var mu sync.Mutex

	for start := 0; start < len(symbols); start += o.batchSize {
		end := start + o.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()

				m, err := o.metrics.Fetch(ctx, symbol, date)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed++
					var unavailable *contracts.MetricsUnavailableError
					if !errors.As(err, &unavailable) {
						o.logger.WithFields(map[string]interface{}{
							"symbol": symbol,
							"error":  err.Error(),
						}).Warn("Metrics fetch failed")
					}
					return
				}
				results[symbol] = m
			}(symbol)
		}
		wg.Wait()

		if end < len(symbols) && o.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return results, failed
			case <-time.After(o.batchDelay):
			}
		}
	}

	return results, failed
}

// scoreSymbols computes sub-scores and the composite for each filtered
// symbol. The opinion call degrades to the fallback profile on any
// failure; scoring failures skip the symbol.
func (o *Orchestrator) scoreSymbols(ctx context.Context, symbols []string, metricsBySymbol map[string]*contracts.SymbolMetrics) []contracts.SymbolOutcome {
	outcomes := make([]contracts.SymbolOutcome, 0, len(symbols))

	for _, symbol := range symbols {
		m := metricsBySymbol[symbol]

		sub, err := o.scorer.Score(m)
		if err != nil {
			outcomes = append(outcomes, contracts.SkippedSymbol(symbol, "unscoreable"))
			continue
		}

		outcome := o.analyze(ctx, m)
		composite := o.composer.Compose(sub, outcome, m.AnalystCount)

		outcomes = append(outcomes, contracts.Scored(&contracts.Candidate{
			Symbol:    symbol,
			Sector:    m.Sector,
			Composite: composite,
			Metrics:   m,
		}))
	}

	return outcomes
}

// analyze requests the external opinion, degrading to fallback on any
// error
func (o *Orchestrator) analyze(ctx context.Context, m *contracts.SymbolMetrics) contracts.AnalysisOutcome {
	if o.opinion == nil {
		return contracts.Fallback("opinion service not configured")
	}

	op, err := o.opinion.Analyze(ctx, m)
	if err != nil {
		o.logger.WithFields(map[string]interface{}{
			"symbol": m.Symbol,
			"error":  err.Error(),
		}).Debug("Falling back to quantitative profile")
		return contracts.Fallback(err.Error())
	}

	return contracts.Enhanced(op)
}

// notify delivers the summary event. Delivery failures are logged and
// absorbed; the decision is already persisted.
func (o *Orchestrator) notify(ctx context.Context, decision *contracts.SelectionDecision) {
	if o.notifier == nil {
		return
	}

	topPicks := make([]string, 0, len(decision.Picks))
	for i, pick := range decision.Picks {
		if i >= 3 {
			break
		}
		topPicks = append(topPicks, pick.Symbol)
	}

	event := contracts.SummaryEvent{
		Strategy:  decision.Strategy,
		Date:      decision.Date,
		PickCount: len(decision.Picks),
		MeanScore: decision.Stats.MeanScore,
		TopPicks:  topPicks,
	}

	if err := o.notifier.Notify(ctx, event); err != nil {
		o.logger.WithFields(map[string]interface{}{
			"strategy": decision.Strategy,
			"error":    err.Error(),
		}).Warn("Summary notification failed")
	}
}
