package research

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/reasoning"
	"github.com/minsuk/argos/internal/scoring"
	"github.com/minsuk/argos/internal/screening"
	"github.com/minsuk/argos/internal/strategy"
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

func f(v float64) *float64 { return &v }

// fakeUniverse resolves one fixed strategy
type fakeUniverse struct {
	symbols []string
}

func (u *fakeUniverse) Resolve(ctx context.Context, name string) ([]string, error) {
	if u.symbols == nil {
		return nil, &contracts.UnknownStrategyError{Strategy: name}
	}
	return u.symbols, nil
}

// fakeMetrics serves canned snapshots; absent symbols fail
type fakeMetrics struct {
	snapshots map[string]*contracts.SymbolMetrics
	calls     int
}

func (m *fakeMetrics) Fetch(ctx context.Context, symbol string, date time.Time) (*contracts.SymbolMetrics, error) {
	m.calls++
	snap, ok := m.snapshots[symbol]
	if !ok {
		return nil, &contracts.MetricsUnavailableError{Symbol: symbol}
	}
	return snap, nil
}

// fakeOpinion returns a fixed opinion or error
type fakeOpinion struct {
	opinion *contracts.AnalystOpinion
	err     error
}

func (o *fakeOpinion) Analyze(ctx context.Context, m *contracts.SymbolMetrics) (*contracts.AnalystOpinion, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.opinion, nil
}

// fakeStore is an in-memory DecisionStore
type fakeStore struct {
	decisions map[string]*contracts.SelectionDecision
	saveErr   error
	saves     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{decisions: make(map[string]*contracts.SelectionDecision)}
}

func storeKey(strategy string, date time.Time) string {
	return strategy + "|" + date.Format("2006-01-02")
}

func (s *fakeStore) Save(ctx context.Context, d *contracts.SelectionDecision) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	d.ID = int64(s.saves)
	s.decisions[storeKey(d.Strategy, d.Date)] = d
	return nil
}

func (s *fakeStore) GetByStrategyAndDate(ctx context.Context, strategy string, date time.Time) (*contracts.SelectionDecision, error) {
	return s.decisions[storeKey(strategy, date)], nil
}

func (s *fakeStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]contracts.SelectionDecision, error) {
	return nil, nil
}

func (s *fakeStore) ScoreHistory(ctx context.Context, symbol string, from, to time.Time) ([]contracts.ScorePoint, error) {
	return nil, nil
}

// fakeNotifier records delivered events
type fakeNotifier struct {
	events []contracts.SummaryEvent
	err    error
}

func (n *fakeNotifier) Notify(ctx context.Context, event contracts.SummaryEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

func goodSnapshot(symbol string) *contracts.SymbolMetrics {
	return &contracts.SymbolMetrics{
		Symbol:        symbol,
		Sector:        "Technology",
		PER:           f(18),
		ROE:           f(22),
		RevenueGrowth: f(0.20),
		DebtRatio:     f(60),
		CurrentRatio:  f(1.8),
		Beta:          f(1.1),
		MarketCap:     f(500e9),
		Price:         f(110),
		MA20:          f(100),
		Return1M:      f(0.12),
		VolumeRatio:   f(1.0),
		AnalystCount:  25,
	}
}

type fixture struct {
	orchestrator *Orchestrator
	universe     *fakeUniverse
	metrics      *fakeMetrics
	opinion      contracts.OpinionService
	store        *fakeStore
	notifier     *fakeNotifier
}

func newFixture(t *testing.T, symbols []string, snapshots map[string]*contracts.SymbolMetrics, opinion contracts.OpinionService) *fixture {
	t.Helper()
	log := newTestLogger()

	fx := &fixture{
		universe: &fakeUniverse{symbols: symbols},
		metrics:  &fakeMetrics{snapshots: snapshots},
		opinion:  opinion,
		store:    newFakeStore(),
		notifier: &fakeNotifier{},
	}

	strategies := strategy.Defaults()
	strategies["test"] = strategy.Definition{
		Name:       "test",
		Universe:   "test",
		MinScore:   60,
		TopN:       3,
		MaxSymbols: 10,
	}

	fx.orchestrator = NewOrchestrator(
		fx.universe,
		fx.metrics,
		screening.NewFilter(log),
		scoring.NewScorer(scoring.DefaultBenchmarks(), log),
		opinion,
		scoring.NewComposer(log),
		reasoning.NewGenerator(log),
		fx.store,
		fx.notifier,
		strategies,
		5,
		0,
		log,
	)
	return fx
}

func TestOrchestrator_UnknownStrategyIsFatal(t *testing.T) {
	fx := newFixture(t, []string{"AAPL"}, nil, nil)

	_, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "nope", Date: time.Now()})

	var unknown *contracts.UnknownStrategyError
	require.ErrorAs(t, err, &unknown)
	assert.Zero(t, fx.store.saves)
}

func TestOrchestrator_FallbackRun(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
		"MSFT": goodSnapshot("MSFT"),
	}
	fx := newFixture(t, []string{"AAPL", "MSFT", "GHOST"}, snapshots, nil)

	decision, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)

	assert.Len(t, decision.Picks, 2)
	assert.Equal(t, 3, decision.Stats.UniverseSize)
	assert.Equal(t, 1, decision.Stats.Skipped)
	assert.Equal(t, 2, decision.Stats.Degraded, "no opinion service means every pick is fallback")
	for _, pick := range decision.Picks {
		assert.Equal(t, contracts.MethodFallback, pick.Composite.Method)
	}
	assert.Equal(t, 1, fx.store.saves)
	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, 2, fx.notifier.events[0].PickCount)
}

func TestOrchestrator_EnhancedRun(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	opinion := &fakeOpinion{opinion: &contracts.AnalystOpinion{OverallScore: 85, AllocationPct: 8}}
	fx := newFixture(t, []string{"AAPL"}, snapshots, opinion)

	decision, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)

	require.Len(t, decision.Picks, 1)
	assert.Equal(t, contracts.MethodEnhanced, decision.Picks[0].Composite.Method)
	assert.Zero(t, decision.Stats.Degraded)
	require.NotNil(t, decision.Picks[0].Composite.Opinion)
}

func TestOrchestrator_OpinionFailureDegrades(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	opinion := &fakeOpinion{err: &contracts.ExternalAnalysisError{Symbol: "AAPL", Cause: fmt.Errorf("timeout")}}
	fx := newFixture(t, []string{"AAPL"}, snapshots, opinion)

	decision, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)

	require.Len(t, decision.Picks, 1)
	assert.Equal(t, contracts.MethodFallback, decision.Picks[0].Composite.Method)
	assert.Equal(t, 1, decision.Stats.Degraded)
}

func TestOrchestrator_IdempotentPerKey(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	fx := newFixture(t, []string{"AAPL"}, snapshots, nil)
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	first, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: date})
	require.NoError(t, err)

	second, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: date})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, fx.store.saves, "second run must not recompute or rewrite")
}

func TestOrchestrator_ForceRunSupersedes(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	fx := newFixture(t, []string{"AAPL"}, snapshots, nil)
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	_, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: date})
	require.NoError(t, err)

	_, err = fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: date, ForceRun: true})
	require.NoError(t, err)

	assert.Equal(t, 2, fx.store.saves)
}

func TestOrchestrator_EmptySelectionIsPersisted(t *testing.T) {
	// A snapshot bad enough to score below the threshold
	weak := &contracts.SymbolMetrics{
		Symbol:       "WEAK",
		Sector:       "Energy",
		PER:          f(80),
		ROE:          f(1),
		DebtRatio:    f(300),
		CurrentRatio: f(0.5),
		Beta:         f(2.0),
		Price:        f(80),
		MA20:         f(100),
		Return1M:     f(-0.20),
	}
	fx := newFixture(t, []string{"WEAK"}, map[string]*contracts.SymbolMetrics{"WEAK": weak}, nil)

	decision, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)

	assert.True(t, decision.IsEmpty())
	assert.Contains(t, decision.Reasoning, "No qualifying candidates were found")
	assert.Equal(t, 1, fx.store.saves)
}

func TestOrchestrator_PersistenceFailureIsFatal(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	fx := newFixture(t, []string{"AAPL"}, snapshots, nil)
	fx.store.saveErr = &contracts.PersistenceError{Op: "insert decision", Cause: fmt.Errorf("connection lost")}

	_, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})

	var persistence *contracts.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Empty(t, fx.notifier.events, "no notification for a failed write")
}

func TestOrchestrator_NotifyFailureDoesNotFailRun(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	fx := newFixture(t, []string{"AAPL"}, snapshots, nil)
	fx.notifier.err = fmt.Errorf("webhook down")

	_, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, 1, fx.store.saves)
}

func TestOrchestrator_MaxSymbolsTruncates(t *testing.T) {
	symbols := make([]string, 0, 20)
	snapshots := make(map[string]*contracts.SymbolMetrics, 20)
	for i := 0; i < 20; i++ {
		s := fmt.Sprintf("SYM%02d", i)
		symbols = append(symbols, s)
		snapshots[s] = goodSnapshot(s)
	}
	fx := newFixture(t, symbols, snapshots, nil)

	decision, err := fx.orchestrator.Run(context.Background(), RunConfig{Strategy: "test", Date: time.Now()})
	require.NoError(t, err)

	// MaxSymbols 10 caps processing; UniverseSize reports the full universe
	assert.Equal(t, 10, fx.metrics.calls)
	assert.Equal(t, 20, decision.Stats.UniverseSize)
	assert.Len(t, decision.Picks, 3)
}

func TestOrchestrator_RunAllContinuesOnFailure(t *testing.T) {
	snapshots := map[string]*contracts.SymbolMetrics{
		"AAPL": goodSnapshot("AAPL"),
	}
	fx := newFixture(t, []string{"AAPL"}, snapshots, nil)
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	err := fx.orchestrator.RunAll(context.Background(), []string{"missing", "test"}, date, false)

	require.Error(t, err)
	var unknown *contracts.UnknownStrategyError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, 1, fx.store.saves, "the valid strategy still ran")
}
