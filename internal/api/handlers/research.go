package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/research"
	"github.com/minsuk/argos/internal/strategy"
	"github.com/minsuk/argos/pkg/logger"
)

const dateLayout = "2006-01-02"

// ResearchHandler serves the decision endpoints and the manual run
// trigger
type ResearchHandler struct {
	store        contracts.DecisionStore
	orchestrator *research.Orchestrator
	strategies   map[string]strategy.Definition
	logger       *logger.Logger
}

// NewResearchHandler creates a research handler
func NewResearchHandler(store contracts.DecisionStore, orchestrator *research.Orchestrator, strategies map[string]strategy.Definition, log *logger.Logger) *ResearchHandler {
	return &ResearchHandler{
		store:        store,
		orchestrator: orchestrator,
		strategies:   strategies,
		logger:       log,
	}
}

// ListStrategies returns the configured strategy definitions
// GET /api/strategies
func (h *ResearchHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	defs := make([]strategy.Definition, 0, len(h.strategies))
	for _, def := range h.strategies {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": defs,
	})
}

// ListDecisions returns decisions in a date range
// GET /api/decisions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ResearchHandler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decisions, err := h.store.ListByDateRange(r.Context(), from, to)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list decisions")
		respondError(w, http.StatusInternalServerError, "Failed to list decisions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":      from.Format(dateLayout),
		"to":        to.Format(dateLayout),
		"count":     len(decisions),
		"decisions": decisions,
	})
}

// GetDecision returns one decision by strategy and date
// GET /api/decisions/{strategy}/{date}
func (h *ResearchHandler) GetDecision(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(dateLayout, vars["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	decision, err := h.store.GetByStrategyAndDate(r.Context(), vars["strategy"], date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get decision")
		respondError(w, http.StatusInternalServerError, "Failed to get decision")
		return
	}
	if decision == nil {
		respondError(w, http.StatusNotFound, "No decision for this strategy and date")
		return
	}

	respondJSON(w, http.StatusOK, decision)
}

// GetScoreHistory returns a symbol's composite score history
// GET /api/symbols/{symbol}/history?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ResearchHandler) GetScoreHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	symbol := vars["symbol"]

	from, to, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.store.ScoreHistory(r.Context(), symbol, from, to)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get score history")
		respondError(w, http.StatusInternalServerError, "Failed to get score history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"from":   from.Format(dateLayout),
		"to":     to.Format(dateLayout),
		"points": points,
	})
}

// runRequest is the payload for a manual research run
type runRequest struct {
	Strategy string `json:"strategy"`
	Date     string `json:"date,omitempty"` // defaults to today
	Force    bool   `json:"force,omitempty"`
}

// RunResearch triggers a research run for one strategy
// POST /api/research/run
func (h *ResearchHandler) RunResearch(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Strategy == "" {
		respondError(w, http.StatusBadRequest, "strategy is required")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	decision, err := h.orchestrator.Run(r.Context(), research.RunConfig{
		Strategy: req.Strategy,
		Date:     date,
		ForceRun: req.Force,
	})
	if err != nil {
		var unknown *contracts.UnknownStrategyError
		if errors.As(err, &unknown) {
			respondError(w, http.StatusNotFound, unknown.Error())
			return
		}
		h.logger.WithError(err).Error("Research run failed")
		respondError(w, http.StatusInternalServerError, "Research run failed")
		return
	}

	respondJSON(w, http.StatusOK, decision)
}

// parseDateRange reads from/to query params, defaulting to the last 30
// days
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to date is before from date")
	}

	return from, to, nil
}
