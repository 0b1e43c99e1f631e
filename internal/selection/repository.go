package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minsuk/argos/internal/contracts"
)

// Repository persists selection decisions. Writes are transactional:
// a decision and its picks land together or not at all.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a decision repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Save writes a decision and its picks in one transaction. Re-running
// the same (strategy, date) replaces the previous decision.
func (r *Repository) Save(ctx context.Context, decision *contracts.SelectionDecision) error {
	statsJSON, err := json.Marshal(decision.Stats)
	if err != nil {
		return &contracts.PersistenceError{Op: "marshal stats", Cause: err}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return &contracts.PersistenceError{Op: "begin transaction", Cause: err}
	}
	defer tx.Rollback(ctx)

	// A forced re-run supersedes the existing decision for the key
	_, err = tx.Exec(ctx,
		`DELETE FROM research.decisions WHERE strategy = $1 AND decision_date = $2`,
		decision.Strategy, decision.Date,
	)
	if err != nil {
		return &contracts.PersistenceError{Op: "delete superseded decision", Cause: err}
	}

	var decisionID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO research.decisions (strategy, decision_date, reasoning, stats, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, decision.Strategy, decision.Date, decision.Reasoning, statsJSON).Scan(&decisionID, &decision.CreatedAt)
	if err != nil {
		return &contracts.PersistenceError{Op: "insert decision", Cause: err}
	}

	pickQuery := `
		INSERT INTO research.decision_picks (
			decision_id, rank, symbol, sector,
			score, rating, confidence, method,
			fundamental, technical, sentiment, risk, opinion
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for rank, pick := range decision.Picks {
		var opinionJSON []byte
		if pick.Composite.Opinion != nil {
			opinionJSON, err = json.Marshal(pick.Composite.Opinion)
			if err != nil {
				return &contracts.PersistenceError{Op: "marshal opinion", Cause: err}
			}
		}

		_, err = tx.Exec(ctx, pickQuery,
			decisionID, rank+1, pick.Symbol, pick.Sector,
			pick.Composite.Score, string(pick.Composite.Rating),
			string(pick.Composite.Confidence), string(pick.Composite.Method),
			pick.Composite.SubScores.Fundamental, pick.Composite.SubScores.Technical,
			pick.Composite.SubScores.Sentiment, pick.Composite.SubScores.Risk,
			opinionJSON,
		)
		if err != nil {
			return &contracts.PersistenceError{Op: "insert pick", Cause: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &contracts.PersistenceError{Op: "commit", Cause: err}
	}

	decision.ID = decisionID
	return nil
}

// GetByStrategyAndDate returns the decision for a key, or nil when no
// run has produced one
func (r *Repository) GetByStrategyAndDate(ctx context.Context, strategy string, date time.Time) (*contracts.SelectionDecision, error) {
	var decision contracts.SelectionDecision
	var statsJSON []byte

	err := r.pool.QueryRow(ctx, `
		SELECT id, strategy, decision_date, reasoning, stats, created_at
		FROM research.decisions
		WHERE strategy = $1 AND decision_date = $2
	`, strategy, date).Scan(
		&decision.ID, &decision.Strategy, &decision.Date,
		&decision.Reasoning, &statsJSON, &decision.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	if err := json.Unmarshal(statsJSON, &decision.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	picks, err := r.loadPicks(ctx, decision.ID)
	if err != nil {
		return nil, err
	}
	decision.Picks = picks

	return &decision, nil
}

// ListByDateRange returns decisions with dates in [from, to], newest
// first, picks included
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]contracts.SelectionDecision, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, strategy, decision_date, reasoning, stats, created_at
		FROM research.decisions
		WHERE decision_date BETWEEN $1 AND $2
		ORDER BY decision_date DESC, strategy ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	decisions := make([]contracts.SelectionDecision, 0)
	for rows.Next() {
		var d contracts.SelectionDecision
		var statsJSON []byte
		if err := rows.Scan(&d.ID, &d.Strategy, &d.Date, &d.Reasoning, &statsJSON, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		if err := json.Unmarshal(statsJSON, &d.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decisions: %w", err)
	}

	for i := range decisions {
		picks, err := r.loadPicks(ctx, decisions[i].ID)
		if err != nil {
			return nil, err
		}
		decisions[i].Picks = picks
	}

	return decisions, nil
}

// ScoreHistory returns a symbol's composite score across decisions in
// [from, to], oldest first
func (r *Repository) ScoreHistory(ctx context.Context, symbol string, from, to time.Time) ([]contracts.ScorePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.symbol, d.strategy, d.decision_date, p.score, p.rating
		FROM research.decision_picks p
		JOIN research.decisions d ON d.id = p.decision_id
		WHERE p.symbol = $1 AND d.decision_date BETWEEN $2 AND $3
		ORDER BY d.decision_date ASC
	`, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query score history: %w", err)
	}
	defer rows.Close()

	points := make([]contracts.ScorePoint, 0)
	for rows.Next() {
		var p contracts.ScorePoint
		var rating string
		if err := rows.Scan(&p.Symbol, &p.Strategy, &p.Date, &p.Score, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan score point: %w", err)
		}
		p.Rating = contracts.Rating(rating)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score history: %w", err)
	}

	return points, nil
}

// loadPicks returns a decision's picks in rank order
func (r *Repository) loadPicks(ctx context.Context, decisionID int64) ([]contracts.Candidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT symbol, sector, score, rating, confidence, method,
		       fundamental, technical, sentiment, risk, opinion
		FROM research.decision_picks
		WHERE decision_id = $1
		ORDER BY rank ASC
	`, decisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	picks := make([]contracts.Candidate, 0)
	for rows.Next() {
		var c contracts.Candidate
		var rating, confidence, method string
		var opinionJSON []byte
		err := rows.Scan(
			&c.Symbol, &c.Sector, &c.Composite.Score, &rating, &confidence, &method,
			&c.Composite.SubScores.Fundamental, &c.Composite.SubScores.Technical,
			&c.Composite.SubScores.Sentiment, &c.Composite.SubScores.Risk,
			&opinionJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		c.Composite.Rating = contracts.Rating(rating)
		c.Composite.Confidence = contracts.Confidence(confidence)
		c.Composite.Method = contracts.AnalysisMethod(method)
		if len(opinionJSON) > 0 {
			var op contracts.AnalystOpinion
			if err := json.Unmarshal(opinionJSON, &op); err != nil {
				return nil, fmt.Errorf("failed to unmarshal opinion: %w", err)
			}
			c.Composite.Opinion = &op
		}
		picks = append(picks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating picks: %w", err)
	}

	return picks, nil
}
