package jobs

import (
	"context"
	"time"

	"github.com/minsuk/argos/internal/research"
	"github.com/minsuk/argos/pkg/logger"
)

// ResearchJob runs the research pipeline for every configured strategy
// after the market close
type ResearchJob struct {
	orchestrator *research.Orchestrator
	strategies   []string
	schedule     string
	logger       *logger.Logger
}

// NewResearchJob creates the daily research job
func NewResearchJob(orchestrator *research.Orchestrator, strategies []string, schedule string, log *logger.Logger) *ResearchJob {
	if schedule == "" {
		schedule = "0 0 17 * * MON-FRI" // 5 PM on trading days (with seconds)
	}
	return &ResearchJob{
		orchestrator: orchestrator,
		strategies:   strategies,
		schedule:     schedule,
		logger:       log,
	}
}

// Name returns the job name
func (j *ResearchJob) Name() string {
	return "daily_research"
}

// Schedule returns the cron schedule expression
func (j *ResearchJob) Schedule() string {
	return j.schedule
}

// Run executes the research pipeline for today. Scheduled runs never
// force: a strategy already decided today is left alone.
func (j *ResearchJob) Run(ctx context.Context) error {
	j.logger.WithFields(map[string]interface{}{
		"strategies": len(j.strategies),
	}).Info("Starting scheduled research run")

	return j.orchestrator.RunAll(ctx, j.strategies, time.Now(), false)
}
