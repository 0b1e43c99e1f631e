package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minsuk/argos/internal/scheduler"
	"github.com/minsuk/argos/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the daily research scheduler",
	Long: `Starts the scheduler that runs the research pipeline for every
configured strategy on the configured cron schedule.

Schedule and strategies come from RESEARCH_SCHEDULE and
RESEARCH_STRATEGIES.

Example:
  go run ./cmd/argos scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sched := scheduler.New(app.log)

	researchJob := jobs.NewResearchJob(
		app.orchestrator,
		app.cfg.Research.Strategies,
		app.cfg.Research.Schedule,
		app.log,
	)
	if err := sched.AddJob(researchJob); err != nil {
		return fmt.Errorf("add research job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	fmt.Printf("Scheduler running (%s), strategies: %v\n",
		researchJob.Schedule(), app.cfg.Research.Strategies)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	app.log.Info("Scheduler shutting down")
	return nil
}
