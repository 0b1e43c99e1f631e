package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minsuk/argos/internal/contracts"
	"github.com/minsuk/argos/internal/research"
)

// researchCmd groups the research pipeline commands
var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run the research pipeline and inspect decisions",
}

// researchRunCmd runs the pipeline once
var researchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the research pipeline for a strategy",
	Long: `Runs the full pipeline once: resolve the universe, fetch metrics,
filter, score, select the top candidates and persist the decision.

A decision that already exists for the strategy and date is returned
without recomputation unless --force is set.

Example:
  go run ./cmd/argos research run --strategy growth
  go run ./cmd/argos research run --all --force
  go run ./cmd/argos research run --strategy value --date 2026-08-21`,
	RunE: runResearch,
}

// researchHistoryCmd lists stored decisions
var researchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored decisions for a date range",
	RunE:  runResearchHistory,
}

var (
	researchStrategy   string
	researchDate       string
	researchForce      bool
	researchAll        bool
	researchMaxSymbols int
	historyDays        int
)

func init() {
	rootCmd.AddCommand(researchCmd)
	researchCmd.AddCommand(researchRunCmd)
	researchCmd.AddCommand(researchHistoryCmd)

	researchRunCmd.Flags().StringVar(&researchStrategy, "strategy", "", "strategy to run")
	researchRunCmd.Flags().StringVar(&researchDate, "date", "", "analysis date (YYYY-MM-DD, default today)")
	researchRunCmd.Flags().BoolVar(&researchForce, "force", false, "re-run even when a decision exists")
	researchRunCmd.Flags().BoolVar(&researchAll, "all", false, "run every configured strategy")
	researchRunCmd.Flags().IntVar(&researchMaxSymbols, "max-symbols", 0, "cap the number of symbols processed (0 = strategy default)")

	researchHistoryCmd.Flags().IntVar(&historyDays, "days", 30, "how many days back to list")
}

func runResearch(cmd *cobra.Command, args []string) error {
	if !researchAll && researchStrategy == "" {
		return fmt.Errorf("either --strategy or --all is required")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	date := time.Now()
	if researchDate != "" {
		date, err = time.Parse("2006-01-02", researchDate)
		if err != nil {
			return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
		}
	}

	ctx := context.Background()

	if researchAll {
		return app.orchestrator.RunAll(ctx, app.cfg.Research.Strategies, date, researchForce)
	}

	decision, err := app.orchestrator.Run(ctx, research.RunConfig{
		Strategy:   researchStrategy,
		Date:       date,
		ForceRun:   researchForce,
		MaxSymbols: researchMaxSymbols,
	})
	if err != nil {
		return err
	}

	printDecision(decision)
	return nil
}

func runResearchHistory(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	to := time.Now()
	from := to.AddDate(0, 0, -historyDays)

	decisions, err := app.store.ListByDateRange(context.Background(), from, to)
	if err != nil {
		return fmt.Errorf("list decisions: %w", err)
	}

	if len(decisions) == 0 {
		fmt.Printf("No decisions in the last %d days\n", historyDays)
		return nil
	}

	fmt.Printf("%-12s  %-14s  %-6s  %-10s\n", "DATE", "STRATEGY", "PICKS", "MEAN")
	for _, d := range decisions {
		fmt.Printf("%-12s  %-14s  %-6d  %-10.1f\n",
			d.Date.Format("2006-01-02"), d.Strategy, len(d.Picks), d.Stats.MeanScore)
	}
	return nil
}

// printDecision renders one decision to stdout
func printDecision(d *contracts.SelectionDecision) {
	fmt.Printf("=== %s / %s ===\n\n", d.Strategy, d.Date.Format("2006-01-02"))

	if d.IsEmpty() {
		fmt.Println("No picks.")
	} else {
		fmt.Printf("%-4s %-8s %-8s %-13s %-10s %-9s\n",
			"#", "SYMBOL", "SCORE", "RATING", "CONF", "METHOD")
		for i, pick := range d.Picks {
			fmt.Printf("%-4d %-8s %-8.1f %-13s %-10s %-9s\n",
				i+1, pick.Symbol, pick.Composite.Score, pick.Composite.Rating,
				pick.Composite.Confidence, pick.Composite.Method)
		}
	}

	fmt.Printf("\nUniverse %d, filtered out %d, skipped %d, degraded %d\n",
		d.Stats.UniverseSize, d.Stats.FilteredOut, d.Stats.Skipped, d.Stats.Degraded)
	fmt.Printf("\n%s\n", d.Reasoning)
}
