package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minsuk/argos/internal/api"
	"github.com/minsuk/argos/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                            - Health check
  GET  /api/strategies                    - Configured strategies
  GET  /api/decisions                     - Decisions in a date range
  GET  /api/decisions/{strategy}/{date}   - One decision
  GET  /api/symbols/{symbol}/history      - Composite score history
  POST /api/research/run                  - Trigger a research run

Example:
  go run ./cmd/argos api
  go run ./cmd/argos api --port 8085`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	researchHandler := handlers.NewResearchHandler(app.store, app.orchestrator, app.strategies, app.log)
	router := api.NewRouter(researchHandler, app.db, app.log)
	server := api.New(app.cfg, app.log, router)

	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	app.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.log.Info("Server stopped")
	return nil
}
