package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/minsuk/argos/internal/api/handlers"
	"github.com/minsuk/argos/pkg/database"
	"github.com/minsuk/argos/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// All routing setup happens in this function.
func NewRouter(researchHandler *handlers.ResearchHandler, db *database.DB, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(db)).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Strategy and decision endpoints
	api.HandleFunc("/strategies", researchHandler.ListStrategies).Methods("GET")
	api.HandleFunc("/decisions", researchHandler.ListDecisions).Methods("GET")
	api.HandleFunc("/decisions/{strategy}/{date}", researchHandler.GetDecision).Methods("GET")
	api.HandleFunc("/symbols/{symbol}/history", researchHandler.GetScoreHistory).Methods("GET")
	api.HandleFunc("/research/run", researchHandler.RunResearch).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server and database health status
func healthCheckHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		dbStatus := "ok"
		code := http.StatusOK

		if db != nil {
			if _, err := db.HealthCheck(r.Context()); err != nil {
				status = "degraded"
				dbStatus = "unreachable"
				code = http.StatusServiceUnavailable
			}
		} else {
			dbStatus = "not configured"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   status,
			"service":  "argos-api",
			"database": dbStatus,
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
