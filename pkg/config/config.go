package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External analysis service
	Opinion OpinionConfig

	// Notification
	Notify NotifyConfig

	// Research pipeline
	Research ResearchConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// OpinionConfig holds configuration for the external analysis service
type OpinionConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Enabled bool
}

// NotifyConfig holds configuration for the notification boundary
type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// ResearchConfig holds pipeline tuning parameters
type ResearchConfig struct {
	BatchSize      int           // symbols scored concurrently per batch
	BatchDelay     time.Duration // pause between batches
	MetricsTimeout time.Duration // per-symbol metrics fetch timeout
	BenchmarkFile  string        // optional sector benchmark YAML override
	StrategyFile   string        // optional strategy definition YAML override
	Schedule       string        // cron expression for the daily research job
	Strategies     []string      // strategies the scheduler runs daily
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8085"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Opinion: OpinionConfig{
			BaseURL: getEnv("OPINION_BASE_URL", ""),
			APIKey:  getEnv("OPINION_API_KEY", ""),
			Timeout: getEnvAsDuration("OPINION_TIMEOUT", "10s"),
			Enabled: getEnvAsBool("OPINION_ENABLED", true),
		},

		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			Timeout:    getEnvAsDuration("NOTIFY_TIMEOUT", "5s"),
		},

		Research: ResearchConfig{
			BatchSize:      getEnvAsInt("RESEARCH_BATCH_SIZE", 5),
			BatchDelay:     getEnvAsDuration("RESEARCH_BATCH_DELAY", "500ms"),
			MetricsTimeout: getEnvAsDuration("RESEARCH_METRICS_TIMEOUT", "15s"),
			BenchmarkFile:  getEnv("RESEARCH_BENCHMARK_FILE", ""),
			StrategyFile:   getEnv("RESEARCH_STRATEGY_FILE", ""),
			Schedule:       getEnv("RESEARCH_SCHEDULE", "0 0 17 * * MON-FRI"),
			Strategies:     getEnvAsSlice("RESEARCH_STRATEGIES", []string{"broad-market"}),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Research.BatchSize < 1 {
		return fmt.Errorf("RESEARCH_BATCH_SIZE must be at least 1")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := make([]string, 0)
	for _, p := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
