package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	TemplatesDir     string
	StaticDir        string
	LeetCodeBaseURL  string
	FetchTimeout     time.Duration
	FetchConcurrency int
	MaxBatchSize     int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:leetboard.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		TemplatesDir:     envOr("TEMPLATES_DIR", "web/templates"),
		StaticDir:        envOr("STATIC_DIR", "web/static"),
		LeetCodeBaseURL:  envOr("LEETCODE_BASE_URL", "https://leetcode.com"),
		FetchTimeout:     envDurationOr("FETCH_TIMEOUT", 15*time.Second),
		FetchConcurrency: envIntOr("FETCH_CONCURRENCY", 1),
		MaxBatchSize:     envIntOr("MAX_BATCH_SIZE", 200),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.LeetCodeBaseURL == "" {
		problems = append(problems, "LEETCODE_BASE_URL cannot be empty")
	}
	if c.FetchTimeout <= 0 {
		problems = append(problems, "FETCH_TIMEOUT must be positive")
	}
	if c.FetchConcurrency < 1 {
		problems = append(problems, "FETCH_CONCURRENCY must be at least 1")
	}
	if c.MaxBatchSize < 1 {
		problems = append(problems, "MAX_BATCH_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
