// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process
// exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the dashboard service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty disables change events

	GeminiAPIKey string // optional; empty disables scouting and analysis
	GeminiModel  string

	ScoutRole          string
	ScoutLocation      string
	ScoutIntervalHours int           // 0 disables the cron scheduler
	ScoutPace          time.Duration // pause between analyses in a batch

	LogLevel  string
	LogFormat string // console, json
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	interval := 0
	if s := os.Getenv("SCOUT_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("SCOUT_INTERVAL_HOURS must be a non-negative integer, got %q", s)
		}
		interval = v
	}

	pace := 2 * time.Second
	if s := os.Getenv("SCOUT_PACE_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("SCOUT_PACE_SECONDS must be a non-negative integer, got %q", s)
		}
		pace = time.Duration(v) * time.Second
	}

	return &Config{
		Port:               envOr("PORT", "8080"),
		DatabaseURL:        dbURL,
		RedisURL:           os.Getenv("REDIS_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		ScoutRole:          envOr("SCOUT_ROLE", "Senior Designer"),
		ScoutLocation:      envOr("SCOUT_LOCATION", "Edinburgh"),
		ScoutIntervalHours: interval,
		ScoutPace:          pace,
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "console"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
