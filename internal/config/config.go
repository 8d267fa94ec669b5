// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the API server.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	AdzunaAppID          string
	AdzunaAppKey         string
	RefreshIntervalHours int // how often saved searches are re-run
}

// Load reads environment variables and returns a validated Config.
// Adzuna credentials are optional: when absent, external job fetching is
// disabled and searches degrade to empty external results.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval := 6
	if s := os.Getenv("REFRESH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		AdzunaAppID:          os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:         os.Getenv("ADZUNA_APP_KEY"),
		RefreshIntervalHours: interval,
	}, nil
}
