package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client.
type Config struct {
	Environment string
	APIBaseURL  string
	// APITimeout bounds each individual gateway call.
	APITimeout time.Duration
	// APIRPS and APIBurst configure the outbound rate limiter.
	APIRPS   float64
	APIBurst int
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the .env file usually doesn't exist and we rely on
	// system environment variables, so a load failure is not fatal.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		APITimeout:  10 * time.Second,
		APIRPS:      10,
		APIBurst:    20,
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080/api"
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}

	if s := os.Getenv("API_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid API_TIMEOUT %q: %w", s, err)
		}
		cfg.APITimeout = d
	}
	if s := os.Getenv("API_RPS"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid API_RPS %q", s)
		}
		cfg.APIRPS = v
	}
	if s := os.Getenv("API_BURST"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid API_BURST %q", s)
		}
		cfg.APIBurst = v
	}

	return cfg, nil
}
