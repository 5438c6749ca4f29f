// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is honoured
// for local development; real deployments set the variables directly.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// GenAI is the completion provider. Its key is the only external
	// credential whose absence is fatal: without it the planner cannot
	// serve a single request, so we refuse to start at all.
	GenAI GenAIConfig

	// Exchange is the pair-rate lookup. Optional: an empty key disables
	// real lookups and every conversion resolves to the identity rate.
	Exchange ExchangeConfig

	// Search is the link-research lookup. Optional: an empty key or engine
	// ID disables enrichment and research always returns no links.
	Search SearchConfig
}

// GenAIConfig configures the text-generation endpoint.
type GenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ExchangeConfig configures the exchange-rate endpoint.
type ExchangeConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// SearchConfig configures the link-research endpoint.
type SearchConfig struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
}

// Load reads configuration from the environment (and a .env file when one
// exists) and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		GenAI: GenAIConfig{
			APIKey:  os.Getenv("GENAI_API_KEY"),
			BaseURL: getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Model:   getEnv("GENAI_MODEL", "gemini-pro-latest"),
			Timeout: 45 * time.Second,
		},
		Exchange: ExchangeConfig{
			APIKey:  os.Getenv("EXCHANGE_API_KEY"),
			BaseURL: getEnv("EXCHANGE_BASE_URL", "https://v6.exchangerate-api.com/v6"),
			Timeout: 6 * time.Second,
		},
		Search: SearchConfig{
			APIKey:   os.Getenv("SEARCH_API_KEY"),
			EngineID: os.Getenv("SEARCH_ENGINE_ID"),
			BaseURL:  getEnv("SEARCH_BASE_URL", "https://www.googleapis.com/customsearch/v1"),
			Timeout:  8 * time.Second,
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.GenAI.APIKey == "" {
		missing = append(missing, "GENAI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
