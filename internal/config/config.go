// Package config loads application settings from environment variables,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	// HolderScan API
	HolderScanAPIKey  string
	HolderScanBaseURL string

	// Solscan API
	SolscanAPIKey  string
	SolscanBaseURL string

	// Server
	APIHost string
	APIPort int

	// CORS
	FrontendURL string

	// Cross-check ceilings
	MaxHoldersPerToken int
	MaxPagesPerToken   int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	// godotenv does not override variables already set in the environment.
	_ = godotenv.Load()

	cfg := &Config{
		HolderScanAPIKey:   os.Getenv("HOLDERSCAN_API_KEY"),
		HolderScanBaseURL:  getEnv("HOLDERSCAN_BASE_URL", "https://api.holderscan.com/v0"),
		SolscanAPIKey:      os.Getenv("SOLSCAN_API_KEY"),
		SolscanBaseURL:     getEnv("SOLSCAN_BASE_URL", "https://pro-api.solscan.io/v2.0"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		APIPort:            getEnvAsInt("API_PORT", 8000),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		MaxHoldersPerToken: getEnvAsInt("MAX_HOLDERS_PER_TOKEN", 1000),
		MaxPagesPerToken:   getEnvAsInt("MAX_PAGES_PER_TOKEN", 50),
	}

	if cfg.HolderScanAPIKey == "" {
		return nil, fmt.Errorf("HOLDERSCAN_API_KEY is required")
	}
	if cfg.SolscanAPIKey == "" {
		return nil, fmt.Errorf("SOLSCAN_API_KEY is required")
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return nil, fmt.Errorf("API_PORT out of range: %d", cfg.APIPort)
	}

	return cfg, nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultVal
}
