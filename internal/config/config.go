package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Default station: the Redwood City COOP station, closest to Palo Alto
// with reliable data (the Palo Alto station USC00046646 has been inactive).
const (
	DefaultBaseURL     = "https://www.ncei.noaa.gov/access/services/data/v1"
	DefaultStationID   = "USC00047339"
	DefaultStationName = "Redwood City, CA"
)

type AppConfig struct {
	// BaseURL is the NCEI Access Data Service endpoint.
	BaseURL string

	// Station identifies the GHCN-Daily station all records are requested for.
	StationID   string
	StationName string

	// HTTPTimeout bounds the single outbound request.
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment with sensible defaults.
// A .env file is honored when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		BaseURL:     getenvDefault("NOAA_BASE_URL", DefaultBaseURL),
		StationID:   getenvDefault("NOAA_STATION_ID", DefaultStationID),
		StationName: getenvDefault("NOAA_STATION_NAME", DefaultStationName),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("LOG_FORMAT", "text"),
	}

	if cfg.StationID == "" {
		return nil, fmt.Errorf("NOAA_STATION_ID must not be empty")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
