package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// FetchInterval controls how often the feed is polled per station.
	FetchInterval time.Duration

	// HTTPTimeout bounds outbound feed requests.
	HTTPTimeout time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max readings per (station, metric) key (0 = unlimited)
	StoreMaxAge     time.Duration // retention horizon; also caps trend lookback windows

	// ClockSkew is the tolerated drift before a reading counts as future-dated.
	ClockSkew time.Duration

	// TrendDeadZone is the relative slope threshold below which a series
	// is classified as stable.
	TrendDeadZone float64

	// NDBCBaseURL overrides the upstream feed root (empty = NOAA's public feed).
	NDBCBaseURL string

	// GeocoderAPIKey enables the nearest-station lookup; empty disables it.
	GeocoderAPIKey string

	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.NDBCBaseURL = os.Getenv("NDBC_BASE_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	interval, err := getenvDuration("FETCH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.FetchInterval = interval

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 288) // roughly 72h at 15-minute polls

	maxAge, err := getenvDuration("STORE_MAX_AGE", "72h")
	if err != nil {
		return nil, err
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("STORE_MAX_AGE must be positive, got %s", maxAge)
	}
	cfg.StoreMaxAge = maxAge

	skew, err := getenvDuration("CLOCK_SKEW_TOLERANCE", "5m")
	if err != nil {
		return nil, err
	}
	cfg.ClockSkew = skew

	cfg.TrendDeadZone = getenvFloat("TREND_DEAD_ZONE", 0.01)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
