package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so tests are hermetic even when
// the host environment or a .env file sets them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "FETCH_INTERVAL", "HTTP_TIMEOUT", "STORE_MAX_HISTORY",
		"STORE_MAX_AGE", "CLOCK_SKEW_TOLERANCE", "TREND_DEAD_ZONE",
		"NDBC_BASE_URL", "GEOCODER_API_KEY", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.FetchInterval != 15*time.Minute {
		t.Errorf("expected default fetch interval 15m, got %s", cfg.FetchInterval)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected default http timeout 10s, got %s", cfg.HTTPTimeout)
	}
	if cfg.StoreMaxHistory != 288 {
		t.Errorf("expected default max history 288, got %d", cfg.StoreMaxHistory)
	}
	if cfg.StoreMaxAge != 72*time.Hour {
		t.Errorf("expected default retention 72h, got %s", cfg.StoreMaxAge)
	}
	if cfg.ClockSkew != 5*time.Minute {
		t.Errorf("expected default clock skew 5m, got %s", cfg.ClockSkew)
	}
	if cfg.TrendDeadZone != 0.01 {
		t.Errorf("expected default dead zone 0.01, got %f", cfg.TrendDeadZone)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.NDBCBaseURL != "" || cfg.GeocoderAPIKey != "" {
		t.Errorf("expected empty upstream overrides, got %q / %q", cfg.NDBCBaseURL, cfg.GeocoderAPIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("STORE_MAX_HISTORY", "100")
	t.Setenv("STORE_MAX_AGE", "24h")
	t.Setenv("TREND_DEAD_ZONE", "0.05")
	t.Setenv("NDBC_BASE_URL", "http://localhost:9999/data")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.FetchInterval != 5*time.Minute {
		t.Errorf("expected fetch interval 5m, got %s", cfg.FetchInterval)
	}
	if cfg.StoreMaxHistory != 100 {
		t.Errorf("expected max history 100, got %d", cfg.StoreMaxHistory)
	}
	if cfg.StoreMaxAge != 24*time.Hour {
		t.Errorf("expected retention 24h, got %s", cfg.StoreMaxAge)
	}
	if cfg.TrendDeadZone != 0.05 {
		t.Errorf("expected dead zone 0.05, got %f", cfg.TrendDeadZone)
	}
	if cfg.NDBCBaseURL != "http://localhost:9999/data" {
		t.Errorf("unexpected base url %s", cfg.NDBCBaseURL)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparsable duration")
	}
}

func TestLoadRejectsNonPositiveRetention(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_MAX_AGE", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-positive retention horizon")
	}
}
