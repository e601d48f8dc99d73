package buoy

import (
	"testing"
	"time"
)

func TestMetricIsValid(t *testing.T) {
	for _, m := range Metrics() {
		if !m.IsValid() {
			t.Errorf("expected %s to be valid", m)
		}
	}
	for _, m := range []Metric{"", "air_temp", "WAVE_HEIGHT"} {
		if m.IsValid() {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

func TestIntervalWidth(t *testing.T) {
	if got := IntervalHourly.Width(); got != time.Hour {
		t.Errorf("expected 1h for HOURLY, got %s", got)
	}
	if got := IntervalDaily.Width(); got != 24*time.Hour {
		t.Errorf("expected 24h for DAILY, got %s", got)
	}
	if got := Interval("WEEKLY").Width(); got != time.Hour {
		t.Errorf("unknown intervals must fall back to hourly, got %s", got)
	}
}
