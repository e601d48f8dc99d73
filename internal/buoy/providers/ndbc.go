package providers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/swellwatch/buoy-tracker/internal/buoy"
	"github.com/swellwatch/buoy-tracker/internal/common"
)

// DefaultNDBCBaseURL is NOAA's public realtime2 feed root.
const DefaultNDBCBaseURL = "https://www.ndbc.noaa.gov/data/realtime2"

// realtime2 column names we consume, per NDBC's standard meteorological
// format. The month column and the missing-value sentinel are both "MM";
// only values carry the sentinel.
const (
	colYear   = "YY"
	colMonth  = "MM"
	colDay    = "DD"
	colHour   = "hh"
	colMinute = "mm"

	colWindDir    = "WDIR"
	colWindSpeed  = "WSPD"
	colWaveHeight = "WVHT"
	colWavePeriod = "DPD"
	colWaterTemp  = "WTMP"
)

// missingValue is NDBC's sentinel for columns without data.
const missingValue = "MM"

// NDBCProvider implements the buoy.Provider interface for the NOAA NDBC
// realtime2 text feed.
type NDBCProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewNDBCProvider creates the provider. An empty baseURL selects NOAA's
// public feed.
func NewNDBCProvider(client *http.Client, baseURL string) *NDBCProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ndbc",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultNDBCBaseURL
	}

	return &NDBCProvider{
		name:    "ndbc",
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *NDBCProvider) Name() string {
	return p.name
}

// Fetch downloads and parses the station's realtime2 feed. Observations
// are returned oldest first.
func (p *NDBCProvider) Fetch(ctx context.Context, st buoy.Station) ([]buoy.Observation, error) {
	if st.NDBCID == "" {
		return nil, fmt.Errorf("station %s has no NDBC id", st.ID)
	}

	url := fmt.Sprintf("%s/%s.txt", p.baseURL, st.NDBCID)
	resp, err := getWithResilience(ctx, p.httpCfg, p.circuit, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseRealtime2(resp.Body)
}

// parseRealtime2 reads NDBC's standard meteorological text format: a
// comment line naming the columns, a second comment line with units, then
// whitespace-separated rows, newest first. Rows that cannot be parsed are
// skipped rather than failing the whole feed.
func parseRealtime2(r io.Reader) ([]buoy.Observation, error) {
	scanner := bufio.NewScanner(r)

	var cols map[string]int
	var out []buoy.Observation

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			// First comment line carries the column names, the second the units.
			if cols == nil {
				cols = indexColumns(strings.Fields(strings.TrimPrefix(line, "#")))
			}
			continue
		}

		if cols == nil {
			return nil, fmt.Errorf("malformed feed: data before header")
		}

		if obs, ok := parseRow(cols, strings.Fields(line)); ok {
			out = append(out, obs)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	if cols == nil {
		return nil, fmt.Errorf("malformed feed: missing header")
	}

	// The feed lists newest rows first; flip to oldest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func indexColumns(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, name := range names {
		idx[name] = i
	}
	return idx
}

func parseRow(cols map[string]int, fields []string) (buoy.Observation, bool) {
	ts, ok := parseRowTime(cols, fields)
	if !ok {
		return buoy.Observation{}, false
	}
	return buoy.Observation{
		Timestamp:     ts,
		WaveHeight:    floatField(cols, fields, colWaveHeight),
		WavePeriod:    floatField(cols, fields, colWavePeriod),
		WaterTemp:     floatField(cols, fields, colWaterTemp),
		WindSpeed:     floatField(cols, fields, colWindSpeed),
		WindDirection: floatField(cols, fields, colWindDir),
	}, true
}

// parseRowTime builds the UTC observation time from the five leading
// columns. Two-digit years from historical files are normalized to 20xx.
func parseRowTime(cols map[string]int, fields []string) (time.Time, bool) {
	year, ok := intField(cols, fields, colYear)
	if !ok {
		return time.Time{}, false
	}
	month, ok := intField(cols, fields, colMonth)
	if !ok || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, ok := intField(cols, fields, colDay)
	if !ok {
		return time.Time{}, false
	}
	hour, ok := intField(cols, fields, colHour)
	if !ok {
		return time.Time{}, false
	}
	minute, ok := intField(cols, fields, colMinute)
	if !ok {
		return time.Time{}, false
	}

	if year < 100 {
		year += 2000
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), true
}

func intField(cols map[string]int, fields []string, name string) (int, bool) {
	i, ok := cols[name]
	if !ok || i >= len(fields) {
		return 0, false
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// floatField returns nil for absent columns, the MM sentinel, and anything
// that does not parse to a finite number.
func floatField(cols map[string]int, fields []string, name string) *float64 {
	i, ok := cols[name]
	if !ok || i >= len(fields) {
		return nil
	}
	raw := fields[i]
	if raw == missingValue {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !common.IsFinite(v) {
		return nil
	}
	return &v
}
