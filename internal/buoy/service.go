package buoy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownStation is returned when a station identifier is not in
	// the registry.
	ErrUnknownStation = errors.New("unknown station")

	// ErrInvalidWindow is returned when a lookback window is not positive
	// or exceeds the retention horizon.
	ErrInvalidWindow = errors.New("invalid lookback window")
)

// ServiceConfig carries the tunables the service needs.
type ServiceConfig struct {
	// Retention is the maximum supported lookback; windows beyond it are
	// rejected because the store no longer holds the readings.
	Retention time.Duration

	// DeadZone is the relative slope threshold for trend direction.
	DeadZone float64
}

// Service orchestrates feed ingestion and assembles trend reports.
type Service struct {
	store    Store
	registry *Registry
	provider Provider

	retention time.Duration
	deadZone  float64
	logger    zerolog.Logger
}

// NewService creates a Service. A non-positive DeadZone falls back to
// DefaultTrendDeadZone.
func NewService(store Store, registry *Registry, provider Provider, cfg ServiceConfig, logger zerolog.Logger) *Service {
	deadZone := cfg.DeadZone
	if deadZone <= 0 {
		deadZone = DefaultTrendDeadZone
	}
	return &Service{
		store:     store,
		registry:  registry,
		provider:  provider,
		retention: cfg.Retention,
		deadZone:  deadZone,
		logger:    logger,
	}
}

// IngestStation fetches the station's feed and records every reading that
// still falls inside the retention horizon. Rejected readings are logged
// and skipped; duplicate rows from overlapping polls are no-ops in the
// store. Returns the number of readings accepted.
func (s *Service) IngestStation(ctx context.Context, st Station) (int, error) {
	observations, err := s.provider.Fetch(ctx, st)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", st.ID, err)
	}

	cutoff := time.Now().Add(-s.retention)
	recorded := 0
	for _, o := range observations {
		if s.retention > 0 && o.Timestamp.Before(cutoff) {
			continue
		}
		for _, r := range o.Readings(st.ID) {
			if err := s.store.Record(r); err != nil {
				s.logger.Warn().Err(err).
					Str("station", st.ID).
					Str("metric", string(r.Metric)).
					Msg("reading rejected")
				continue
			}
			recorded++
		}
	}
	return recorded, nil
}

// TrendReport assembles the bucketed series, statistics and trend
// classification for one station metric over the last hoursBack hours.
// The current reading comes straight from the store, so it reflects the
// freshest observation even when it has not formed a complete bucket yet.
// An empty window yields the degenerate no-data report, not an error.
func (s *Service) TrendReport(stationID string, metric Metric, interval Interval, hoursBack int) (TrendReport, error) {
	st, ok := s.registry.Lookup(stationID)
	if !ok {
		return TrendReport{}, fmt.Errorf("%w: %q", ErrUnknownStation, stationID)
	}
	if err := s.validateWindow(hoursBack); err != nil {
		return TrendReport{}, err
	}

	since := time.Now().UTC().Add(-time.Duration(hoursBack) * time.Hour)
	readings := s.store.Query(st.ID, metric, since)

	buckets := Bucketize(readings, interval.Width())
	values := BucketValues(buckets)

	stats, err := Summarize(values)
	if errors.Is(err, ErrInsufficientData) {
		stats = SeriesStatistics{}
	}

	report := TrendReport{
		TimeSeries: TimeSeries{
			Interval:   interval,
			DataPoints: buckets,
			Statistics: stats,
			Trend:      ClassifyTrend(values, s.deadZone),
		},
	}
	if latest, ok := s.store.Latest(st.ID, metric); ok {
		report.Current = &latest
	}
	return report, nil
}

// CurrentConditions returns the station and its latest reading per metric.
func (s *Service) CurrentConditions(stationID string) (Station, Conditions, error) {
	st, ok := s.registry.Lookup(stationID)
	if !ok {
		return Station{}, Conditions{}, fmt.Errorf("%w: %q", ErrUnknownStation, stationID)
	}
	return st, s.conditionsFor(st), nil
}

// AllCurrentConditions assembles the latest conditions for every station
// concurrently, keyed by canonical station id.
func (s *Service) AllCurrentConditions() map[string]Conditions {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]Conditions, len(s.registry.stations))
	)

	for _, st := range s.registry.All() {
		st := st
		wg.Add(1)
		go func() {
			defer wg.Done()

			cond := s.conditionsFor(st)

			mu.Lock()
			out[st.ID] = cond
			mu.Unlock()
		}()
	}
	wg.Wait()

	return out
}

// StationReadings returns the raw readings per metric for the last hours,
// newest last, for the per-station history view.
func (s *Service) StationReadings(stationID string, hours int) (Station, map[Metric][]Reading, error) {
	st, ok := s.registry.Lookup(stationID)
	if !ok {
		return Station{}, nil, fmt.Errorf("%w: %q", ErrUnknownStation, stationID)
	}
	if err := s.validateWindow(hours); err != nil {
		return Station{}, nil, err
	}

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	out := make(map[Metric][]Reading, len(Metrics()))
	for _, m := range Metrics() {
		out[m] = s.store.Query(st.ID, m, since)
	}
	return st, out, nil
}

// Stations returns the registry contents in registration order.
func (s *Service) Stations() []Station {
	return s.registry.All()
}

// StationIDs returns the canonical station identifiers, sorted.
func (s *Service) StationIDs() []string {
	return s.registry.IDs()
}

func (s *Service) validateWindow(hours int) error {
	// Compare in whole hours; converting caller input to a Duration can
	// overflow int64 and wrap.
	if hours <= 0 || hours > int(s.retention/time.Hour) {
		return fmt.Errorf("%w: %d hours (retention horizon %s)", ErrInvalidWindow, hours, s.retention)
	}
	return nil
}

func (s *Service) conditionsFor(st Station) Conditions {
	var cond Conditions
	for _, m := range Metrics() {
		r, ok := s.store.Latest(st.ID, m)
		if !ok {
			continue
		}
		v := r.Value
		switch m {
		case MetricWaveHeight:
			cond.WaveHeight = &v
		case MetricWavePeriod:
			cond.WavePeriod = &v
		case MetricWaterTemp:
			cond.WaterTemp = &v
		case MetricWindSpeed:
			cond.WindSpeed = &v
		case MetricWindDirection:
			cond.WindDirection = &v
		}
		if r.Timestamp.After(cond.Timestamp) {
			cond.Timestamp = r.Timestamp
		}
	}
	return cond
}
