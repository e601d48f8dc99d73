package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/swellwatch/buoy-tracker/internal/buoy"
	"github.com/swellwatch/buoy-tracker/internal/common"
)

var (
	// ErrInvalidReading is returned for readings the store refuses to keep:
	// a metric outside the tracked set, a non-finite value, or a timestamp
	// from the future.
	ErrInvalidReading = errors.New("invalid reading")
)

// seriesKey identifies one (station, metric) series.
type seriesKey struct {
	station string
	metric  buoy.Metric
}

// series holds the time-ordered readings for one key. Each series carries
// its own lock, so writers for different keys never block each other and
// writers for the same key serialize.
type series struct {
	mu       sync.RWMutex
	readings []buoy.Reading // ascending by timestamp
}

// MemoryStore is a concurrency-safe in-memory implementation of the
// reading store.
type MemoryStore struct {
	mu     sync.RWMutex
	series map[seriesKey]*series

	// retention configuration
	maxHistory int           // max readings per key (0 = unlimited)
	maxAge     time.Duration // max reading age (0 = unlimited)

	// skew is the tolerated clock drift before a timestamp counts as future.
	skew time.Duration
}

// NewMemoryStore creates a MemoryStore with the given retention limits.
// maxHistory <= 0 and maxAge <= 0 are treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge, skew time.Duration) *MemoryStore {
	return &MemoryStore{
		series:     make(map[seriesKey]*series),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		skew:       skew,
	}
}

// Record inserts a reading into its (station, metric) series, keeping the
// series ordered by timestamp. Re-delivery of an already stored
// (station, metric, timestamp) tuple is a no-op, and out-of-order delivery
// is tolerated. Retention is enforced on the same write.
func (s *MemoryStore) Record(r buoy.Reading) error {
	if !r.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidReading, r.Metric)
	}
	if !common.IsFinite(r.Value) {
		return fmt.Errorf("%w: non-finite value for %s/%s", ErrInvalidReading, r.Station, r.Metric)
	}
	if r.Timestamp.After(time.Now().Add(s.skew)) {
		return fmt.Errorf("%w: timestamp %s is in the future", ErrInvalidReading, r.Timestamp.UTC().Format(time.RFC3339))
	}
	r.Timestamp = r.Timestamp.UTC()

	ser := s.seriesFor(r.Station, r.Metric)

	ser.mu.Lock()
	defer ser.mu.Unlock()

	i := sort.Search(len(ser.readings), func(i int) bool {
		return !ser.readings[i].Timestamp.Before(r.Timestamp)
	})
	if i < len(ser.readings) && ser.readings[i].Timestamp.Equal(r.Timestamp) {
		// Idempotent re-delivery.
		return nil
	}
	ser.readings = append(ser.readings, buoy.Reading{})
	copy(ser.readings[i+1:], ser.readings[i:])
	ser.readings[i] = r

	// Enforce retention by count.
	if s.maxHistory > 0 && len(ser.readings) > s.maxHistory {
		over := len(ser.readings) - s.maxHistory
		ser.readings = ser.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		drop := 0
		for ; drop < len(ser.readings); drop++ {
			if !ser.readings[drop].Timestamp.Before(cutoff) {
				break
			}
		}
		if drop > 0 {
			ser.readings = ser.readings[drop:]
		}
	}

	return nil
}

// Query returns a copy of all readings for the key with timestamp >= since,
// ordered by timestamp ascending. Unknown keys and empty windows yield an
// empty slice, never an error.
func (s *MemoryStore) Query(station string, metric buoy.Metric, since time.Time) []buoy.Reading {
	s.mu.RLock()
	ser, ok := s.series[seriesKey{station: station, metric: metric}]
	s.mu.RUnlock()
	if !ok {
		return []buoy.Reading{}
	}

	ser.mu.RLock()
	defer ser.mu.RUnlock()

	i := sort.Search(len(ser.readings), func(i int) bool {
		return !ser.readings[i].Timestamp.Before(since)
	})

	out := make([]buoy.Reading, len(ser.readings)-i)
	copy(out, ser.readings[i:])
	return out
}

// Latest returns the freshest reading for the key.
func (s *MemoryStore) Latest(station string, metric buoy.Metric) (buoy.Reading, bool) {
	s.mu.RLock()
	ser, ok := s.series[seriesKey{station: station, metric: metric}]
	s.mu.RUnlock()
	if !ok {
		return buoy.Reading{}, false
	}

	ser.mu.RLock()
	defer ser.mu.RUnlock()

	if len(ser.readings) == 0 {
		return buoy.Reading{}, false
	}
	return ser.readings[len(ser.readings)-1], true
}

// seriesFor returns the series for the key, creating it on first use.
func (s *MemoryStore) seriesFor(station string, metric buoy.Metric) *series {
	key := seriesKey{station: station, metric: metric}

	s.mu.RLock()
	ser, ok := s.series[key]
	s.mu.RUnlock()
	if ok {
		return ser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ser, ok = s.series[key]; ok {
		return ser
	}
	ser = &series{}
	s.series[key] = ser
	return ser
}
