package buoy

import (
	"context"
	"time"
)

// Observation is one parsed feed row before it is split into per-metric
// readings. Pointer fields are nil when the feed marked the column missing.
type Observation struct {
	Timestamp     time.Time
	WaveHeight    *float64
	WavePeriod    *float64
	WaterTemp     *float64
	WindSpeed     *float64
	WindDirection *float64
}

// Readings expands the observation into one Reading per reported metric.
func (o Observation) Readings(station string) []Reading {
	out := make([]Reading, 0, 5)
	add := func(m Metric, v *float64) {
		if v == nil {
			return
		}
		out = append(out, Reading{
			Station:   station,
			Metric:    m,
			Timestamp: o.Timestamp,
			Value:     *v,
		})
	}
	add(MetricWaveHeight, o.WaveHeight)
	add(MetricWavePeriod, o.WavePeriod)
	add(MetricWaterTemp, o.WaterTemp)
	add(MetricWindSpeed, o.WindSpeed)
	add(MetricWindDirection, o.WindDirection)
	return out
}

// Provider abstracts a buoy observation source (e.g. the NOAA NDBC feed).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, st Station) ([]Observation, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	Record(r Reading) error
	Query(station string, metric Metric, since time.Time) []Reading
	Latest(station string, metric Metric) (Reading, bool)
}
