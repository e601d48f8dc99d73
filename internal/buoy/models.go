package buoy

import (
	"time"
)

// Metric identifies one measured quantity reported by a buoy.
type Metric string

const (
	MetricWaveHeight    Metric = "wave_height"    // significant wave height, meters
	MetricWavePeriod    Metric = "wave_period"    // dominant wave period, seconds
	MetricWaterTemp     Metric = "water_temp"     // sea surface temperature, Celsius
	MetricWindSpeed     Metric = "wind_speed"     // m/s
	MetricWindDirection Metric = "wind_direction" // degrees true
)

// Metrics lists every tracked metric in presentation order.
func Metrics() []Metric {
	return []Metric{
		MetricWaveHeight,
		MetricWavePeriod,
		MetricWaterTemp,
		MetricWindSpeed,
		MetricWindDirection,
	}
}

// IsValid reports whether m is one of the tracked metrics.
func (m Metric) IsValid() bool {
	switch m {
	case MetricWaveHeight, MetricWavePeriod, MetricWaterTemp, MetricWindSpeed, MetricWindDirection:
		return true
	}
	return false
}

// Interval is the bucket width used when aggregating readings.
type Interval string

const (
	IntervalHourly Interval = "HOURLY"
	IntervalDaily  Interval = "DAILY"
)

// Width returns the bucket duration for the interval. Values outside the
// enum fall back to the hourly width.
func (i Interval) Width() time.Duration {
	switch i {
	case IntervalDaily:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// TrendDirection classifies the slope of a bucketed series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Reading is a single observation of one metric at one station.
// Readings are immutable once recorded.
type Reading struct {
	Station   string    `json:"station"`
	Metric    Metric    `json:"metric"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	Value     float64   `json:"value"`
}

// Station describes one monitored buoy.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NDBCID    string  `json:"ndbcId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Bucket is one reduced value covering a fixed time slice. Buckets are
// derived per query, never persisted.
type Bucket struct {
	IntervalStart time.Time `json:"intervalStart"`
	Value         float64   `json:"value"`
}

// SeriesStatistics summarizes a bucketed series.
type SeriesStatistics struct {
	Minimum      float64 `json:"minimum"`
	Maximum      float64 `json:"maximum"`
	Average      float64 `json:"average"`
	StdDeviation float64 `json:"stdDeviation"`
}

// TrendResult classifies the direction of a bucketed series together with
// the observed percentage change and the goodness of the linear fit.
type TrendResult struct {
	TrendDirection   TrendDirection `json:"trendDirection"`
	ChangePercentage float64        `json:"changePercentage"`
	ConfidenceScore  float64        `json:"confidenceScore"`
}

// TimeSeries is the bucketed view of one metric over a lookback window.
type TimeSeries struct {
	Interval   Interval         `json:"interval"`
	DataPoints []Bucket         `json:"dataPoints"`
	Statistics SeriesStatistics `json:"statistics"`
	Trend      TrendResult      `json:"trend"`
}

// TrendReport pairs the freshest raw reading with the bucketed series
// analysis. Current is nil when the station has never reported the metric.
type TrendReport struct {
	Current    *Reading   `json:"current"`
	TimeSeries TimeSeries `json:"timeSeries"`
}

// Conditions is the latest observed value per metric at one station.
// A nil field means the feed has not reported that metric.
type Conditions struct {
	WaveHeight    *float64  `json:"wave_height"`
	WavePeriod    *float64  `json:"wave_period"`
	WaterTemp     *float64  `json:"water_temp"`
	WindSpeed     *float64  `json:"wind_speed"`
	WindDirection *float64  `json:"wind_direction"`
	Timestamp     time.Time `json:"timestamp"`
}
