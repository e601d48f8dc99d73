package buoy

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a summary is requested over an
// empty series.
var ErrInsufficientData = errors.New("insufficient data")

// Summarize computes minimum, maximum, arithmetic mean and population
// standard deviation (divide by N) over a bucketed series.
func Summarize(values []float64) (SeriesStatistics, error) {
	if len(values) == 0 {
		return SeriesStatistics{}, ErrInsufficientData
	}

	minV := values[0]
	maxV := values[0]
	var sum float64
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return SeriesStatistics{
		Minimum:      minV,
		Maximum:      maxV,
		Average:      mean,
		StdDeviation: math.Sqrt(sq / float64(len(values))),
	}, nil
}
