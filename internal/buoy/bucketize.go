package buoy

import (
	"sort"
	"time"
)

// Bucketize groups readings into fixed-width time slices and reduces each
// slice to the arithmetic mean of the readings inside it. Slice boundaries
// are aligned by truncating timestamps to the width (UTC), each covering
// the half-open interval [start, start+width). Slices with no readings
// produce no bucket. Buckets are returned in ascending start order.
func Bucketize(readings []Reading, width time.Duration) []Bucket {
	if width <= 0 || len(readings) == 0 {
		return []Bucket{}
	}

	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, r := range readings {
		start := r.Timestamp.UTC().Truncate(width)
		sums[start] += r.Value
		counts[start]++
	}

	buckets := make([]Bucket, 0, len(sums))
	for start, sum := range sums {
		buckets = append(buckets, Bucket{
			IntervalStart: start,
			Value:         sum / float64(counts[start]),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].IntervalStart.Before(buckets[j].IntervalStart)
	})
	return buckets
}

// BucketValues projects the bucket series onto its values, preserving order.
func BucketValues(buckets []Bucket) []float64 {
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value
	}
	return values
}
