package buoy

import (
	"testing"
	"time"
)

func reading(ts time.Time, value float64) Reading {
	return Reading{Station: "Scripps", Metric: MetricWaveHeight, Timestamp: ts, Value: value}
}

func TestBucketizeMergesWithinInterval(t *testing.T) {
	base := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	readings := []Reading{
		reading(base, 10),
		reading(base.Add(30*time.Minute), 20),
	}

	buckets := Bucketize(readings, time.Hour)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if !buckets[0].IntervalStart.Equal(base) {
		t.Errorf("expected bucket start %v, got %v", base, buckets[0].IntervalStart)
	}
	if buckets[0].Value != 15 {
		t.Errorf("expected mean 15, got %f", buckets[0].Value)
	}
}

func TestBucketizeOrdersAndSplits(t *testing.T) {
	base := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	readings := []Reading{
		reading(base.Add(2*time.Hour+10*time.Minute), 5),
		reading(base.Add(5*time.Minute), 1),
		reading(base.Add(time.Hour+45*time.Minute), 3),
	}

	buckets := Bucketize(readings, time.Hour)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	wantStarts := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)}
	wantValues := []float64{1, 3, 5}
	for i, b := range buckets {
		if !b.IntervalStart.Equal(wantStarts[i]) {
			t.Errorf("bucket %d: expected start %v, got %v", i, wantStarts[i], b.IntervalStart)
		}
		if b.Value != wantValues[i] {
			t.Errorf("bucket %d: expected value %f, got %f", i, wantValues[i], b.Value)
		}
	}
}

func TestBucketizeEmpty(t *testing.T) {
	buckets := Bucketize(nil, time.Hour)
	if buckets == nil {
		t.Fatal("expected a non-nil empty slice")
	}
	if len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %d", len(buckets))
	}
}

func TestBucketizeDailyWidth(t *testing.T) {
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		reading(day.Add(2*time.Hour), 1),
		reading(day.Add(20*time.Hour), 3),
	}

	buckets := Bucketize(readings, IntervalDaily.Width())
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if !buckets[0].IntervalStart.Equal(day) {
		t.Errorf("expected bucket start %v, got %v", day, buckets[0].IntervalStart)
	}
	if buckets[0].Value != 2 {
		t.Errorf("expected mean 2, got %f", buckets[0].Value)
	}
}

func TestBucketValues(t *testing.T) {
	base := time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC)
	buckets := []Bucket{
		{IntervalStart: base, Value: 1.5},
		{IntervalStart: base.Add(time.Hour), Value: 2.5},
	}

	values := BucketValues(buckets)
	if len(values) != 2 || values[0] != 1.5 || values[1] != 2.5 {
		t.Fatalf("unexpected values: %v", values)
	}
}
