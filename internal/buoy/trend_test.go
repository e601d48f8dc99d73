package buoy

import (
	"math"
	"testing"
)

func TestClassifyTrendLinearIncrease(t *testing.T) {
	res := ClassifyTrend([]float64{1, 2, 3, 4, 5}, DefaultTrendDeadZone)

	if res.TrendDirection != TrendIncreasing {
		t.Fatalf("expected %s, got %s", TrendIncreasing, res.TrendDirection)
	}
	if math.Abs(res.ChangePercentage-400) > 1e-9 {
		t.Fatalf("expected 400%% change, got %f", res.ChangePercentage)
	}
	if math.Abs(res.ConfidenceScore-1) > 1e-9 {
		t.Fatalf("expected confidence 1.0, got %f", res.ConfidenceScore)
	}
}

func TestClassifyTrendLinearDecrease(t *testing.T) {
	res := ClassifyTrend([]float64{10, 8, 6, 4}, DefaultTrendDeadZone)

	if res.TrendDirection != TrendDecreasing {
		t.Fatalf("expected %s, got %s", TrendDecreasing, res.TrendDirection)
	}
	if math.Abs(res.ChangePercentage-(-60)) > 1e-9 {
		t.Fatalf("expected -60%% change, got %f", res.ChangePercentage)
	}
	if math.Abs(res.ConfidenceScore-1) > 1e-9 {
		t.Fatalf("expected confidence 1.0, got %f", res.ConfidenceScore)
	}
}

func TestClassifyTrendConstantSeries(t *testing.T) {
	res := ClassifyTrend([]float64{7.5, 7.5, 7.5, 7.5}, DefaultTrendDeadZone)

	if res.TrendDirection != TrendStable {
		t.Fatalf("expected %s, got %s", TrendStable, res.TrendDirection)
	}
	if res.ChangePercentage != 0 {
		t.Fatalf("expected zero change, got %f", res.ChangePercentage)
	}
	if res.ConfidenceScore != 1 {
		t.Fatalf("expected confidence 1.0 for a flat series, got %f", res.ConfidenceScore)
	}
}

func TestClassifyTrendTooFewPoints(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {3.2}} {
		res := ClassifyTrend(values, DefaultTrendDeadZone)
		if res.TrendDirection != TrendStable || res.ChangePercentage != 0 || res.ConfidenceScore != 0 {
			t.Fatalf("expected stable zero result for %v, got %+v", values, res)
		}
	}
}

func TestClassifyTrendDeadZoneAbsorbsDrift(t *testing.T) {
	// Slope 0.05 per step against a mean around 100 sits inside the 1%
	// dead zone even though the fit is perfect.
	res := ClassifyTrend([]float64{100, 100.05, 100.1, 100.15}, DefaultTrendDeadZone)

	if res.TrendDirection != TrendStable {
		t.Fatalf("expected %s, got %s", TrendStable, res.TrendDirection)
	}
}

func TestClassifyTrendZeroBaseline(t *testing.T) {
	res := ClassifyTrend([]float64{0, 1, 2}, DefaultTrendDeadZone)

	if res.ChangePercentage != 0 {
		t.Fatalf("expected zero change for a zero baseline, got %f", res.ChangePercentage)
	}
	if res.TrendDirection != TrendIncreasing {
		t.Fatalf("expected %s, got %s", TrendIncreasing, res.TrendDirection)
	}
}

func TestClassifyTrendNoisySeriesLowConfidence(t *testing.T) {
	res := ClassifyTrend([]float64{5, 1, 6, 2, 5, 1}, DefaultTrendDeadZone)

	if res.ConfidenceScore < 0 || res.ConfidenceScore > 0.5 {
		t.Fatalf("expected low confidence for noise, got %f", res.ConfidenceScore)
	}
}
