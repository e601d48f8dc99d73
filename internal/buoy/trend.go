package buoy

import (
	"math"

	"github.com/swellwatch/buoy-tracker/internal/common"
)

// DefaultTrendDeadZone is the relative slope threshold below which a
// series counts as stable.
const DefaultTrendDeadZone = 0.01

// ClassifyTrend fits an ordinary least-squares line over the bucket values
// (x is the bucket's ordinal index, which keeps the fit insensitive to
// gaps) and derives the direction, the observed percentage change between
// the first and last bucket, and an R² confidence score clamped to [0,1].
//
// The slope must exceed deadZone*|mean| per bucket step to count as a
// trend; when the mean is zero the zone collapses and the slope's sign
// decides. Fewer than two values yields the stable zero result.
func ClassifyTrend(values []float64, deadZone float64) TrendResult {
	if len(values) < 2 {
		return TrendResult{TrendDirection: TrendStable}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	slope, intercept := leastSquares(values)

	first, last := values[0], values[len(values)-1]
	var change float64
	if first != 0 {
		change = (last - first) / first * 100
	}

	threshold := deadZone * math.Abs(mean)
	direction := TrendStable
	switch {
	case slope > threshold:
		direction = TrendIncreasing
	case slope < -threshold:
		direction = TrendDecreasing
	}

	return TrendResult{
		TrendDirection:   direction,
		ChangePercentage: change,
		ConfidenceScore:  common.Clamp01(rSquared(values, mean, slope, intercept)),
	}
}

// leastSquares fits value = intercept + slope*i over the series.
func leastSquares(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// rSquared is the coefficient of determination of the fitted line. A flat
// series has zero total variance and is defined as 1.0: its own mean
// predicts it perfectly.
func rSquared(values []float64, mean, slope, intercept float64) float64 {
	var ssRes, ssTot float64
	for i, v := range values {
		fit := intercept + slope*float64(i)
		ssRes += (v - fit) * (v - fit)
		d := v - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}
