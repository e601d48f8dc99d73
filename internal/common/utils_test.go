package common

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.5, 1},
	}
	for _, tc := range cases {
		if got := Clamp01(tc.in); got != tc.want {
			t.Errorf("Clamp01(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{0, -3.2, 1e300} {
		if !IsFinite(v) {
			t.Errorf("expected %f to be finite", v)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Errorf("expected %f to be non-finite", v)
		}
	}
}
