package terminal

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Sample is one horizontal pointer position
type Sample struct {
	T time.Time
	X float64
}

// Velocity estimates horizontal speed in px/s as the least-squares slope of the samples
// inside window before the newest one; fewer than minSamples yields 0
func Velocity(samples []Sample, window time.Duration, minSamples int) float64 {
	if len(samples) == 0 {
		return 0
	}
	last := samples[len(samples)-1].T
	cutoff := last.Add(-window)

	first := len(samples)
	for i := len(samples) - 1; i >= 0 && !samples[i].T.Before(cutoff); i-- {
		first = i
	}
	recent := samples[first:]
	if len(recent) < max(minSamples, 2) {
		return 0
	}

	ts := make([]float64, len(recent))
	xs := make([]float64, len(recent))
	for i, s := range recent {
		ts[i] = s.T.Sub(recent[0].T).Seconds()
		xs[i] = s.X
	}
	if ts[len(ts)-1] == 0 {
		// All samples share one timestamp
		return 0
	}

	_, slope := stat.LinearRegression(ts, xs, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return slope
}
