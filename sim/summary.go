package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SampleSummary describes a diagnostic sample array.
type SampleSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P95    float64
}

// Summarize computes descriptive statistics over a sample array.
// An empty input returns a zero-valued summary.
func Summarize(samples []float64) SampleSummary {
	if len(samples) == 0 {
		return SampleSummary{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	s := SampleSummary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
