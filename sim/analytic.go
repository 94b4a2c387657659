package sim

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalApproxRisk returns the closed-form probability that the summed delay
// exceeds the effective buffer, treating the sum as Normal with the two
// sources' moments added. Exact when both sources are Normal; a
// moment-matched approximation when the checkpoint is Gamma.
//
// This is a cross-check for the Monte Carlo estimate (and the planner's
// quick pre-screen), not a confidence interval.
func NormalApproxRisk(q RiskQuery) (float64, error) {
	if err := q.Traffic.Validate(); err != nil {
		return 0, err
	}
	if err := q.Checkpoint.Validate(); err != nil {
		return 0, err
	}

	tMean, tVar := q.Traffic.Moments()
	cMean, cVar := q.Checkpoint.Moments()

	sum := distuv.Normal{
		Mu:    tMean + cMean,
		Sigma: math.Sqrt(tVar + cVar),
	}
	return sum.Survival(q.EffectiveBuffer()), nil
}

// ApproxQuantile returns the p-quantile of the moment-matched Normal total
// delay (walk time included). Used for p95 arrival framing in trip reports.
func ApproxQuantile(q RiskQuery, p float64) (float64, error) {
	if err := q.Traffic.Validate(); err != nil {
		return 0, err
	}
	if err := q.Checkpoint.Validate(); err != nil {
		return 0, err
	}

	tMean, tVar := q.Traffic.Moments()
	cMean, cVar := q.Checkpoint.Moments()

	sum := distuv.Normal{
		Mu:    tMean + cMean,
		Sigma: math.Sqrt(tVar + cVar),
	}
	return sum.Quantile(p) + q.WalkTime, nil
}
