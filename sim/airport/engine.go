// Package airport models terminal processing time as DistributionSpecs:
// security (Gamma, queue-theory standard for service lines), bag-drop
// check-in (Gamma), and terminal walk (Normal). Base parameters come from
// the airport's tier and are scaled by time-of-day and seasonal congestion.
package airport

import (
	"math/rand"
	"time"

	"github.com/flightrisk/flightrisk/sim"
)

// timeMultiplier returns the rush-hour congestion factor for an hour of day.
func timeMultiplier(t time.Time) float64 {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 9:
		// Morning rush: business travelers + early departures.
		return 1.3
	case hour >= 15 && hour < 19:
		// Evening rush.
		return 1.2
	case (hour >= 10 && hour < 14) || hour >= 21:
		// Off-peak.
		return 0.7
	default:
		return 1.0
	}
}

// dayMultiplier returns the weekday and seasonality congestion factor.
func dayMultiplier(t time.Time) float64 {
	mult := 1.0

	// Friday and Sunday are peak travel days.
	switch t.Weekday() {
	case time.Friday, time.Sunday:
		mult *= 1.15
	case time.Tuesday, time.Wednesday:
		mult *= 0.85
	}

	// Holiday season: summer, November, December.
	switch t.Month() {
	case time.June, time.July, time.August, time.November, time.December:
		mult *= 1.1
	}
	return mult
}

// CongestionFactor is the composite temporal multiplier applied to both the
// mean and the scale of the queue distributions (variance rises with
// congestion).
func CongestionFactor(t time.Time) float64 {
	return timeMultiplier(t) * dayMultiplier(t)
}

// securityBase returns the Gamma moments (avg, scale) for a security line
// before temporal scaling. Higher scale means more chaos.
func securityBase(tier Tier) (avg, scale float64) {
	switch tier {
	case Tier1:
		return 25.0, 4.0
	case Tier2:
		return 15.0, 2.5
	default:
		return 10.0, 1.5
	}
}

// SecuritySpec builds the checkpoint delay distribution for an airport at a
// given local time. PreCheck cuts the average by 65% and most of the
// variance.
func SecuritySpec(code string, t time.Time, precheck bool) sim.DistributionSpec {
	avg, scale := securityBase(Classify(code))

	mult := CongestionFactor(t)
	avg *= mult
	scale *= mult

	if precheck {
		avg *= 0.35
		scale *= 0.4
	}

	// Gamma mean = shape * scale, so shape = avg / scale.
	return sim.NewGammaSpec(avg/scale, scale)
}

// CheckinSpec builds the ticket counter / bag drop delay distribution.
// Without bags, check-in is digital and near-instantaneous with minor noise.
func CheckinSpec(code string, t time.Time, hasBags bool) sim.DistributionSpec {
	if !hasBags {
		return sim.NewGammaSpec(2.5, 1.0)
	}

	var avg, scale float64
	switch Classify(code) {
	case Tier1:
		avg, scale = 18, 4.0 // big hubs have chaotic bag lines
	case Tier2:
		avg, scale = 10, 2.0
	default:
		avg, scale = 5, 1.0
	}

	mult := CongestionFactor(t)
	avg *= mult
	scale *= mult

	return sim.NewGammaSpec(avg/scale, scale)
}

// WalkSpec builds the terminal transit distribution (post-security to gate).
// Walking speed is consistent, so this is Normal.
func WalkSpec(code string) sim.DistributionSpec {
	switch Classify(code) {
	case Tier1:
		// Train or a mile on foot at the big hubs.
		return sim.NewNormalSpec(12, 5)
	case Tier2:
		return sim.NewNormalSpec(7, 2)
	default:
		return sim.NewNormalSpec(3, 1)
	}
}

// TotalTime draws n curb-to-gate samples: check-in + security + walk,
// summed element-wise. Diagnostic counterpart of the original engine's
// full-journey vector.
func TotalTime(rng *rand.Rand, code string, t time.Time, hasBags, precheck bool, n int) ([]float64, error) {
	checkin, err := sim.SampleArrayWithRNG(CheckinSpec(code, t, hasBags), n, rng)
	if err != nil {
		return nil, err
	}
	security, err := sim.SampleArrayWithRNG(SecuritySpec(code, t, precheck), n, rng)
	if err != nil {
		return nil, err
	}
	walk, err := sim.SampleArrayWithRNG(WalkSpec(code), n, rng)
	if err != nil {
		return nil, err
	}

	total := make([]float64, n)
	for i := range total {
		total[i] = checkin[i] + security[i] + walk[i]
	}
	return total, nil
}
