package plan

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flightrisk/flightrisk/sim"
	"github.com/flightrisk/flightrisk/sim/airport"
)

// RiskLevel categorizes the remaining margin after the p95 arrival.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Margin bands, in minutes left after the p95 arrival time.
const (
	criticalMarginMins = 20
	highMarginMins     = 45
)

// Window thresholds for the departure scan: below certaintyRisk the
// departure is a near-sure make; above dropDeadRisk the flight is lost.
const (
	certaintyRisk = 0.05
	dropDeadRisk  = 0.90
)

// Departure scan bounds, minutes before gate close.
const (
	scanMinOffset  = 45
	scanMaxOffset  = 360
	scanStepMins   = 15
	scanTrialCount = 2000 // reduced trials per scan point, same as the original solver
)

// TripReport is the outcome of evaluating one departure time.
type TripReport struct {
	// Probability is the Monte Carlo miss estimate.
	Probability float64
	// ApproxProbability is the closed-form moment-matched cross-check.
	ApproxProbability float64
	// RiskLevel bands the margin left after the p95 arrival.
	RiskLevel RiskLevel
	// EffectiveBuffer is budget minus the deterministic ground time.
	EffectiveBuffer float64
	// P95Arrival is the approximate 95th percentile total travel time.
	P95Arrival float64
}

// DepartureWindows is the result of scanning the departure timeline.
type DepartureWindows struct {
	// Certainty is the latest scanned departure with miss risk <= 5%.
	// Nil when no scanned departure is that safe.
	Certainty *time.Time
	// DropDead is the latest scanned departure where the flight is still
	// makeable (miss risk <= 90%). Nil when every scanned point is lost.
	DropDead *time.Time
	// LowestRisk is the smallest miss probability seen across the scan.
	LowestRisk float64
}

// Query assembles the core RiskQuery for a scenario's departure time.
//
// The stochastic sources are road traffic (weather-scaled Normal) and the
// security line (tier/congestion Gamma at the estimated airport arrival).
// Check-in and terminal walk enter as their deterministic expected values,
// matching the core model's single fixed walk term.
func (s *Scenario) Query() sim.RiskQuery {
	mult := WeatherMultiplier(s.Weather)
	traffic := sim.NewNormalSpec(s.Traffic.Mean*mult, s.Traffic.StdDev*mult)

	arrival := s.Departure.Add(time.Duration(traffic.Mean * float64(time.Minute)))
	checkpoint := airport.SecuritySpec(s.Airport, arrival, s.Precheck)

	walkMean, _ := airport.WalkSpec(s.Airport).Moments()
	checkinMean, _ := airport.CheckinSpec(s.Airport, arrival, s.HasBags).Moments()

	return sim.RiskQuery{
		TimeBudget: s.GateClose.Sub(s.Departure).Minutes(),
		Traffic:    traffic,
		Checkpoint: checkpoint,
		WalkTime:   walkMean + checkinMean,
		Trials:     s.Trials,
		Workers:    s.Workers,
	}
}

// EvaluateTrip runs one full estimate for the scenario's departure time.
func EvaluateTrip(s *Scenario) (TripReport, error) {
	q := s.Query()

	est := sim.NewEstimator(seedKey(s))
	res, err := est.EstimateRisk(q)
	if err != nil {
		return TripReport{}, err
	}

	approx, err := sim.NormalApproxRisk(q)
	if err != nil {
		return TripReport{}, err
	}
	p95, err := sim.ApproxQuantile(q, 0.95)
	if err != nil {
		return TripReport{}, err
	}

	report := TripReport{
		Probability:       res.Probability,
		ApproxProbability: approx,
		RiskLevel:         classifyMargin(q.TimeBudget - p95),
		EffectiveBuffer:   res.EffectiveBuffer,
		P95Arrival:        p95,
	}
	logrus.Debugf("trip evaluated: p=%.4f approx=%.4f level=%s buffer=%.1f",
		report.Probability, report.ApproxProbability, report.RiskLevel, report.EffectiveBuffer)
	return report, nil
}

// classifyMargin bands the minutes left after the p95 arrival.
func classifyMargin(remaining float64) RiskLevel {
	switch {
	case remaining < criticalMarginMins:
		return RiskCritical
	case remaining < highMarginMins:
		return RiskHigh
	default:
		return RiskLow
	}
}

// FindDeparture scans the timeline before gate close for the certainty and
// drop-dead windows. The scan walks from the latest candidate (45 minutes
// out) backwards in 15-minute steps and stops at the first certainty hit;
// each point uses a reduced trial count for speed.
func FindDeparture(s *Scenario) (DepartureWindows, error) {
	windows := DepartureWindows{LowestRisk: 1.0}
	est := sim.NewEstimator(seedKey(s))

	for offset := scanMinOffset; offset <= scanMaxOffset; offset += scanStepMins {
		candidate := *s
		candidate.Departure = s.GateClose.Add(-time.Duration(offset) * time.Minute)
		candidate.Trials = scanTrialCount

		q := candidate.Query()
		res, err := est.EstimateRisk(q)
		if err != nil {
			return DepartureWindows{}, err
		}
		logrus.Debugf("scan offset=%dm departure=%s risk=%.4f",
			offset, candidate.Departure.Format("15:04"), res.Probability)

		if res.Probability < windows.LowestRisk {
			windows.LowestRisk = res.Probability
		}
		if windows.DropDead == nil && res.Probability <= dropDeadRisk {
			dep := candidate.Departure
			windows.DropDead = &dep
		}
		if res.Probability <= certaintyRisk {
			dep := candidate.Departure
			windows.Certainty = &dep
			break
		}
	}

	if windows.Certainty == nil {
		logrus.Warnf("no departure reaches %.0f%% certainty; lowest miss risk seen: %.1f%%",
			(1-certaintyRisk)*100, windows.LowestRisk*100)
	}
	if windows.DropDead == nil {
		logrus.Warnf("no viable drop-dead window found in the scanned range")
	}
	return windows, nil
}

// seedKey derives the estimator key: a pinned scenario seed when supplied,
// entropy otherwise.
func seedKey(s *Scenario) sim.SimulationKey {
	if s.Seed != 0 {
		return sim.NewSimulationKey(s.Seed)
	}
	return sim.EntropyKey()
}
