package sim

import (
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultTrialCount is the trial count used by callers that do not specify
// one. The estimator itself never applies it: Trials < 1 is rejected.
const DefaultTrialCount = 100000

// RiskQuery carries the caller-supplied parameters for one estimation call.
// Immutable for the duration of the call.
type RiskQuery struct {
	// TimeBudget is the total minutes available before the gate closes.
	TimeBudget float64
	// Traffic models the road delay. Must be a Normal spec.
	Traffic DistributionSpec
	// Checkpoint models the security line. Normal or Gamma, chosen
	// explicitly by the caller; there is no default family.
	Checkpoint DistributionSpec
	// WalkTime is the deterministic security-to-gate transit in minutes.
	WalkTime float64
	// Trials is the number of independent Monte Carlo trials. Must be >= 1.
	Trials int
	// Workers optionally partitions the trial loop across goroutines.
	// Values <= 1 run single-threaded. Partitioning changes which RNG
	// streams are consumed, not the estimator's semantics.
	Workers int
}

// EffectiveBuffer is the threshold a trial's total stochastic delay is
// compared against: TimeBudget - WalkTime. May be negative, which simply
// drives the estimate toward certain miss.
func (q RiskQuery) EffectiveBuffer() float64 {
	return q.TimeBudget - q.WalkTime
}

// Validate checks all preconditions. Runs before any sampling (fail fast).
func (q RiskQuery) Validate() error {
	if q.Trials < 1 {
		return invalidParam("trials", float64(q.Trials), "trial count must be >= 1")
	}
	if q.Traffic.Kind != Normal {
		return invalidParam("traffic.kind", 0, "traffic delay must use a normal distribution")
	}
	if err := q.Traffic.Validate(); err != nil {
		return err
	}
	return q.Checkpoint.Validate()
}

// RiskResult is the outcome of one estimation call.
type RiskResult struct {
	// Probability is Missed/Trials, in [0.0, 1.0].
	Probability float64
	// Missed is the number of trials whose total delay exceeded the buffer.
	Missed int
	// Trials echoes the trial count actually run.
	Trials int
	// EffectiveBuffer echoes the threshold the trials were compared against.
	EffectiveBuffer float64
}

// Estimator runs independent-trials Monte Carlo risk estimates.
// Each Estimator owns a SimulationKey; estimates with the same key and query
// are bit-for-bit identical. Every call constructs its own engines from the
// key, so concurrent EstimateRisk calls on one Estimator are safe.
type Estimator struct {
	key SimulationKey
}

// NewEstimator creates an Estimator from a SimulationKey. Use EntropyKey()
// for production (independent, non-reproducible) runs.
func NewEstimator(key SimulationKey) *Estimator {
	return &Estimator{key: key}
}

// EstimateRisk estimates P(trafficDelay + checkpointDelay > EffectiveBuffer)
// over q.Trials independent trials. It either completes and returns a
// probability in [0, 1], or fails on a precondition with no sampling done.
func (e *Estimator) EstimateRisk(q RiskQuery) (RiskResult, error) {
	if err := q.Validate(); err != nil {
		return RiskResult{}, err
	}

	buffer := q.EffectiveBuffer()
	logrus.Debugf("estimating risk: trials=%d buffer=%.2f workers=%d", q.Trials, buffer, q.Workers)

	var missed int
	var err error
	if q.Workers > 1 {
		missed, err = e.runPartitioned(q, buffer)
	} else {
		missed, err = e.runSerial(q, buffer)
	}
	if err != nil {
		return RiskResult{}, err
	}

	return RiskResult{
		Probability:     float64(missed) / float64(q.Trials),
		Missed:          missed,
		Trials:          q.Trials,
		EffectiveBuffer: buffer,
	}, nil
}

// runSerial is the plain trial loop: fresh traffic and checkpoint draws per
// trial, strict comparison against the buffer, integer miss tally.
func (e *Estimator) runSerial(q RiskQuery, buffer float64) (int, error) {
	trafficSampler, err := NewSampler(q.Traffic)
	if err != nil {
		return 0, err
	}
	checkpointSampler, err := NewSampler(q.Checkpoint)
	if err != nil {
		return 0, err
	}

	rng := NewPartitionedRNG(e.key)
	trafficRNG := rng.ForSubsystem(SubsystemTraffic)
	checkpointRNG := rng.ForSubsystem(SubsystemCheckpoint)

	missed := 0
	for i := 0; i < q.Trials; i++ {
		total := trafficSampler.Sample(trafficRNG) + checkpointSampler.Sample(checkpointRNG)
		if total > buffer {
			missed++
		}
	}
	return missed, nil
}

// runPartitioned splits the trials across q.Workers goroutines. Each worker
// draws from its own derived subsystem stream so partitions do not
// correlate; the reduction is a plain sum of miss counts.
func (e *Estimator) runPartitioned(q RiskQuery, buffer float64) (int, error) {
	workers := q.Workers
	if workers > q.Trials {
		workers = q.Trials
	}

	// Derive all worker engines up front from the single PartitionedRNG;
	// afterwards each goroutine touches only its own *rand.Rand.
	rng := NewPartitionedRNG(e.key)
	engines := make([]*workerEngines, workers)
	for w := 0; w < workers; w++ {
		engines[w] = &workerEngines{
			traffic:    rng.ForSubsystem(SubsystemWorker(2 * w)),
			checkpoint: rng.ForSubsystem(SubsystemWorker(2*w + 1)),
		}
	}

	base := q.Trials / workers
	extra := q.Trials % workers

	counts := make([]int, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		trials := base
		if w < extra {
			trials++
		}
		wg.Add(1)
		go func(w, trials int) {
			defer wg.Done()
			trafficSampler, err := NewSampler(q.Traffic)
			if err != nil {
				errs[w] = err
				return
			}
			checkpointSampler, err := NewSampler(q.Checkpoint)
			if err != nil {
				errs[w] = err
				return
			}
			eng := engines[w]
			missed := 0
			for i := 0; i < trials; i++ {
				total := trafficSampler.Sample(eng.traffic) + checkpointSampler.Sample(eng.checkpoint)
				if total > buffer {
					missed++
				}
			}
			counts[w] = missed
		}(w, trials)
	}
	wg.Wait()

	missed := 0
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return 0, errs[w]
		}
		missed += counts[w]
	}
	return missed, nil
}

type workerEngines struct {
	traffic, checkpoint *rand.Rand
}
