package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// DistKind selects the parametric family of a DistributionSpec.
type DistKind string

const (
	// Normal is parameterized by Mean and StdDev.
	Normal DistKind = "normal"
	// Gamma is parameterized by Shape (k) and Scale (theta).
	Gamma DistKind = "gamma"
)

// MinStdDev is the floor applied to a Normal spec's standard deviation.
// A zero or negative spread would collapse or invert the distribution, so
// the engine clamps silently instead of failing (DegenerateSpreadWarning in
// the original model: a robustness choice, not an error).
const MinStdDev = 0.1

// DistributionSpec is a tagged choice of parametric family.
// Exactly the fields of the selected Kind are meaningful.
type DistributionSpec struct {
	Kind DistKind

	// Normal parameters. StdDev below MinStdDev is clamped at sampling time.
	Mean   float64
	StdDev float64

	// Gamma parameters. Both must be strictly positive.
	Shape float64
	Scale float64
}

// NewNormalSpec returns a Normal DistributionSpec.
func NewNormalSpec(mean, stdDev float64) DistributionSpec {
	return DistributionSpec{Kind: Normal, Mean: mean, StdDev: stdDev}
}

// NewGammaSpec returns a Gamma DistributionSpec.
func NewGammaSpec(shape, scale float64) DistributionSpec {
	return DistributionSpec{Kind: Gamma, Shape: shape, Scale: scale}
}

// Validate checks the spec's domain constraints. Gamma shape and scale must
// be strictly positive; Normal accepts any finite parameters (the spread is
// clamped, not rejected). Returns *InvalidParameterError on violation.
func (s DistributionSpec) Validate() error {
	switch s.Kind {
	case Normal:
		if math.IsNaN(s.Mean) || math.IsInf(s.Mean, 0) {
			return invalidParam("mean", s.Mean, "must be finite")
		}
		if math.IsNaN(s.StdDev) || math.IsInf(s.StdDev, 0) {
			return invalidParam("std_dev", s.StdDev, "must be finite")
		}
		return nil
	case Gamma:
		if !(s.Shape > 0) {
			return invalidParam("shape", s.Shape, "gamma shape must be > 0")
		}
		if !(s.Scale > 0) {
			return invalidParam("scale", s.Scale, "gamma scale must be > 0")
		}
		return nil
	default:
		return invalidParam("kind", 0, fmt.Sprintf("unknown distribution kind %q; valid: normal, gamma", s.Kind))
	}
}

// EffectiveStdDev returns the spread actually used for Normal sampling:
// max(MinStdDev, StdDev).
func (s DistributionSpec) EffectiveStdDev() float64 {
	return math.Max(MinStdDev, s.StdDev)
}

// Moments returns the mean and variance of the distribution, with the
// Normal clamp applied. Used by the closed-form approximation.
func (s DistributionSpec) Moments() (mean, variance float64) {
	switch s.Kind {
	case Gamma:
		return s.Shape * s.Scale, s.Shape * s.Scale * s.Scale
	default:
		sd := s.EffectiveStdDev()
		return s.Mean, sd * sd
	}
}

// Sampler draws variates from one distribution.
type Sampler interface {
	// Sample returns one draw using the supplied engine.
	Sample(rng *rand.Rand) float64
}

// normalSampler produces Normal variates with the clamped spread.
type normalSampler struct {
	mean, stdDev float64
}

func (s *normalSampler) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*s.stdDev + s.mean
}

// gammaSampler produces Gamma(shape, scale) variates.
type gammaSampler struct {
	shape, scale float64
}

func (s *gammaSampler) Sample(rng *rand.Rand) float64 {
	return gammaRand(rng, s.shape, s.scale)
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		// Ahrens-Dieter: Gamma(a) = Gamma(a+1) * U^(1/a)
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	// Marsaglia-Tsang for shape >= 1
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// NewSampler creates a Sampler from a validated DistributionSpec.
func NewSampler(spec DistributionSpec) (Sampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Kind {
	case Normal:
		return &normalSampler{mean: spec.Mean, stdDev: spec.EffectiveStdDev()}, nil
	case Gamma:
		return &gammaSampler{shape: spec.Shape, scale: spec.Scale}, nil
	default:
		// Unreachable after Validate; kept for exhaustiveness.
		return nil, invalidParam("kind", 0, fmt.Sprintf("unknown distribution kind %q", spec.Kind))
	}
}

// SampleArray returns count independent, identically-distributed draws from
// spec, using a freshly entropy-seeded engine. Results are intentionally NOT
// reproducible across calls; use SampleArrayWithRNG with a pinned
// SimulationKey for reproducibility.
//
// count = 0 yields an empty (non-nil) slice; count < 0 is rejected.
func SampleArray(spec DistributionSpec, count int) ([]float64, error) {
	rng := NewPartitionedRNG(EntropyKey()).ForSubsystem(SubsystemDiagnostics)
	return SampleArrayWithRNG(spec, count, rng)
}

// SampleArrayWithRNG is SampleArray over a caller-owned engine.
func SampleArrayWithRNG(spec DistributionSpec, count int, rng *rand.Rand) ([]float64, error) {
	if count < 0 {
		return nil, invalidParam("count", float64(count), "sample count must be >= 0")
	}
	sampler, err := NewSampler(spec)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = sampler.Sample(rng)
	}
	return out, nil
}
