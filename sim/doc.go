// Package sim provides the Monte Carlo core of flightrisk.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - distribution.go: DistributionSpec (Normal/Gamma), samplers, SampleArray
//   - estimator.go: RiskQuery, the trial loop, and miss-count aggregation
//   - rng.go: SimulationKey and the partitioned, reproducible RNG
//
// # Architecture
//
// The sim package is the leaf: pure functions over caller-supplied
// parameters, no I/O, no shared mutable state between calls. Higher layers
// live in sub-packages:
//   - sim/airport/: airport tier model producing DistributionSpecs for
//     check-in, security, and terminal walk
//   - sim/plan/: trip evaluation and departure-window search
//
// Every estimate is driven by a SimulationKey. Production callers use
// EntropyKey() (independent, non-reproducible runs); tests pin a seed with
// NewSimulationKey for exact reproducibility.
package sim
