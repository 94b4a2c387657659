package sim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible estimation run.
// Two runs with the same SimulationKey and identical query parameters
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// EntropyKey creates a SimulationKey from the operating system's entropy
// source. This is the default for production callers: repeated estimates are
// statistically independent but NOT reproducible. Tests and callers that need
// reproducibility should use NewSimulationKey instead.
func EntropyKey() SimulationKey {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable; documented to
		// never error on supported platforms.
		panic(fmt.Sprintf("entropy source unavailable: %v", err))
	}
	return SimulationKey(int64(binary.LittleEndian.Uint64(buf[:])))
}

// === Subsystem Constants ===

const (
	// SubsystemTraffic is the RNG subsystem for road traffic delay draws.
	// Uses the master seed directly.
	SubsystemTraffic = "traffic"

	// SubsystemCheckpoint is the RNG subsystem for security checkpoint draws.
	SubsystemCheckpoint = "checkpoint"

	// SubsystemDiagnostics is the RNG subsystem for standalone sample arrays.
	SubsystemDiagnostics = "diagnostics"
)

// SubsystemWorker returns the subsystem name for parallel trial worker N.
// Each worker partition gets an independently derived stream so partitioned
// runs do not correlate.
func SubsystemWorker(id int) string {
	return fmt.Sprintf("worker_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemTraffic: uses the master seed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine;
// estimator workers derive their engine up front and own it exclusively.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemTraffic {
		derivedSeed = int64(p.key)
	} else {
		// XOR with hash for isolation between subsystems.
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
