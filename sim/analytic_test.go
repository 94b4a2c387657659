package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalApproxRisk_SymmetricCase(t *testing.T) {
	// Buffer exactly at the summed mean → probability 0.5.
	q := RiskQuery{
		TimeBudget: 73,
		Traffic:    NewNormalSpec(45, 10),
		Checkpoint: NewNormalSpec(18, 10),
		WalkTime:   10,
		Trials:     1,
	}
	p, err := NormalApproxRisk(q)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestNormalApproxRisk_ReferenceScenario(t *testing.T) {
	// total ~ N(63, sqrt(200)), buffer 80: z = 17/14.142 = 1.2021,
	// survival ≈ 0.1146.
	q := RiskQuery{
		TimeBudget: 90,
		Traffic:    NewNormalSpec(45, 10),
		Checkpoint: NewNormalSpec(18, 10),
		WalkTime:   10,
		Trials:     1,
	}
	p, err := NormalApproxRisk(q)
	require.NoError(t, err)
	assert.InDelta(t, 0.1146, p, 0.001)
}

func TestNormalApproxRisk_GammaMomentMatched(t *testing.T) {
	// Gamma(2, 10) contributes mean 20, variance 200 to the matched Normal.
	q := RiskQuery{
		TimeBudget: 75,
		Traffic:    NewNormalSpec(45, 10),
		Checkpoint: NewGammaSpec(2, 10),
		WalkTime:   10,
		Trials:     1,
	}
	p, err := NormalApproxRisk(q)
	require.NoError(t, err)
	// Buffer 65 = summed mean → 0.5 under the matched Normal.
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestNormalApproxRisk_InvalidSpec(t *testing.T) {
	q := RiskQuery{
		TimeBudget: 90,
		Traffic:    NewNormalSpec(45, 10),
		Checkpoint: NewGammaSpec(-1, 10),
		WalkTime:   10,
		Trials:     1,
	}
	_, err := NormalApproxRisk(q)
	assert.Error(t, err)
}

func TestApproxQuantile_MedianIsMeanPlusWalk(t *testing.T) {
	q := RiskQuery{
		TimeBudget: 90,
		Traffic:    NewNormalSpec(45, 10),
		Checkpoint: NewNormalSpec(18, 10),
		WalkTime:   10,
		Trials:     1,
	}
	p50, err := ApproxQuantile(q, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 73.0, p50, 1e-9)

	p95, err := ApproxQuantile(q, 0.95)
	require.NoError(t, err)
	assert.Greater(t, p95, p50)
}
