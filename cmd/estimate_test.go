package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightrisk/flightrisk/sim"
)

func TestCheckpointSpec_NormalFamily(t *testing.T) {
	spec, err := checkpointSpec("normal", 18, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, sim.Normal, spec.Kind)
	assert.Equal(t, 18.0, spec.Mean)
	assert.Equal(t, 10.0, spec.StdDev)
}

func TestCheckpointSpec_GammaFamily(t *testing.T) {
	spec, err := checkpointSpec("gamma", 0, 0, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, sim.Gamma, spec.Kind)
	assert.Equal(t, 2.0, spec.Shape)
	assert.Equal(t, 10.0, spec.Scale)
}

func TestCheckpointSpec_NoDefaultFamily(t *testing.T) {
	// The family must be an explicit caller choice.
	_, err := checkpointSpec("", 18, 10, 2, 10)
	assert.Error(t, err)

	_, err = checkpointSpec("triangular", 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestCheckpointSpec_GammaParamsValidatedDownstream(t *testing.T) {
	// checkpointSpec only selects the family; domain constraints are
	// enforced by the estimator before any sampling.
	spec, err := checkpointSpec("gamma", 0, 0, 0, 10)
	require.NoError(t, err)

	q := sim.RiskQuery{
		TimeBudget: 90,
		Traffic:    sim.NewNormalSpec(45, 10),
		Checkpoint: spec,
		WalkTime:   10,
		Trials:     100,
	}
	_, err = sim.NewEstimator(sim.NewSimulationKey(1)).EstimateRisk(q)
	assert.Error(t, err)
}
