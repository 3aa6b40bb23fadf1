package synapse

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/stochastic"
)

func baseConfig() SynapseConfig {
	return SynapseConfig{
		Transporter:      molecule.Transporters[molecule.VGLUT],
		Receptor:         molecule.Receptors[molecule.AMPA],
		DendriteDensity:  0.5,
		DendriteStrength: 1.0,
		ReplenishRate:    0.2,
		ReuptakeRate:     0.3,
		Capacity:         50,
		Mode:             axon.ModeSpike,
	}
}

func TestNewChemicalSynapse_RejectsMismatchedTransporterReceptor(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.Receptor = molecule.Receptors[molecule.GABAA]
	_, err := NewChemicalSynapse(env, cfg, stochastic.New(1))
	require.ErrorIs(t, err, ErrWrongTransporterReceptorPair)
}

func TestNewChemicalSynapse_RejectsInvalidDensity(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.DendriteDensity = 2.0
	_, err := NewChemicalSynapse(env, cfg, stochastic.New(1))
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestChemicalSynapse_FireAndStepTransfersToDendrite(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.EnzymeConcentration = 0 // isolate binding from metabolism
	s, err := NewChemicalSynapse(env, cfg, stochastic.New(7))
	require.NoError(t, err)
	env.MarkStarted()

	require.NoError(t, s.Fire(1.0))
	for i := 0; i < 30; i++ {
		s.Step(0)
		env.Step()
	}
	require.Greater(t, s.Dendrites()[0].Bound(), 0.0)
}

func TestChemicalSynapse_SetEnzymeConcentrationAffectsMetabolism(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.EnzymeConcentration = 0
	s, err := NewChemicalSynapse(env, cfg, stochastic.New(9))
	require.NoError(t, err)
	env.MarkStarted()

	s.SetEnzymeConcentration(5.0)
	env.Step() // enzyme write visible next tick
	require.NoError(t, s.Fire(1.0))
	var sawActivity bool
	for i := 0; i < 30; i++ {
		s.Step(0)
		env.Step()
		if !s.Stable() {
			sawActivity = true
		}
	}
	// A live enzyme pool plus a fired vesicle release must move the cleft
	// out of its stable resting state at least once.
	require.True(t, sawActivity)
}
