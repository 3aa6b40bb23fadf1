package synapse

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/stochastic"
)

func TestSimpleSynapse_GradedReleaseScalesWithVoltage(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.Mode = axon.ModeGraded
	cfg.VMin, cfg.VMax = -70, -50
	s, err := NewSimpleSynapse(env, cfg, stochastic.New(3))
	require.NoError(t, err)
	env.MarkStarted()

	s.Step(-70) // at or below VMin: no release
	env.Step()
	require.Equal(t, 0.0, s.Dendrite().Bound())

	s.Step(-50) // at VMax: full release
	env.Step()
	require.Greater(t, s.Dendrite().Bound(), 0.0)
}

func TestSimpleSynapse_SpikeModeRequiresFire(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.Mode = axon.ModeSpike
	s, err := NewSimpleSynapse(env, cfg, stochastic.New(4))
	require.NoError(t, err)
	env.MarkStarted()

	s.Step(0)
	env.Step()
	require.Equal(t, 0.0, s.Dendrite().Bound())

	require.NoError(t, s.Fire(1.0))
	s.Step(0)
	env.Step()
	require.Greater(t, s.Dendrite().Bound(), 0.0)
}

func TestSimpleSynapse_DelayQueueDelaysRelease(t *testing.T) {
	env := environment.New()
	cfg := baseConfig()
	cfg.Mode = axon.ModeGraded
	cfg.VMin, cfg.VMax = -70, -50
	cfg.AxonDelayTicks = 3
	s, err := NewSimpleSynapse(env, cfg, stochastic.New(5))
	require.NoError(t, err)
	env.MarkStarted()

	s.Step(-50) // full-release voltage arrives immediately, but is delayed
	env.Step()
	require.Equal(t, 0.0, s.Dendrite().Bound())
}
