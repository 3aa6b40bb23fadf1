package soma

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchem/subchem/environment"
)

func TestHH_RestsAtRestingPotential(t *testing.T) {
	env := environment.New()
	s := NewHH(env, 0)
	env.MarkStarted()

	var stable bool
	for i := 0; i < 50; i++ {
		stable = s.Step(0)
		env.Step()
	}
	require.True(t, stable)
	require.InDelta(t, hhRestingV, s.Voltage(), 1.0)
}

func TestHH_DepolarizesUnderSustainedCurrent(t *testing.T) {
	env := environment.New()
	s := NewHH(env, 0)
	env.MarkStarted()

	// Sustained drive makes the soma spike and then dip into its
	// after-hyperpolarization, so the depolarization shows in the peak
	// voltage over the run rather than in the final tick's value.
	peak := s.Voltage()
	for i := 0; i < 5; i++ {
		s.Step(20)
		env.Step()
		if s.Voltage() > peak {
			peak = s.Voltage()
		}
	}
	require.Greater(t, peak, hhRestingV)
}

func TestHH_ResetReturnsToRestingState(t *testing.T) {
	env := environment.New()
	s := NewHH(env, 0)
	env.MarkStarted()

	for i := 0; i < 5; i++ {
		s.Step(20)
		env.Step()
	}
	s.Reset()
	env.Step()
	require.Equal(t, hhRestingV, s.Voltage())
}

func TestHH_AdjustedVoltageIsScaled(t *testing.T) {
	env := environment.New()
	s := NewHH(env, 0)
	env.MarkStarted()
	env.Step()
	require.InDelta(t, hhRestingV/100.0, s.AdjustedVoltage(), 1e-9)
}
