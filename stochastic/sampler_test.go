package stochastic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampler_BetaEnvelope(t *testing.T) {
	s := New(1)
	for _, rate := range []float64{0, 0.5, 1, 10, 100} {
		for _, noise := range []float64{0, 0.1, 0.5, 0.9, 1} {
			v := s.Beta(5.0, noise, rate)
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 5.0)
		}
	}
}

func TestSampler_BetaZeroMaximum(t *testing.T) {
	s := New(1)
	require.Equal(t, 0.0, s.Beta(0, 0.5, 1))
}

func TestSampler_BetaDeterministicWhenNoiseZero(t *testing.T) {
	s1 := New(42)
	s2 := New(7) // different seed, irrelevant when noise == 0
	require.Equal(t, s1.Beta(10, 0, 2), s2.Beta(10, 0, 2))
}

func TestSampler_BetaReproducibleForFixedSeed(t *testing.T) {
	s1 := New(99)
	s2 := New(99)
	for i := 0; i < 20; i++ {
		require.Equal(t, s1.Beta(1, 0.3, 4), s2.Beta(1, 0.3, 4))
	}
}

func TestReleaseGenerator_TerminatesAndNonNegative(t *testing.T) {
	g := NewReleaseGenerator(1.0)
	count := 0
	total := 0.0
	for {
		delta, done := g.Next()
		if done {
			break
		}
		require.GreaterOrEqual(t, delta, 0.0)
		total += delta
		count++
		require.Less(t, count, 10000, "generator should terminate")
	}
	require.True(t, g.Done())
	require.InDelta(t, 1.0, total, 0.05, "increments should sum close to the full CDF mass")
}

func TestReleaseGenerator_MonotonicPeakWithScale(t *testing.T) {
	peakIndex := func(scale float64) int {
		g := NewReleaseGenerator(scale)
		best, bestIdx, idx := -1.0, 0, 0
		for {
			delta, done := g.Next()
			if done {
				break
			}
			idx++
			if delta > best {
				best = delta
				bestIdx = idx
			}
		}
		return bestIdx
	}

	small := peakIndex(0.3)
	large := peakIndex(3.0)
	require.Greater(t, large, small, "increasing release_time_factor should push the peak later")
}
