/*
=================================================================================
STOCHASTIC SAMPLER - BETA-SHAPED AND ERLANG-SHAPED DRAWS
=================================================================================

The simulation has exactly two sources of randomness: a bounded "how much of
this quantity moves this tick" draw (Beta) used by axon release, axon
replenishment, and cleft metabolism, and a deterministic release-timing curve
(an Erlang(k=2) CDF increment stream) used to shape spike-triggered vesicle
release over several ticks after a single action potential.

Both are pure functions of a PRNG seeded once and consumed sequentially,
which is what makes a run reproducible for a fixed seed. The engine seeds
one root sampler and Forks an independent child off it for every synapse at
construction time: each child's draw sequence then depends only on its own
component's call sequence, never on which worker goroutine happened to run
first, so a parallel run draws exactly what a single-threaded run draws.

Beta draws are delegated to gonum's stat/distuv package rather than hand
rolled, matching the distributional-sampling style used for rate coding elsewhere
in computational neuroscience. When noise is exactly zero the draw collapses
to the distribution's mean, since the full sampler is expensive and the
zero-noise path is common in deterministic tests.
=================================================================================
*/
package stochastic

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const betaEpsilon = 1e-4

// erlangMinIncrement is the cutoff below which a release generator's next
// increment is considered exhausted.
const erlangMinIncrement = 1e-6

// Sampler is one sequentially-consumed PRNG stream. A Sampler is not safe
// for concurrent use; components that draw from worker goroutines must each
// own their own Fork rather than sharing one.
type Sampler struct {
	rng *rand.Rand
}

// New seeds a sampler deterministically. Two samplers created with the same
// seed and driven with the same call sequence produce identical draws.
func New(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(uint64(seed)))}
}

// Fork derives an independent sampler whose seed is drawn from this
// sampler's stream. Forking during (single-threaded) graph construction
// gives every synapse its own deterministic stream, decoupled from worker
// scheduling.
func (s *Sampler) Fork() *Sampler {
	return New(int64(s.rng.Uint64()))
}

// Beta returns a draw in [0, maximum] shaped by noise and rate:
//
//	ratio = 1/(eps+rate), a = 1 + 100*(1-noise), b = ratio*a
//	return maximum * Beta(a,b)
//
// rate and noise must be >= 0; values outside that range are clamped rather
// than rejected since this runs on the per-tick hot path and must always
// make progress.
func (s *Sampler) Beta(maximum, noise, rate float64) float64 {
	if rate < 0 {
		rate = 0
	}
	if noise < 0 {
		noise = 0
	}
	if noise > 1 {
		noise = 1
	}
	if maximum <= 0 {
		return 0
	}

	ratio := 1.0 / (betaEpsilon + rate)
	a := 1 + 100*(1-noise)
	b := ratio * a

	var draw float64
	if noise == 0 {
		// Closed-form envelope: the distribution's mean, a/(a+b).
		draw = a / (a + b)
	} else {
		dist := distuv.Beta{Alpha: a, Beta: b, Src: s.rng}
		draw = dist.Rand()
	}
	if math.IsNaN(draw) || math.IsInf(draw, 0) {
		draw = 0
	}
	return maximum * clamp01(draw)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ReleaseGenerator is an explicit small-state iterator over a vesicle
// release curve. It yields successive non-negative increments of the
// Erlang(k=2) CDF
// evaluated at x/scale for x = 1, 2, ..., terminating (Done() == true) at
// the first increment below erlangMinIncrement that follows a non-zero
// prefix. Dividing by scale (rather than multiplying) is what makes a
// larger scale stretch the curve out and push its peak increment later.
type ReleaseGenerator struct {
	scale     float64
	x         int
	prevCDF   float64
	fired     bool // true once a non-negligible increment has been produced
	exhausted bool
}

// NewReleaseGenerator starts a fresh Erlang(k=2) release curve with the
// given time scale. Larger scale pushes the peak increment later.
func NewReleaseGenerator(scale float64) *ReleaseGenerator {
	if scale <= 0 {
		scale = 1e-9
	}
	return &ReleaseGenerator{scale: scale}
}

// erlang2CDF is the CDF of an Erlang distribution with shape k=2 and rate 1,
// evaluated at t: F(t) = 1 - e^-t*(1+t).
func erlang2CDF(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return 1 - math.Exp(-t)*(1+t)
}

// Next returns the generator's next increment and whether the generator is
// now exhausted. Once exhausted, Next always returns (0, true).
func (g *ReleaseGenerator) Next() (float64, bool) {
	if g.exhausted {
		return 0, true
	}
	g.x++
	cdf := erlang2CDF(float64(g.x) / g.scale)
	delta := cdf - g.prevCDF
	g.prevCDF = cdf
	if delta < 0 {
		delta = 0
	}

	if delta >= erlangMinIncrement {
		g.fired = true
	} else if g.fired {
		g.exhausted = true
		return 0, true
	}
	return delta, false
}

// Done reports whether the generator has been exhausted by a prior Next call.
func (g *ReleaseGenerator) Done() bool {
	return g.exhausted
}
