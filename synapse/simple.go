/*
=================================================================================
SIMPLE SYNAPSE - DELAY QUEUE + RELEASE CURVE, NO CLEFT CHEMISTRY
=================================================================================

SimpleSynapse is the reduced-fidelity fast path: it skips the
axon/cleft/enzyme pipeline entirely and instead broadcasts a single release
value through one Environment scalar each tick, using the identical spike-
generator / graded-voltage release law as the full Axon. It still owns a
real Dendrite so a host Neuron's incoming-dendrite loop can
treat it exactly like a ChemicalSynapse's output -- the receptor's
ActivationKind dispatch in dendrite.Activate doesn't care which pipeline
produced the bound value.
=================================================================================
*/
package synapse

import (
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/dendrite"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/pool"
	"github.com/subchem/subchem/stochastic"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SimpleSynapse is the reduced synapse described above.
type SimpleSynapse struct {
	release    pool.Pool // broadcast release-value scalar
	dendrite   *dendrite.Dendrite
	sampler    *stochastic.Sampler
	mode       axon.Mode
	vMin, vMax float64
	multiple   float64
	timeFactor float64
	delayQueue []float64
	generators []spikeRelease
	stable     bool
}

// spikeRelease pairs one spike's release generator with its strength,
// mirroring the full Axon's release bookkeeping.
type spikeRelease struct {
	gen      *stochastic.ReleaseGenerator
	strength float64
}

// NewSimpleSynapse creates a SimpleSynapse whose release scalar and
// dendrite bound-concentration scalar are both registered in env. cfg.Mode
// selects spike vs. graded release exactly as axon.Config.Mode does.
func NewSimpleSynapse(env *environment.Environment, cfg SynapseConfig, sampler *stochastic.Sampler) (*SimpleSynapse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &SimpleSynapse{
		release:    pool.New(env, 0),
		dendrite:   createDendrite(env, cfg),
		sampler:    sampler,
		mode:       cfg.Mode,
		vMin:       cfg.VMin,
		vMax:       cfg.VMax,
		multiple:   cfg.ReleaseMultiple,
		timeFactor: cfg.ReleaseTimeFactor,
	}
	if cfg.AxonDelayTicks > 0 {
		s.delayQueue = make([]float64, cfg.AxonDelayTicks)
		for i := range s.delayQueue {
			s.delayQueue[i] = cfg.VMin
		}
	}
	return s, nil
}

// Fire spawns a fresh release generator for a spike of the given strength
// in [0,1] (ModeSpike only), matching axon.Axon.Fire's contract.
func (s *SimpleSynapse) Fire(strength float64) error {
	if strength < 0 || strength > 1 {
		return axon.ErrInvalidStrength
	}
	s.generators = append(s.generators, spikeRelease{
		gen:      stochastic.NewReleaseGenerator(s.timeFactor),
		strength: strength,
	})
	return nil
}

// Dendrite exposes the postsynaptic receptor state this synapse drives.
func (s *SimpleSynapse) Dendrite() *dendrite.Dendrite { return s.dendrite }

// Stable reports whether the last Step left the broadcast release value
// unchanged.
func (s *SimpleSynapse) Stable() bool { return s.stable }

// Step satisfies neuron.OutSynapse: pops the delayed presynaptic voltage,
// computes this tick's release value by the same spike/graded law as
// Axon.release, and writes it directly into the dendrite's bound
// concentration.
func (s *SimpleSynapse) Step(somaVoltage float64) {
	v := somaVoltage
	if s.delayQueue != nil {
		s.delayQueue = append(s.delayQueue[1:], v)
		v = s.delayQueue[0]
	}

	var delta float64
	if s.mode == axon.ModeSpike {
		delta = s.spikeFraction()
	} else {
		span := s.vMax - s.vMin
		if span != 0 {
			delta = clamp01((v - s.vMin) / span)
		}
	}

	var value float64
	if delta > 0 {
		value = s.sampler.Beta(delta, 1.0, s.multiple)
	}

	before := s.release.Get()
	s.release.Set(value)
	s.dendrite.SetBound(value)
	s.stable = value == 0 && before == 0
}

func (s *SimpleSynapse) spikeFraction() float64 {
	if len(s.generators) == 0 {
		return 0
	}
	total := 0.0
	live := s.generators[:0]
	for _, g := range s.generators {
		d, done := g.gen.Next()
		total += g.strength * d
		if !done {
			live = append(live, g)
		}
	}
	s.generators = live
	return clamp01(total)
}
