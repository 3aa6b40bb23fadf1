/*
=================================================================================
AXON (TRANSPORTER MEMBRANE) - PRESYNAPTIC VESICLE RESERVE
=================================================================================

Models the presynaptic side of a chemical synapse: a finite neurochemical
reserve (a Pool) that depletes on release and asymptotically refills toward
capacity, plus whichever release mode its owning ChemicalSynapse configured
it for:

  - Spike mode: each action potential (Fire) spawns a fresh ReleaseGenerator
    timed by cfg.ReleaseTimeFactor (held constant across spikes and
    independent of the spike's strength); every tick every live generator
    yields its next increment, and a Beta draw bounded by the summed
    increment (capped at the reserve) is transferred out. Generators that
    have run their course are dropped.

  - Graded mode: there is no discrete spike; release each tick is driven
    directly by the presynaptic voltage, linearly ramped between VMin and
    VMax.

Reuptake of the axon's own native molecule back out of the cleft is
deliberately not performed here -- it falls out of the cleft's competitive
binding step, which treats the axon as one more protein competing for
molecules. This axon only ever pushes concentration into the cleft and
pulls replenishment from its own capacity headroom.
=================================================================================
*/
package axon

import (
	"errors"

	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/pool"
	"github.com/subchem/subchem/stochastic"
)

// ErrInvalidStrength is returned by Fire when strength falls outside [0,1].
var ErrInvalidStrength = errors.New("axon: fire strength must be in [0,1]")

// Mode selects how an Axon computes its per-tick release fraction.
type Mode int

const (
	// ModeSpike releases via Fire-spawned ReleaseGenerators.
	ModeSpike Mode = iota
	// ModeGraded releases proportionally to presynaptic voltage.
	ModeGraded
)

// Config bundles the construction-time parameters for an Axon.
type Config struct {
	Transporter       molecule.Transporter // native molecule + reuptake-inhibitor affinities
	Mode              Mode
	Capacity          float64 // > 0
	Initial           float64 // seed concentration the caller registers the reserve pool with
	ReplenishRate     float64 // in [0,1]
	ReuptakeRate      float64 // "density" in [0,1]; used by cleft binding as transporter density
	ReleaseMultiple   float64 // beta's rate parameter for release draws (default 10)
	ReleaseTimeFactor float64 // ReleaseGenerator time scale (default 1)
	VMin, VMax        float64 // graded-mode voltage window (mV)
	DelayTicks        int     // optional voltage delay queue length; 0 disables it
}

// spikeRelease pairs one action potential's release generator with the
// spike's strength, which scales every increment the generator yields.
type spikeRelease struct {
	gen      *stochastic.ReleaseGenerator
	strength float64
}

// Axon is the presynaptic vesicle reserve + release generator state
// described above.
type Axon struct {
	cfg        Config
	reserve    pool.Pool
	generators []spikeRelease
	lastV      float64
	vQueue     []float64 // optional voltage delay line, length == cfg.DelayTicks
	stable     bool

	// pending accumulates this tick's reserve writes, which the previous-
	// tick snapshot the pool reads cannot see yet. Replenish, release, and
	// reuptake all share one tick, so capacity checks against the snapshot
	// alone could overshoot.
	pending float64
}

// New creates an Axon over an already-registered reserve pool.
func New(cfg Config, reserve pool.Pool) *Axon {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1
	}
	if cfg.ReleaseMultiple <= 0 {
		cfg.ReleaseMultiple = 10.0
	}
	if cfg.ReleaseTimeFactor <= 0 {
		cfg.ReleaseTimeFactor = 1.0
	}
	a := &Axon{cfg: cfg, reserve: reserve, lastV: cfg.VMin}
	if cfg.DelayTicks > 0 {
		a.vQueue = make([]float64, cfg.DelayTicks)
		for i := range a.vQueue {
			a.vQueue[i] = cfg.VMin
		}
	}
	return a
}

// Concentration returns the axon's current reserve concentration.
func (a *Axon) Concentration() float64 { return a.reserve.Get() }

// liveConcentration is the reserve including writes made earlier this tick.
func (a *Axon) liveConcentration() float64 { return a.reserve.Get() + a.pending }

// Capacity returns the axon's maximum reserve concentration.
func (a *Axon) Capacity() float64 { return a.cfg.Capacity }

// Density returns the axon's reuptake density, used by the cleft's
// competitive binding step to weigh this axon as a transporter protein.
func (a *Axon) Density() float64 { return a.cfg.ReuptakeRate }

// NativeMolID returns the molecule this axon releases and reuptakes.
func (a *Axon) NativeMolID() molecule.ID { return a.cfg.Transporter.NativeMolID }

// Transporter returns the catalog record backing this axon's reuptake
// affinities, used by the cleft's competitive binding step.
func (a *Axon) Transporter() molecule.Transporter { return a.cfg.Transporter }

// Reuptake deposits delta back into the axon's reserve, capped at Capacity,
// and returns the amount actually accepted so the caller can deplete its
// own pool by no more than what arrived. Called by the owning
// SynapticCleft's binding step when this axon wins a share of its native
// molecule still present in the cleft.
func (a *Axon) Reuptake(delta float64) float64 {
	if delta <= 0 {
		return 0
	}
	headroom := a.cfg.Capacity - a.liveConcentration()
	if headroom <= 0 {
		return 0
	}
	if delta > headroom {
		delta = headroom
	}
	a.reserve.Add(delta)
	a.pending += delta
	return delta
}

// Fire spawns a fresh release generator for a new action potential of the
// given strength in [0,1]. Only meaningful in ModeSpike. Strength scales the
// amount each increment releases; the generator's time scale is
// cfg.ReleaseTimeFactor regardless of strength, so release timing can be
// tuned independently of release magnitude.
func (a *Axon) Fire(strength float64) error {
	if strength < 0 || strength > 1 {
		return ErrInvalidStrength
	}
	a.generators = append(a.generators, spikeRelease{
		gen:      stochastic.NewReleaseGenerator(a.cfg.ReleaseTimeFactor),
		strength: strength,
	})
	return nil
}

// Step advances the axon by one tick: optionally runs the voltage delay
// queue, replenishes the reserve, and releases into cleftPool. voltage is
// the presynaptic soma voltage; in ModeSpike with no generators pending it
// is only used to keep the delay queue populated. When voltage is nil, the
// axon reuses the last voltage it was given.
func (a *Axon) Step(voltage *float64, sampler *stochastic.Sampler, cleftPool pool.Pool) {
	v := a.lastV
	if voltage != nil {
		v = *voltage
	}
	if a.vQueue != nil {
		a.vQueue = append(a.vQueue[1:], v)
		v = a.vQueue[0]
	}
	a.lastV = v

	a.pending = 0
	a.stable = true
	a.replenish(sampler)
	a.release(v, sampler, cleftPool)
}

// Stable reports whether the most recent Step neither replenished nor
// released anything, i.e. was a complete no-op.
func (a *Axon) Stable() bool { return a.stable }

func (a *Axon) replenish(sampler *stochastic.Sampler) {
	if a.cfg.ReplenishRate <= 0 {
		return
	}
	missing := a.cfg.Capacity - a.liveConcentration()
	if missing <= 0 {
		return
	}
	if missing < 1e-5 {
		a.reserve.Add(missing)
		a.pending += missing
		a.stable = false
		return
	}
	delta := sampler.Beta(missing, 1.0, a.cfg.ReplenishRate)
	if delta > 0 {
		a.reserve.Add(delta)
		a.pending += delta
		a.stable = false
	}
}

func (a *Axon) release(voltage float64, sampler *stochastic.Sampler, cleftPool pool.Pool) {
	var delta float64
	switch a.cfg.Mode {
	case ModeSpike:
		delta = a.spikeReleaseFraction()
	default:
		delta = clamp01(safeDiv(voltage-a.cfg.VMin, a.cfg.VMax-a.cfg.VMin))
	}
	if delta <= 0 {
		return
	}

	c := a.liveConcentration()
	transferred := sampler.Beta(delta, 1.0, a.cfg.ReleaseMultiple)
	if transferred > c {
		transferred = c
	}
	if transferred <= 0 {
		return
	}
	a.reserve.Remove(transferred)
	a.pending -= transferred
	cleftPool.Add(transferred)
	a.stable = false
}

// spikeReleaseFraction advances every live generator by one increment,
// drops exhausted ones, and returns the summed fraction for this tick.
func (a *Axon) spikeReleaseFraction() float64 {
	if len(a.generators) == 0 {
		return 0
	}
	total := 0.0
	live := a.generators[:0]
	for _, g := range a.generators {
		delta, done := g.gen.Next()
		total += g.strength * delta
		if !done {
			live = append(live, g)
		}
	}
	a.generators = live
	return clamp01(total)
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

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
