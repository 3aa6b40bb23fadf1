package soma

import (
	"math"

	"github.com/subchem/subchem/environment"
)

// IzhParams is the (a, b, c, d) parameter tuple for one Izhikevich neuron
// behavior class, per the standard 2003 parameter table.
type IzhParams struct {
	A, B, C, D float64
}

// Izhikevich preset identifiers, the standard named behavior classes of
// the 2003 parameter table.
const (
	IzhDefault         = "DEFAULT"
	IzhRegular         = "REGULAR"
	IzhBursting        = "BURSTING"
	IzhChattering      = "CHATTERING"
	IzhFast            = "FAST"
	IzhLowThreshold    = "LOW_THRESHOLD"
	IzhThalamoCortical = "THALAMO_CORTICAL"
	IzhResonator       = "RESONATOR"
	IzhPhotoreceptor   = "PHOTORECEPTOR"
	IzhHorizontal      = "HORIZONTAL"
)

// IzhPresets is the static table of named parameter sets. The graded
// retinal classes (PHOTORECEPTOR, HORIZONTAL) zero out the recovery
// variable's dynamics and rest far below the spiking presets.
var IzhPresets = map[string]IzhParams{
	IzhDefault:         {A: 0.02, B: 0.2, C: -65, D: 2},
	IzhRegular:         {A: 0.02, B: 0.2, C: -65, D: 8},
	IzhBursting:        {A: 0.02, B: 0.2, C: -55, D: 4},
	IzhChattering:      {A: 0.02, B: 0.2, C: -50, D: 2},
	IzhFast:            {A: 0.1, B: 0.2, C: -65, D: 2},
	IzhLowThreshold:    {A: 0.02, B: 0.25, C: -65, D: 2},
	IzhThalamoCortical: {A: 0.02, B: 0.25, C: -65, D: 0.05},
	IzhResonator:       {A: 0.1, B: 0.26, C: -65, D: 2},
	IzhPhotoreceptor:   {A: 0, B: 0, C: -82.6, D: 0},
	IzhHorizontal:      {A: 0, B: 0, C: -82.6, D: 0},
}

const (
	izhResolution = 100
	izhRestingV   = -70.0
	izhSpikeV     = 30.0
)

// Izhikevich is an Izhikevich soma: a quadratic voltage equation coupled to a
// linear recovery variable u, reset on every spike crossing izhSpikeV.
type Izhikevich struct {
	env *environment.Environment
	vID environment.ID

	u      float64
	params IzhParams

	resolution int
	fired      bool
}

// NewIzhikevich creates an Izhikevich soma using the named preset, or
// IzhDefault if name is unrecognized.
func NewIzhikevich(env *environment.Environment, name string, resolution int) *Izhikevich {
	params, ok := IzhPresets[name]
	if !ok {
		params = IzhPresets[IzhDefault]
	}
	if resolution <= 0 {
		resolution = izhResolution
	}
	s := &Izhikevich{
		env: env, vID: env.Register(izhRestingV),
		params: params, resolution: resolution,
	}
	s.u = params.B * izhRestingV
	return s
}

func (s *Izhikevich) Voltage() float64          { return s.env.Get(s.vID) }
func (s *Izhikevich) AdjustedVoltage() float64  { return s.Voltage() / 100.0 }
func (s *Izhikevich) VoltageID() environment.ID { return s.vID }
func (s *Izhikevich) Fired() bool               { return s.fired }

func (s *Izhikevich) Reset() {
	s.env.Set(s.vID, izhRestingV)
	s.u = s.params.B * izhRestingV
	s.fired = false
}

// Step advances the soma by izhResolution forward-Euler sub-steps, breaking
// the sub-loop the instant v crosses izhSpikeV, and reports whether no
// spike occurred and the drive was negligible.
//
// A spike is published as one full tick clamped at izhSpikeV, so spike
// counters and downstream synapses reading the environment actually see the
// +30mV crossing; the reset to c and the recovery jump u += d happen at the
// top of the following step. The sub-loop only advances v; u is updated
// exactly once per outer step, after the sub-loop exits, against the final
// v. Updating u every sub-step instead (scaled by dt) diverges
// substantially whenever a spike occurs mid-tick, since u would then recover against 100
// stale intermediate v values instead of the one that actually mattered.
func (s *Izhikevich) Step(current float64) bool {
	dt := 1.0 / float64(s.resolution)
	v := s.Voltage()
	u := s.u
	fired := false

	if v >= izhSpikeV {
		v = s.params.C
		u += s.params.D
	}

	for i := 0; i < s.resolution; i++ {
		dv := 0.04*v*v + 5*v + 140 - u + current
		v += dt * dv
		if v >= izhSpikeV {
			v = izhSpikeV
			fired = true
			break
		}
	}
	u += s.params.A * (s.params.B*v - u)

	s.u = u
	s.fired = fired
	s.env.Set(s.vID, v)
	return !fired && math.Abs(current) < 1e-9
}
