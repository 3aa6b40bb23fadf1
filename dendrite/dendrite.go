/*
=================================================================================
DENDRITE (RECEPTOR MEMBRANE) - POSTSYNAPTIC BOUND-MOLECULE STATE
=================================================================================

A Dendrite tracks how much neurotransmitter is currently bound to one
receptor type on the postsynaptic side of a chemical synapse, and knows how
to turn that into a current contribution on its host neuron. The bound
concentration itself is a single-writer/single-reader Environment scalar:
the owning SynapticCleft's binding step is the only writer, and the host
Neuron's current-fusion step is the only reader.

Activation dispatches on the receptor's ActivationKind:
  - EPSP:         always contributes +strength*bound when positive
  - VoltageEPSP:  same, but gated on the host's voltage exceeding -60 mV
                  (e.g. NMDA's magnesium-block voltage dependence)
  - IPSP:         contributes -strength*bound
=================================================================================
*/
package dendrite

import (
	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/pool"
)

// voltageEPSPThreshold is the membrane voltage (mV) above which a
// VoltageEPSP-kind receptor's binding can affect its host's current.
const voltageEPSPThreshold = -60.0

// CurrentSink is the minimal view of a host neuron a Dendrite needs in
// order to activate: somewhere to add/subtract ligand current, and a way
// to read the host's current voltage for voltage-gated receptor kinds.
type CurrentSink interface {
	ChangeLigandCurrent(delta float64)
	Voltage() float64
}

// Dendrite is the postsynaptic receptor membrane described above.
type Dendrite struct {
	Receptor molecule.Receptor
	Density  float64 // in [0,1]
	Strength float64 // > 0, scales activation magnitude

	bound pool.Pool
}

// New creates a Dendrite whose bound concentration is registered in env via
// the given pool.
func New(receptor molecule.Receptor, density, strength float64, bound pool.Pool) *Dendrite {
	return &Dendrite{Receptor: receptor, Density: density, Strength: strength, bound: bound}
}

// Bound returns the current bound concentration.
func (d *Dendrite) Bound() float64 { return d.bound.Get() }

// BoundPool exposes the backing pool so the cleft's binding step can write
// to it directly.
func (d *Dendrite) BoundPool() pool.Pool { return d.bound }

// Bind accumulates delta into this tick's bound concentration. The owning
// cleft clears the previous tick's value with SetBound(0) before its
// competitive loop, so successive Bind calls within one tick add up but
// occupancy never carries over between ticks.
func (d *Dendrite) Bind(delta float64) {
	d.bound.Add(delta)
}

// SetBound overwrites the bound concentration directly; the cleft uses it
// to clear occupancy at the start of every rebinding pass.
func (d *Dendrite) SetBound(v float64) {
	d.bound.Set(v)
}

// Activate dispatches on the receptor's activation kind and updates host's
// ligand current accordingly.
func (d *Dendrite) Activate(host CurrentSink) {
	bound := d.Bound()
	contribution := d.Strength * bound

	switch d.Receptor.ActivationKind {
	case molecule.EPSP:
		if contribution > 0 {
			host.ChangeLigandCurrent(contribution)
		}
	case molecule.VoltageEPSP:
		if contribution > 0 && host.Voltage() > voltageEPSPThreshold {
			host.ChangeLigandCurrent(contribution)
		}
	case molecule.IPSP:
		host.ChangeLigandCurrent(-contribution)
	}
}
