/*
=================================================================================
NEURON - CURRENT FUSION AND SOMA DRIVER
=================================================================================

A Neuron aggregates one Soma, its incoming dendrites (owned by upstream
ChemicalSynapses), its outgoing synapses, and its gap-junction edges, and
fuses them into the single applied current its soma integrates each tick.

Cyclic references between neurons (gap junctions) and between neurons and
synapses are kept out of the Go pointer graph with an arena/index model: a
gap junction names its peer by ID and reads its voltage through a Registry
the engine provides, rather
than holding a pointer to the peer Neuron directly. This mirrors the
Environment's own ID-indirection discipline (environment.ID never a raw
pointer) one level up, and keeps this package import-free of the engine
package that owns the neuron table.

ExternalCurrent is the one field a Driver (or the host application, between
ticks) may write from outside the owning worker; it is stored as a bit
pattern in an atomic.Uint64, the common Go idiom for a lock-free float64
when the standard library has no atomic.Float64.
=================================================================================
*/
package neuron

import (
	"math"
	"sync/atomic"

	"github.com/subchem/subchem/dendrite"
	"github.com/subchem/subchem/soma"
)

// ID identifies a neuron within an engine-owned neuron table.
type ID int

// Registry resolves a neuron ID to its previous-tick soma voltage, used by
// gap junctions to read a peer without holding a pointer to it.
type Registry interface {
	Voltage(id ID) float64
}

// Kind selects a neuron's behavioral class. Only GANGLION neurons are
// spiking; the rest are graded.
type Kind int

const (
	Photoreceptor Kind = iota
	Horizontal
	Bipolar
	Amacrine
	Ganglion
)

// Spiking reports whether this kind fires all-or-nothing action potentials.
func (k Kind) Spiking() bool { return k == Ganglion }

// AxonThreshold returns the presynaptic voltage a neuron of this kind must
// exceed before its outgoing synapses release. Graded kinds have no
// threshold and always release.
func (k Kind) AxonThreshold() float64 {
	if k == Ganglion {
		return -55.0
	}
	return math.Inf(-1)
}

// OutSynapse is the contract a ChemicalSynapse or SimpleSynapse satisfies
// to be driven by a presynaptic Neuron each tick.
type OutSynapse interface {
	Step(somaVoltage float64)
	Stable() bool
}

// Firer is the optional spike-release side of an OutSynapse: a spiking
// presynaptic neuron calls Fire once per upward crossing of its axon
// threshold, spawning a fresh vesicle release generator.
type Firer interface {
	Fire(strength float64) error
}

// GapJunction is an undirected conductance edge naming its peer by ID;
// neither endpoint owns the edge.
type GapJunction struct {
	Peer        ID
	Conductance float64
}

// atomicFloat64 is a lock-free float64 box, the idiom this module uses
// everywhere an atomic scalar is needed but sync/atomic has no float type.
type atomicFloat64 struct{ bits atomic.Uint64 }

func (f *atomicFloat64) Load() float64 { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat64) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// Neuron is the aggregate described above.
type Neuron struct {
	id   ID
	Soma soma.Soma
	Kind Kind

	baseCurrent     float64
	ligandCurrent   float64
	gapCurrent      float64
	externalCurrent atomicFloat64
	prevTotal       float64
	prevVoltage     float64

	dendrites    []*dendrite.Dendrite
	outSynapses  []OutSynapse
	gapJunctions []GapJunction

	stable bool
	probe  func(adjustedVoltage float64)
}

// New creates a Neuron with the given soma and base current, initially
// unstable so its first tick always runs.
func New(id ID, s soma.Soma, kind Kind, baseCurrent float64) *Neuron {
	return &Neuron{id: id, Soma: s, Kind: kind, baseCurrent: baseCurrent, prevVoltage: s.Voltage()}
}

// ID returns this neuron's engine-assigned identifier.
func (n *Neuron) ID() ID { return n.id }

// Voltage satisfies dendrite.CurrentSink: it returns the previous-tick soma
// voltage.
func (n *Neuron) Voltage() float64 { return n.Soma.Voltage() }

// ChangeLigandCurrent satisfies dendrite.CurrentSink: called by each
// incoming dendrite's Activate during the ligand-current accumulation pass.
func (n *Neuron) ChangeLigandCurrent(delta float64) { n.ligandCurrent += delta }

// Stable reports whether the neuron's last tick left its applied current
// and soma both unchanged.
func (n *Neuron) Stable() bool { return n.stable }

// AddDendrite registers an incoming dendrite whose Activate call
// contributes to this neuron's ligand current each tick.
func (n *Neuron) AddDendrite(d *dendrite.Dendrite) {
	n.dendrites = append(n.dendrites, d)
}

// AddOutSynapse registers an outgoing synapse driven by this neuron's soma
// voltage each tick (subject to axon-threshold gating).
func (n *Neuron) AddOutSynapse(s OutSynapse) {
	n.outSynapses = append(n.outSynapses, s)
}

// AddGapJunction registers a symmetric conductance edge to peer. The
// caller is responsible for adding the mirrored edge on peer itself.
func (n *Neuron) AddGapJunction(peer ID, conductance float64) {
	n.gapJunctions = append(n.gapJunctions, GapJunction{Peer: peer, Conductance: conductance})
}

// SetExternalCurrent is the lock-free write path a Driver uses to inject
// current from outside the worker owning this neuron.
func (n *Neuron) SetExternalCurrent(v float64) { n.externalCurrent.Store(v) }

// AttachProbe registers a callback invoked with this neuron's adjusted
// voltage at the end of every Step.
func (n *Neuron) AttachProbe(fn func(adjustedVoltage float64)) { n.probe = fn }

// Step runs one full tick of current fusion and soma integration:
//  1. read the soma's previous voltage,
//  2. sum gap-junction current against registry-resolved peer voltages,
//  3. zero and re-accumulate ligand current from every incoming dendrite,
//  4. fuse base + gap + ligand + external current,
//  5. if the fused current is unchanged from last tick and everything was
//     already stable, short-circuit without touching the soma; otherwise
//     fire any spike-release synapses on an upward axon-threshold crossing,
//     step every outgoing synapse, then step the soma.
//
// The axon threshold gates release, not the synapse step itself: a
// synapse's replenishment and cleft chemistry keep running while the soma
// sits below threshold. Spiking kinds trigger release through Fire on the
// crossing; graded kinds release continuously through the synapse's own
// voltage ramp.
func (n *Neuron) Step(registry Registry) {
	somaV := n.Soma.Voltage()

	n.gapCurrent = 0
	for _, gj := range n.gapJunctions {
		n.gapCurrent += gj.Conductance * (registry.Voltage(gj.Peer) - somaV)
	}

	n.ligandCurrent = 0
	for _, d := range n.dendrites {
		d.Activate(n)
	}

	total := n.baseCurrent + n.gapCurrent + n.ligandCurrent + n.externalCurrent.Load()
	if math.Abs(total-n.prevTotal) > 1e-6 {
		n.stable = false
	}
	n.prevTotal = total

	if !n.stable {
		threshold := n.Kind.AxonThreshold()
		if n.Kind.Spiking() && somaV > threshold && n.prevVoltage <= threshold {
			for _, s := range n.outSynapses {
				if f, ok := s.(Firer); ok {
					f.Fire(1.0)
				}
			}
		}
		synStable := true
		for _, s := range n.outSynapses {
			s.Step(somaV)
			if !s.Stable() {
				synStable = false
			}
		}
		n.stable = n.Soma.Step(total) && synStable
	}
	n.prevVoltage = somaV
	if n.probe != nil {
		n.probe(n.Soma.AdjustedVoltage())
	}
}
