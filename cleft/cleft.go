/*
=================================================================================
SYNAPTIC CLEFT - METABOLISM AND COMPETITIVE PROTEIN BINDING
=================================================================================

The cleft is the buffered intermediate between an axon's release and a
dendrite's activation. Each tick it runs exactly two phases:

  1. Metabolize: every active molecule's pool is reduced by an
     enzyme-driven, Michaelis-Menten-shaped destruction term. A cleft with
     a single active molecule ("simple mode") and one
     with several ("complex mode") run the identical code path -- the
     competitive terms below degenerate naturally to 1 when there is only
     one molecule or one protein, so there is no special-casing.

  2. Bind: molecules and proteins (the axon's transporter, and every
     dendrite's receptor) compete for each other, weighted by affinity.
     The axon transporter always gets first claim on its native molecule
     before any dendrite receptor of the same molecule, so
     reuptake "wins" residual allocation races within a tick.

Dendrite binding is occupancy, not transfer: every bound amount is
recomputed from scratch each tick (the previous tick's value is cleared
before the competitive loop), and the molecules a receptor binds stay in
the cleft pool. Only reuptake and metabolism actually remove molecules
from the cleft, which is what keeps the cleft+axon mass budget exact.

Concentrations here are never directly mutated mid-bind through the
Environment (whose Get only ever sees the previous tick's snapshot) --
Bind keeps a local working copy of each molecule's live concentration,
depletes it by what reuptake consumes in the required order, and only
writes the net change back to the Environment once per molecule at the
end. This keeps the Environment's own "prev read-only within a tick"
contract intact while still giving Bind the sequential, order-sensitive
depletion the competitive model needs.
=================================================================================
*/
package cleft

import (
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/dendrite"
	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/pool"
	"github.com/subchem/subchem/stochastic"
)

// protein is the tagged variant "Protein ∈ {Receptor, Transporter}",
// expressed as a small interface over the two
// concrete membrane types rather than a sum type, since Go has no sum
// types and an interface over two adapters reads more naturally here.
type protein interface {
	molecules() []molecule.ID
	affinity(m molecule.ID) float64
	available(m molecule.ID) float64
	// accept hands delta to this protein's membrane and returns the amount
	// consumed from the cleft pool. Reuptake moves molecules into the axon
	// and consumes them; receptor binding is occupancy over molecules that
	// stay in the cleft, so it consumes nothing.
	accept(m molecule.ID, delta float64) float64
}

type transporterProtein struct{ a *axon.Axon }

func (t transporterProtein) molecules() []molecule.ID { return t.a.Transporter().Molecules() }
func (t transporterProtein) affinity(m molecule.ID) float64 {
	return t.a.Transporter().Affinity(m)
}
func (t transporterProtein) available(m molecule.ID) float64 {
	if m == t.a.NativeMolID() {
		headroom := t.a.Capacity() - t.a.Concentration()
		if headroom < 0 {
			headroom = 0
		}
		return min(t.a.Density(), headroom)
	}
	return t.a.Density()
}
func (t transporterProtein) accept(m molecule.ID, delta float64) float64 {
	if m == t.a.NativeMolID() {
		return t.a.Reuptake(delta)
	}
	// Reuptake inhibitors occupy the transporter without being moved.
	return 0
}

type receptorProtein struct{ d *dendrite.Dendrite }

func (r receptorProtein) molecules() []molecule.ID          { return r.d.Receptor.Molecules() }
func (r receptorProtein) affinity(m molecule.ID) float64    { return r.d.Receptor.Affinity(m) }
func (r receptorProtein) available(m molecule.ID) float64   { return r.d.Density }
func (r receptorProtein) accept(m molecule.ID, delta float64) float64 {
	// Antagonists occupy the receptor without activating it, so only the
	// native molecule and agonists count toward the activating bound amount.
	if _, antagonist := r.d.Receptor.AntagonistAffinity[m]; antagonist && m != r.d.Receptor.NativeMolID {
		return 0
	}
	r.d.Bind(delta)
	return 0
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Mode distinguishes a cleft tracking exactly one active molecule from one
// tracking several; both run the same code (see file doc comment).
type Mode int

const (
	ModeSimple Mode = iota
	ModeComplex
)

// Cleft is the SynapticCleft described above.
type Cleft struct {
	mode      Mode
	pools     *pool.Cluster
	enzymes   map[molecule.EnzymeKind]pool.Pool
	axonProt  *transporterProtein
	dendrites []*dendrite.Dendrite
	stable    bool
}

// New creates a Cleft tracking the given active molecules, backed by pools
// registered in the same environment as the rest of the synapse. enzymes
// maps each relevant enzyme kind to its own pool (so enzyme concentration
// is itself a recordable, double-buffered scalar).
func New(mode Mode, pools *pool.Cluster, enzymes map[molecule.EnzymeKind]pool.Pool) *Cleft {
	return &Cleft{mode: mode, pools: pools, enzymes: enzymes, stable: true}
}

// SetAxon wires the cleft's presynaptic transporter protein. Must be called
// before the first Step.
func (c *Cleft) SetAxon(a *axon.Axon) {
	c.axonProt = &transporterProtein{a: a}
}

// AddDendrite registers a postsynaptic receptor membrane that participates
// in this cleft's competitive binding.
func (c *Cleft) AddDendrite(d *dendrite.Dendrite) {
	c.dendrites = append(c.dendrites, d)
}

// Stable reports whether the most recent Step was a no-op.
func (c *Cleft) Stable() bool { return c.stable }

// Pool returns the pool registered for mol, if this cleft tracks it.
func (c *Cleft) Pool(mol molecule.ID) (pool.Pool, bool) { return c.pools.Pool(mol) }

// SetEnzymeConcentration overwrites the concentration of the enzyme pool
// backing kind, if this cleft has one.
func (c *Cleft) SetEnzymeConcentration(kind molecule.EnzymeKind, v float64) {
	if p, ok := c.enzymes[kind]; ok {
		p.Set(v)
	}
}

// Step runs metabolism then binding and returns whether the cleft was
// stable (both phases were no-ops).
func (c *Cleft) Step(sampler *stochastic.Sampler) bool {
	metabStable := c.metabolize(sampler)
	bindStable := c.bind()
	c.stable = metabStable && bindStable
	return c.stable
}

func (c *Cleft) metabolize(sampler *stochastic.Sampler) bool {
	stable := true
	for _, molID := range c.pools.Molecules() {
		p, _ := c.pools.Pool(molID)
		m := p.Get()
		if m <= 0 {
			continue
		}
		mol := molecule.Molecules[molID]
		e := 0.0
		if ep, ok := c.enzymes[mol.EnzymeID]; ok {
			e = ep.Get()
		}
		if e <= 0 {
			continue
		}
		var destroyed float64
		if m < 1e-4 {
			destroyed = m
		} else {
			kM := 1 - mol.MetabRate
			v0 := e * m / (m + kM)
			destroyed = sampler.Beta(v0, 1.0, 10)
		}
		if destroyed > 0 {
			p.Remove(destroyed)
			stable = false
		}
	}
	return stable
}

func (c *Cleft) proteins() []protein {
	proteins := make([]protein, 0, len(c.dendrites)+1)
	if c.axonProt != nil {
		proteins = append(proteins, *c.axonProt)
	}
	for _, d := range c.dendrites {
		proteins = append(proteins, receptorProtein{d: d})
	}
	return proteins
}

func (c *Cleft) bind() bool {
	proteins := c.proteins()
	molIDs := c.pools.Molecules()
	if len(proteins) == 0 || len(molIDs) == 0 {
		return true
	}

	// Rebinding recomputes every dendrite's occupancy from scratch: clear
	// the previous tick's bound amount before accumulating this tick's.
	stable := true
	for _, d := range c.dendrites {
		if d.Bound() != 0 {
			d.SetBound(0)
			stable = false
		}
	}

	live := make(map[molecule.ID]float64, len(molIDs))
	original := make(map[molecule.ID]float64, len(molIDs))
	for _, m := range molIDs {
		p, _ := c.pools.Pool(m)
		v := p.Get()
		live[m] = v
		original[m] = v
	}

	// Prepared sums, fixed for the whole bind pass.
	molProteins := make(map[molecule.ID]float64) // mol -> sum over proteins of available*affinity
	proteinMols := make(map[protein]float64)      // protein -> sum over molecules of conc*affinity
	for _, pr := range proteins {
		for _, m := range pr.molecules() {
			if _, active := live[m]; !active {
				continue
			}
			aff := pr.affinity(m)
			if aff <= 0 {
				continue
			}
			molProteins[m] += pr.available(m) * aff
			proteinMols[pr] += original[m] * aff
		}
	}

	for _, pr := range proteins {
		for _, m := range pr.molecules() {
			conc, active := live[m]
			if !active || conc <= 0 {
				continue
			}
			aff := pr.affinity(m)
			if aff <= 0 {
				continue
			}

			pc := pr.available(m) * aff
			if pc <= 0 {
				continue
			}

			protMolsDenom := proteinMols[pr]
			molProtDenom := molProteins[m]
			if protMolsDenom <= 0 || molProtDenom <= 0 {
				continue
			}

			fMol := aff * conc / protMolsDenom
			fProtein := pc / molProtDenom
			k := 1 - fMol*fProtein
			bound := pc * conc * conc / (conc + k)
			if bound > conc {
				bound = conc
			}
			if bound <= 0 {
				continue
			}

			consumed := pr.accept(m, bound)
			if consumed > 0 {
				live[m] -= consumed
			}
			stable = false
		}
	}

	for _, m := range molIDs {
		consumed := original[m] - live[m]
		if consumed > 0 {
			p, _ := c.pools.Pool(m)
			p.Remove(consumed)
		}
	}
	return stable
}
