/*
=================================================================================
CHEMICAL SYNAPSE - AXON + CLEFT + DENDRITE PIPELINE
=================================================================================

A ChemicalSynapse owns exactly one Axon, one SynapticCleft, and one-or-more
Dendrites (the first receives activation; the rest are kept for multi-
receptor experiments). It is the full-fidelity synapse: every
tick runs the axon's release/replenish step, then the cleft's metabolize+
bind step, with the synapse's own stability the AND of both.
=================================================================================
*/
package synapse

import (
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/cleft"
	"github.com/subchem/subchem/dendrite"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/pool"
	"github.com/subchem/subchem/stochastic"
)

// ChemicalSynapse is the pipeline described above.
type ChemicalSynapse struct {
	axon      *axon.Axon
	cleft     *cleft.Cleft
	dendrites []*dendrite.Dendrite
	sampler   *stochastic.Sampler
	stable    bool
}

// NewChemicalSynapse validates cfg and wires a fresh Axon, Cleft, and
// Dendrite, all backed by scalars registered in env. sampler supplies every
// stochastic draw the pipeline makes; the engine passes each synapse its own
// Fork of the root sampler, so draws stay deterministic for a fixed seed.
func NewChemicalSynapse(env *environment.Environment, cfg SynapseConfig, sampler *stochastic.Sampler) (*ChemicalSynapse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := createCleft(env, cfg)
	a := createAxon(env, cfg)
	c.SetAxon(a)
	d := createDendrite(env, cfg)
	c.AddDendrite(d)

	return &ChemicalSynapse{axon: a, cleft: c, dendrites: []*dendrite.Dendrite{d}, sampler: sampler}, nil
}

// createAxon builds the presynaptic side from the shared config.
func createAxon(env *environment.Environment, cfg SynapseConfig) *axon.Axon {
	reserve := pool.New(env, cfg.Capacity)
	return axon.New(axon.Config{
		Transporter:       cfg.Transporter,
		Mode:              cfg.Mode,
		Capacity:          cfg.Capacity,
		Initial:           cfg.Capacity,
		ReplenishRate:     cfg.ReplenishRate,
		ReuptakeRate:      cfg.ReuptakeRate,
		ReleaseMultiple:   cfg.ReleaseMultiple,
		ReleaseTimeFactor: cfg.ReleaseTimeFactor,
		VMin:              cfg.VMin,
		VMax:              cfg.VMax,
		DelayTicks:        cfg.AxonDelayTicks,
	}, reserve)
}

// createDendrite builds the postsynaptic receptor membrane from the shared
// config.
func createDendrite(env *environment.Environment, cfg SynapseConfig) *dendrite.Dendrite {
	boundPool := pool.New(env, 0)
	return dendrite.New(cfg.Receptor, cfg.DendriteDensity, cfg.DendriteStrength, boundPool)
}

func createCleft(env *environment.Environment, cfg SynapseConfig) *cleft.Cleft {
	pools := pool.NewCluster(env)
	for _, m := range cfg.ActiveMolecules {
		pools.Register(m, 0)
	}
	mode := cleft.ModeSimple
	if len(cfg.ActiveMolecules) > 1 {
		mode = cleft.ModeComplex
	}
	enzymePool := pool.New(env, cfg.EnzymeConcentration)
	enzymes := map[molecule.EnzymeKind]pool.Pool{
		enzymeKindOf(cfg.Transporter): enzymePool,
	}
	return cleft.New(mode, pools, enzymes)
}

// enzymeKindOf returns the enzyme kind responsible for metabolizing a
// transporter's native molecule.
func enzymeKindOf(tr molecule.Transporter) molecule.EnzymeKind {
	return molecule.Molecules[tr.NativeMolID].EnzymeID
}

// Fire spawns a fresh vesicle release generator of the given strength,
// delegating to the underlying axon (ModeSpike only).
func (s *ChemicalSynapse) Fire(strength float64) error { return s.axon.Fire(strength) }

// SetEnzymeConcentration overwrites the cleft's enzyme pool.
func (s *ChemicalSynapse) SetEnzymeConcentration(v float64) {
	s.cleft.SetEnzymeConcentration(enzymeKindOf(s.axon.Transporter()), v)
}

// Dendrites exposes every postsynaptic dendrite this synapse drives, the
// first of which is the one a host Neuron should register for activation.
func (s *ChemicalSynapse) Dendrites() []*dendrite.Dendrite { return s.dendrites }

// Stable reports whether the last Step left both the axon and the cleft
// unchanged.
func (s *ChemicalSynapse) Stable() bool { return s.stable }

// Step satisfies neuron.OutSynapse: it runs axon.Step(somaVoltage) then
// cleft.Step(), with synapse stability the AND of both.
func (s *ChemicalSynapse) Step(somaVoltage float64) {
	v := somaVoltage
	nativePool, _ := s.cleft.Pool(s.axon.NativeMolID())
	s.axon.Step(&v, s.sampler, nativePool)
	cleftStable := s.cleft.Step(s.sampler)
	s.stable = s.axon.Stable() && cleftStable
}
