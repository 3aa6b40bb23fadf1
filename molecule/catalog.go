/*
=================================================================================
MOLECULE CATALOG - STATIC NEUROCHEMICAL TABLES
=================================================================================

A small, immutable catalog of the neurochemicals, enzymes, receptors, and
transporters the simulator knows about. There is no mutable global state
here: these are plain value tables computed once at package init and never
mutated, looked up by ID from components that each hold their own
Environment-backed state. Any process may read the catalog concurrently.
=================================================================================
*/
package molecule

import "sort"

// ID identifies a neurochemical species (e.g. glutamate, GABA).
type ID int

const (
	Glutamate ID = iota
	GABA
)

// EnzymeKind identifies a metabolic enzyme active in a cleft.
type EnzymeKind int

const (
	EnzymeGlutamate EnzymeKind = iota // e.g. glutamate dehydrogenase / EAAT-adjacent clearance
	EnzymeGABA                        // GABA transaminase
)

// ActivationKind determines how a dendrite's bound concentration is
// converted into a current contribution on its host neuron.
type ActivationKind int

const (
	EPSP ActivationKind = iota
	VoltageEPSP
	IPSP
)

// Molecule is a static record describing one neurochemical species.
type Molecule struct {
	ID        ID
	Name      string
	EnzymeID  EnzymeKind
	MetabRate float64 // in (0,1]; used as K_M = 1 - MetabRate in cleft metabolism
}

// Molecules is the static catalog of known neurochemicals, keyed by ID.
var Molecules = map[ID]Molecule{
	Glutamate: {ID: Glutamate, Name: "glutamate", EnzymeID: EnzymeGlutamate, MetabRate: 0.6},
	GABA:      {ID: GABA, Name: "GABA", EnzymeID: EnzymeGABA, MetabRate: 0.5},
}

// ReceptorID identifies a postsynaptic receptor type.
type ReceptorID int

const (
	AMPA ReceptorID = iota
	NMDA
	GABAA
)

// Receptor is a static record describing one receptor type's affinities.
// Affinity maps are keyed by the molecule ID they bind (native, agonist, or
// antagonist) and store an affinity in [0,1].
type Receptor struct {
	ID              ReceptorID
	Name            string
	NativeMolID     ID
	NativeAffinity  float64
	ActivationKind  ActivationKind
	AgonistAffinity map[ID]float64
	// AntagonistAffinity molecules compete for the binding site but do not
	// activate it; modeled here as affinity entries with zero efficacy
	// (efficacy is a concern of the binding math, not the catalog).
	AntagonistAffinity map[ID]float64
}

// Receptors is the static receptor catalog.
var Receptors = map[ReceptorID]Receptor{
	AMPA: {
		ID: AMPA, Name: "AMPA", NativeMolID: Glutamate, NativeAffinity: 0.9,
		ActivationKind:  EPSP,
		AgonistAffinity: map[ID]float64{Glutamate: 0.9},
	},
	NMDA: {
		ID: NMDA, Name: "NMDA", NativeMolID: Glutamate, NativeAffinity: 0.7,
		ActivationKind:  VoltageEPSP,
		AgonistAffinity: map[ID]float64{Glutamate: 0.7},
	},
	GABAA: {
		ID: GABAA, Name: "GABA-A", NativeMolID: GABA, NativeAffinity: 0.85,
		ActivationKind:  IPSP,
		AgonistAffinity: map[ID]float64{GABA: 0.85},
	},
}

// Molecules returns every molecule id this receptor has a nonzero affinity
// for: its native molecule first, then agonists/antagonists in id order,
// so callers walking the list consume stochastic draws deterministically.
func (r Receptor) Molecules() []ID {
	ids := []ID{r.NativeMolID}
	var rest []ID
	for id := range r.AgonistAffinity {
		if id != r.NativeMolID {
			rest = append(rest, id)
		}
	}
	for id := range r.AntagonistAffinity {
		rest = append(rest, id)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(ids, rest...)
}

// Affinity returns the receptor's affinity for mol, checking native,
// agonist, and antagonist entries in turn, or 0 if mol does not bind.
func (r Receptor) Affinity(mol ID) float64 {
	if mol == r.NativeMolID {
		return r.NativeAffinity
	}
	if a, ok := r.AgonistAffinity[mol]; ok {
		return a
	}
	if a, ok := r.AntagonistAffinity[mol]; ok {
		return a
	}
	return 0
}

// TransporterID identifies a presynaptic reuptake transporter type.
type TransporterID int

const (
	VGLUT TransporterID = iota // vesicular glutamate transporter / EAAT reuptake
	GAT                        // GABA transporter
)

// Transporter is a static record describing one axon membrane transporter.
type Transporter struct {
	ID                     TransporterID
	Name                   string
	NativeMolID            ID
	ReuptakeInhibitorAffin map[ID]float64
}

// Transporters is the static transporter catalog.
var Transporters = map[TransporterID]Transporter{
	VGLUT: {ID: VGLUT, Name: "VGLUT", NativeMolID: Glutamate},
	GAT:   {ID: GAT, Name: "GAT", NativeMolID: GABA},
}

// Molecules returns every molecule id this transporter has a nonzero
// affinity for: its native molecule first, then reuptake inhibitors in id
// order.
func (tr Transporter) Molecules() []ID {
	ids := []ID{tr.NativeMolID}
	var rest []ID
	for id := range tr.ReuptakeInhibitorAffin {
		if id != tr.NativeMolID {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(ids, rest...)
}

// Affinity returns the transporter's affinity for mol: full affinity for its
// native molecule, a configured inhibitor affinity otherwise, or 0.
func (tr Transporter) Affinity(mol ID) float64 {
	if mol == tr.NativeMolID {
		return 1.0
	}
	if a, ok := tr.ReuptakeInhibitorAffin[mol]; ok {
		return a
	}
	return 0
}
