/*
=================================================================================
SYNAPSE CONFIG - BUILDER FOR CHEMICAL AND SIMPLE SYNAPSES
=================================================================================

SynapseConfig is a single enumerated builder struct: every field a
ChemicalSynapse or SimpleSynapse needs, with package-
level defaults applied by Validate to ReleaseMultiple, ReleaseTimeFactor
and ActiveMolecules when left zero-valued (every other field is validated
as given, so e.g. a zero Capacity is rejected), and a TOML
loader (BurntSushi/toml, the same library the rest of this module uses for
engine configuration) for experiments that want to describe a synapse
population declaratively instead of in Go source.
=================================================================================
*/
package synapse

import (
	"errors"

	"github.com/BurntSushi/toml"
	"github.com/subchem/subchem/axon"
	"github.com/subchem/subchem/molecule"
)

// Error taxonomy.
var (
	// ErrWrongTransporterReceptorPair is returned when a chemical synapse is
	// constructed from a transporter and receptor with different native
	// molecules.
	ErrWrongTransporterReceptorPair = errors.New("synapse: transporter and receptor native molecules differ")
	// ErrInvalidParameter covers every other constructor-time validation
	// failure: densities/strengths out of range, negative rates or
	// capacities, negative enzyme concentration.
	ErrInvalidParameter = errors.New("synapse: invalid parameter")
)

// SynapseConfig bundles every construction-time parameter for both synapse
// variants.
type SynapseConfig struct {
	Transporter molecule.Transporter
	Receptor    molecule.Receptor

	EnzymeConcentration float64
	AxonDelayTicks      int
	DendriteStrength    float64
	DendriteDensity     float64
	ReplenishRate       float64
	ReuptakeRate        float64
	Capacity            float64
	ReleaseMultiple     float64 // beta rate parameter for release draws, default 10.0
	ReleaseTimeFactor   float64 // ReleaseGenerator time scale, default 1.0

	Mode       axon.Mode
	VMin, VMax float64 // graded-mode voltage window; ignored in ModeSpike

	// ActiveMolecules optionally widens the cleft beyond the transporter's
	// native molecule, e.g. to model a reuptake-inhibitor competing for the
	// same binding sites. Defaults to {Transporter.NativeMolID}.
	ActiveMolecules []molecule.ID
}

// LoadSynapseConfig reads a SynapseConfig from a TOML file, e.g. for an
// experiment that wants to describe synapse populations declaratively.
func LoadSynapseConfig(path string) (SynapseConfig, error) {
	var cfg SynapseConfig
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// Validate applies defaults and checks every InvalidParameter and
// WrongTransporterReceptorPair invariant.
func (cfg *SynapseConfig) Validate() error {
	if cfg.Transporter.NativeMolID != cfg.Receptor.NativeMolID {
		return ErrWrongTransporterReceptorPair
	}
	if cfg.EnzymeConcentration < 0 {
		return ErrInvalidParameter
	}
	if cfg.DendriteDensity < 0 || cfg.DendriteDensity > 1 {
		return ErrInvalidParameter
	}
	if cfg.DendriteStrength <= 0 {
		return ErrInvalidParameter
	}
	if cfg.ReplenishRate < 0 || cfg.ReplenishRate > 1 {
		return ErrInvalidParameter
	}
	if cfg.ReuptakeRate < 0 || cfg.ReuptakeRate > 1 {
		return ErrInvalidParameter
	}
	if cfg.Capacity <= 0 {
		return ErrInvalidParameter
	}
	if cfg.AxonDelayTicks < 0 {
		return ErrInvalidParameter
	}
	if cfg.ReleaseMultiple <= 0 {
		cfg.ReleaseMultiple = 10.0
	}
	if cfg.ReleaseTimeFactor <= 0 {
		cfg.ReleaseTimeFactor = 1.0
	}
	if len(cfg.ActiveMolecules) == 0 {
		cfg.ActiveMolecules = []molecule.ID{cfg.Transporter.NativeMolID}
	}
	return nil
}
