package synapse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSynapseConfig_ReadsScalarFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synapse.toml")
	contents := "Capacity = 25.0\nDendriteStrength = 10.0\nDendriteDensity = 0.4\nReplenishRate = 0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadSynapseConfig(path)
	require.NoError(t, err)
	require.Equal(t, 25.0, cfg.Capacity)
	require.Equal(t, 10.0, cfg.DendriteStrength)
	require.Equal(t, 0.4, cfg.DendriteDensity)
}

func TestSynapseConfig_ValidateRejectsNegativeEnzyme(t *testing.T) {
	cfg := baseConfig()
	cfg.EnzymeConcentration = -1
	require.ErrorIs(t, cfg.Validate(), ErrInvalidParameter)
}

func TestSynapseConfig_ValidateAppliesReleaseDefaults(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10.0, cfg.ReleaseMultiple)
	require.Equal(t, 1.0, cfg.ReleaseTimeFactor)
	require.Len(t, cfg.ActiveMolecules, 1)
}
