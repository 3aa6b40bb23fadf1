package molecule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_MetabRateInRange(t *testing.T) {
	for _, m := range Molecules {
		require.Greater(t, m.MetabRate, 0.0)
		require.LessOrEqual(t, m.MetabRate, 1.0)
	}
}

func TestReceptor_AffinityNativeAndForeign(t *testing.T) {
	ampa := Receptors[AMPA]
	require.Equal(t, ampa.NativeAffinity, ampa.Affinity(Glutamate))
	require.Equal(t, 0.0, ampa.Affinity(GABA))
}

func TestTransporter_AffinityNativeIsFull(t *testing.T) {
	vglut := Transporters[VGLUT]
	require.Equal(t, 1.0, vglut.Affinity(Glutamate))
	require.Equal(t, 0.0, vglut.Affinity(GABA))
}

func TestWrongTransporterReceptorPair_Detectable(t *testing.T) {
	// A caller wiring a chemical synapse must be able to detect a
	// transporter/receptor pair that disagree on native molecule.
	tr := Transporters[GAT]
	rec := Receptors[AMPA]
	require.NotEqual(t, tr.NativeMolID, rec.NativeMolID)
}
