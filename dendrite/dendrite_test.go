package dendrite

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/molecule"
	"github.com/subchem/subchem/pool"
)

type fakeHost struct {
	ligand  float64
	voltage float64
}

func (f *fakeHost) ChangeLigandCurrent(delta float64) { f.ligand += delta }
func (f *fakeHost) Voltage() float64                  { return f.voltage }

func TestDendrite_EPSPActivation(t *testing.T) {
	env := environment.New()
	boundPool := pool.New(env, 2.0)
	d := New(molecule.Receptors[molecule.AMPA], 1.0, 0.5, boundPool)

	host := &fakeHost{voltage: -65}
	d.Activate(host)
	require.Equal(t, 1.0, host.ligand)
}

func TestDendrite_VoltageEPSPGatedByVoltage(t *testing.T) {
	env := environment.New()
	boundPool := pool.New(env, 3.0)
	d := New(molecule.Receptors[molecule.NMDA], 1.0, 1.0, boundPool)

	belowThreshold := &fakeHost{voltage: -65}
	d.Activate(belowThreshold)
	require.Equal(t, 0.0, belowThreshold.ligand, "NMDA-like receptor must stay silent below threshold")

	aboveThreshold := &fakeHost{voltage: -50}
	d.Activate(aboveThreshold)
	require.Equal(t, 3.0, aboveThreshold.ligand)
}

func TestDendrite_IPSPActivation(t *testing.T) {
	env := environment.New()
	boundPool := pool.New(env, 2.0)
	d := New(molecule.Receptors[molecule.GABAA], 1.0, 2.0, boundPool)

	host := &fakeHost{voltage: -65}
	d.Activate(host)
	require.Equal(t, -4.0, host.ligand)
}

func TestDendrite_SetBoundResetsToZero(t *testing.T) {
	env := environment.New()
	boundPool := pool.New(env, 5.0)
	d := New(molecule.Receptors[molecule.AMPA], 1.0, 1.0, boundPool)
	d.SetBound(0)
	env.Step()
	require.Equal(t, 0.0, d.Bound())
}
