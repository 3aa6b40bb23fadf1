package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/molecule"
)

func TestPool_AddAndRemove(t *testing.T) {
	env := environment.New()
	p := New(env, 5.0)
	p.Add(2.0)
	env.Step()
	require.Equal(t, 7.0, p.Get())

	p.Remove(100.0)
	env.Step()
	require.Equal(t, 0.0, p.Get(), "concentration must never go negative")
}

func TestCluster_TotalSumsAllPools(t *testing.T) {
	env := environment.New()
	c := NewCluster(env)
	c.Register(molecule.Glutamate, 3.0)
	c.Register(molecule.GABA, 4.0)

	require.Equal(t, 7.0, c.Total())
}

func TestCluster_PoolLookupMiss(t *testing.T) {
	env := environment.New()
	c := NewCluster(env)
	_, ok := c.Pool(molecule.GABA)
	require.False(t, ok)
}
