/*
=================================================================================
POOL / POOL CLUSTER - ENVIRONMENT-BACKED CONCENTRATION VIEWS
=================================================================================

A Pool is nothing more than an (environment, id) pair with concentration
semantics layered on top: Add increases it, Remove decreases it but never
below zero (delegated straight to Environment.Remove, which is where the
non-negative-concentration invariant actually lives), and Get reads the
previous-tick value. A PoolCluster is a small map of molecule ID -> Pool,
used wherever a component (an axon, a cleft) tracks more than one
neurochemical species at once.
=================================================================================
*/
package pool

import (
	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/molecule"
)

// Pool is a concentration backed by one Environment scalar.
type Pool struct {
	env *environment.Environment
	id  environment.ID
}

// New registers a fresh pool at the given initial concentration.
func New(env *environment.Environment, initial float64) Pool {
	return Pool{env: env, id: env.Register(initial)}
}

// Wrap adapts an already-registered environment id as a Pool.
func Wrap(env *environment.Environment, id environment.ID) Pool {
	return Pool{env: env, id: id}
}

// ID returns the backing environment id.
func (p Pool) ID() environment.ID { return p.id }

// Get returns the previous-tick concentration. Never negative by
// construction (Remove clamps at zero; Add/Set callers are expected not to
// set negative concentrations directly).
func (p Pool) Get() float64 {
	v := p.env.Get(p.id)
	if v < 0 {
		return 0
	}
	return v
}

// Add increases the pool's next-tick concentration by delta.
func (p Pool) Add(delta float64) {
	if delta <= 0 {
		return
	}
	p.env.Add(p.id, delta)
}

// Remove decreases the pool's next-tick concentration by delta, clamping at
// zero; concentrations never go negative.
func (p Pool) Remove(delta float64) {
	if delta <= 0 {
		return
	}
	p.env.Remove(p.id, delta)
}

// Set overwrites the pool's next-tick concentration directly, clamping
// negative inputs to zero.
func (p Pool) Set(v float64) {
	if v < 0 {
		v = 0
	}
	p.env.Set(p.id, v)
}

// Cluster maps molecule ids to Pools, e.g. every active molecule species
// tracked by a SynapticCleft. Registration order is preserved so that
// every per-molecule walk (metabolism, binding, totals) visits pools in
// the same deterministic sequence run after run.
type Cluster struct {
	env   *environment.Environment
	pools map[molecule.ID]Pool
	order []molecule.ID
}

// NewCluster creates an empty cluster over env.
func NewCluster(env *environment.Environment) *Cluster {
	return &Cluster{env: env, pools: make(map[molecule.ID]Pool)}
}

// Register adds a new pool for mol, seeded at initial, and returns it.
func (c *Cluster) Register(mol molecule.ID, initial float64) Pool {
	p := New(c.env, initial)
	if _, exists := c.pools[mol]; !exists {
		c.order = append(c.order, mol)
	}
	c.pools[mol] = p
	return p
}

// Pool returns the pool registered for mol, if any.
func (c *Cluster) Pool(mol molecule.ID) (Pool, bool) {
	p, ok := c.pools[mol]
	return p, ok
}

// Molecules returns the registered molecule ids in registration order.
func (c *Cluster) Molecules() []molecule.ID {
	return c.order
}

// Total sums the current concentration across every pool in the cluster.
func (c *Cluster) Total() float64 {
	total := 0.0
	for _, id := range c.order {
		total += c.pools[id].Get()
	}
	return total
}
