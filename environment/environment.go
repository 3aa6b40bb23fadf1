/*
=================================================================================
ENVIRONMENT - DOUBLE-BUFFERED SHARED SCALAR STORE
=================================================================================

Every shared scalar in the simulation -- soma membrane voltages, synaptic
cleft pool concentrations, axon reserves -- lives here rather than inside the
component that happens to compute it. Components hold an ID, not a pointer
into another component's memory, which is what lets the engine fan neuron
updates out across a worker pool without locks.

BUFFERING MODEL:
The store keeps two equal-length slices, prev and next. Within a tick every
read goes through Get, which only ever sees prev. Every write (Set/Add/
Adjust/Remove) only ever touches next. Step() copies next into prev and
clears the dirty flag; if nothing was written since the last Step, Step is a
no-op and reports the store as stable. This is what makes cross-component
coupling (gap junctions, synapses) a one-tick-delayed, race-free read: as
long as the engine guarantees a single writer per ID within a tick, many
goroutines can call Set/Add/Remove on disjoint IDs of the same *Environment
concurrently while every other goroutine calls Get, with no data race and no
lock in the hot path.

Registration (Register) is the one operation that is not safe to call once
the engine has started stepping neurons -- the backing slices would need to
grow underneath readers that assume a fixed length. MarkStarted flips an
internal flag and any subsequent Register panics, treating
register-after-start as a programmer error.
=================================================================================
*/
package environment

import "sync/atomic"

// ID identifies one registered scalar within an Environment.
type ID int

// Environment is the double-buffered store described above.
type Environment struct {
	prev []float64
	next []float64

	dirty   atomic.Bool
	started atomic.Bool

	recordThresholds map[ID]float64 // id -> spike threshold, presence means "record enabled"
	records          map[ID][]float64
	spikeCounts      map[ID]int
}

// New creates an empty, not-yet-started Environment.
func New() *Environment {
	return &Environment{
		recordThresholds: make(map[ID]float64),
		records:          make(map[ID][]float64),
		spikeCounts:      make(map[ID]int),
	}
}

// Register appends a new scalar, seeded to initial in both buffers, and
// returns its ID. Panics if called after MarkStarted.
func (e *Environment) Register(initial float64) ID {
	if e.started.Load() {
		panic("environment: Register called after MarkStarted (lifecycle violation)")
	}
	id := ID(len(e.prev))
	e.prev = append(e.prev, initial)
	e.next = append(e.next, initial)
	return id
}

// MarkStarted freezes registration. The engine calls this once, after the
// full component graph has been built and before the first worker touches
// the environment.
func (e *Environment) MarkStarted() {
	e.started.Store(true)
}

// Len reports the number of registered scalars.
func (e *Environment) Len() int {
	return len(e.prev)
}

// Get returns the previous-tick value of id. Safe to call concurrently with
// any number of other Get calls and with Set/Add/Adjust/Remove calls on
// other ids.
func (e *Environment) Get(id ID) float64 {
	return e.prev[id]
}

// Set overwrites the next-tick value of id.
func (e *Environment) Set(id ID, v float64) {
	e.next[id] = v
	e.dirty.Store(true)
}

// Add increments the next-tick value of id by delta.
func (e *Environment) Add(id ID, delta float64) {
	e.next[id] += delta
	e.dirty.Store(true)
}

// Adjust is an alias of Add; callers may prefer it where "adjust" reads more
// naturally than "add" (e.g. applying a current delta versus accumulating a
// concentration).
func (e *Environment) Adjust(id ID, delta float64) {
	e.Add(id, delta)
}

// Remove subtracts delta from the next-tick value of id, clamping at zero.
// This is the only write path that enforces the non-negative-concentration
// invariant at the buffer level; Pool relies on it for every withdrawal.
func (e *Environment) Remove(id ID, delta float64) {
	v := e.next[id] - delta
	if v < 0 {
		v = 0
	}
	e.next[id] = v
	e.dirty.Store(true)
}

// EnableRecording arms a per-tick recorder for id: every Step that has
// pending writes appends that tick's prev value to the recording before
// swapping buffers; a clean (no-op) Step records nothing. Used by Probe.
func (e *Environment) EnableRecording(id ID) {
	if _, ok := e.records[id]; !ok {
		e.records[id] = nil
	}
}

// EnableSpikeCounting arms a spike counter for id: every Step that has
// pending writes and finds prev[id] >= threshold increments the counter
// before swapping buffers; a clean (no-op) Step counts nothing.
func (e *Environment) EnableSpikeCounting(id ID, threshold float64) {
	e.recordThresholds[id] = threshold
}

// Records returns the recorded time series for id (empty if recording was
// never enabled for it).
func (e *Environment) Records(id ID) []float64 {
	return e.records[id]
}

// SpikeCount returns the number of ticks in which id's prev value crossed
// its configured spike threshold.
func (e *Environment) SpikeCount(id ID) int {
	return e.spikeCounts[id]
}

// Step advances the buffers by one tick. If no write happened since the
// last Step, it is a no-op and Step reports stable (true). Otherwise it
// appends to any armed recorders, updates spike counters, copies next into
// prev, clears the dirty flag, and reports unstable (false).
func (e *Environment) Step() bool {
	if !e.dirty.Load() {
		return true
	}

	for id := range e.records {
		e.records[id] = append(e.records[id], e.prev[id])
	}
	for id, threshold := range e.recordThresholds {
		if e.prev[id] >= threshold {
			e.spikeCounts[id]++
		}
	}

	copy(e.prev, e.next)
	e.dirty.Store(false)
	return false
}
