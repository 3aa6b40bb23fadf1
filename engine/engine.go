/*
=================================================================================
ENGINE - GRAPH CONSTRUCTION AND THE PER-TICK WORKER-POOL DRIVER
=================================================================================

The Engine owns the one Environment every component's scalars live in, the
flat neuron table components reference by ID rather than by pointer, the
sparse activity BitSet, and the Driver/Probe registries. Graph construction (CreateNeuron, CreateSynapse,
CreateGapJunction, RegisterDriver) is only legal before the first Step;
after that the Environment's own register-after-start rule and this
package's own started flag both enforce the same LifecycleViolation.

Tick loop:
  1. drivers sample and write external current,
  2. active neurons step (single goroutine, or partitioned across a worker
     pool by contiguous id range, barrier-synchronized with a
     sync.WaitGroup),
  3. env.Step() swaps buffers,
  4. probes record,
  5. the next tick's activity set is computed from driver output and from
     the downstream neighbors of any neuron that went unstable this tick.

Parallel workers are safe without locks because the engine assigns each
neuron's owned environment ids (its soma voltage, its synapses' pools) to
exactly one contiguous id range, and every cross-neuron read (gap
junctions, dendrite activation) only ever touches the previous tick's
buffer via Environment.Get, which is immutable during the step phase.
=================================================================================
*/
package engine

import (
	"log/slog"
	"math"
	"sync"

	"github.com/subchem/subchem/environment"
	"github.com/subchem/subchem/neuron"
	"github.com/subchem/subchem/soma"
	"github.com/subchem/subchem/stochastic"
	"github.com/subchem/subchem/synapse"
)

type driverBinding struct {
	neuronIdx int
	values    []float64
	driver    Driver
}

// Engine is the simulation driver described above.
type Engine struct {
	env     *environment.Environment
	sampler *stochastic.Sampler
	log     *slog.Logger

	neurons    []*neuron.Neuron
	downstream [][]int // neuron index -> indices that must reactivate when it goes unstable

	active *BitSet
	next   *BitSet

	drivers map[string]*driverBinding

	voltageProbes       map[string]*voltageProbe
	spikeProbes         map[string]environment.ID
	concentrationProbes map[string]environment.ID

	workers int
	tick    int
	started bool
}

// New creates an Engine with its own Environment and PRNG, running the
// worker-step phase across `workers` goroutines (1 means single-threaded).
func New(workers int, seed int64) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		env:                 environment.New(),
		sampler:             stochastic.New(seed),
		log:                 slog.Default(),
		drivers:             make(map[string]*driverBinding),
		voltageProbes:       make(map[string]*voltageProbe),
		spikeProbes:         make(map[string]environment.ID),
		concentrationProbes: make(map[string]environment.ID),
		workers:             workers,
	}
}

// NewFromConfig creates an Engine from a loaded Config.
func NewFromConfig(cfg Config) *Engine { return New(cfg.Workers, cfg.Seed) }

// Environment exposes the engine's shared scalar store, e.g. so a caller
// can register its own pool for a concentration probe.
func (e *Engine) Environment() *environment.Environment { return e.env }

// Sampler exposes the engine's root PRNG, e.g. so a caller building
// synapses outside CreateSynapse can Fork deterministic child streams the
// same way CreateSynapse does.
func (e *Engine) Sampler() *stochastic.Sampler { return e.sampler }

func (e *Engine) neuronAt(id int) (*neuron.Neuron, error) {
	if id < 0 || id >= len(e.neurons) {
		return nil, ErrInvalidHandle
	}
	return e.neurons[id], nil
}

// Voltage implements neuron.Registry: gap junctions resolve a peer's
// voltage through the engine rather than holding a pointer to it.
func (e *Engine) Voltage(id neuron.ID) float64 {
	return e.neurons[id].Voltage()
}

// CreateNeuron adds a neuron built from somaFactory to the graph and
// returns its integer handle.
func (e *Engine) CreateNeuron(kind neuron.Kind, baseCurrent float64, somaFactory func(*environment.Environment) soma.Soma) (int, error) {
	if e.started {
		return 0, ErrLifecycleViolation
	}
	idx := len(e.neurons)
	s := somaFactory(e.env)
	n := neuron.New(neuron.ID(idx), s, kind, baseCurrent)
	e.neurons = append(e.neurons, n)
	e.downstream = append(e.downstream, nil)
	e.log.Debug("neuron created", "id", idx, "kind", kind)
	return idx, nil
}

// CreateNeuronGrid builds a rows x cols grid of neurons in row-major
// order, a convenience for building layered retina-like topologies.
func (e *Engine) CreateNeuronGrid(rows, cols int, kind neuron.Kind, baseCurrent float64, somaFactory func(*environment.Environment) soma.Soma) ([][]int, error) {
	grid := make([][]int, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			id, err := e.CreateNeuron(kind, baseCurrent, somaFactory)
			if err != nil {
				return nil, err
			}
			grid[r][c] = id
		}
	}
	return grid, nil
}

// CreateSynapse wires a chemical or simple synapse from pre to post and
// returns it as a neuron.OutSynapse, e.g. so the caller can Fire() it
// directly for a driven presynaptic spike train.
func (e *Engine) CreateSynapse(pre, post int, cfg synapse.SynapseConfig, simple bool) (neuron.OutSynapse, error) {
	if e.started {
		return nil, ErrLifecycleViolation
	}
	preN, err := e.neuronAt(pre)
	if err != nil {
		return nil, err
	}
	postN, err := e.neuronAt(post)
	if err != nil {
		return nil, err
	}

	// Each synapse owns its own forked sampler: its draw sequence then
	// depends only on its own tick-by-tick activity, never on which worker
	// goroutine stepped it, so parallel runs reproduce single-threaded runs
	// draw for draw.
	if simple {
		s, err := synapse.NewSimpleSynapse(e.env, cfg, e.sampler.Fork())
		if err != nil {
			return nil, err
		}
		preN.AddOutSynapse(s)
		postN.AddDendrite(s.Dendrite())
		e.downstream[pre] = append(e.downstream[pre], post)
		return s, nil
	}

	s, err := synapse.NewChemicalSynapse(e.env, cfg, e.sampler.Fork())
	if err != nil {
		return nil, err
	}
	preN.AddOutSynapse(s)
	for _, d := range s.Dendrites() {
		postN.AddDendrite(d)
	}
	e.downstream[pre] = append(e.downstream[pre], post)
	return s, nil
}

// CreateGapJunction wires a symmetric conductance edge between a and b.
func (e *Engine) CreateGapJunction(a, b int, conductance float64) error {
	if e.started {
		return ErrLifecycleViolation
	}
	aN, err := e.neuronAt(a)
	if err != nil {
		return err
	}
	bN, err := e.neuronAt(b)
	if err != nil {
		return err
	}
	aN.AddGapJunction(neuron.ID(b), conductance)
	bN.AddGapJunction(neuron.ID(a), conductance)
	e.downstream[a] = append(e.downstream[a], b)
	e.downstream[b] = append(e.downstream[b], a)
	return nil
}

// RegisterDriver binds d to neuron id under name; its sampled value is
// written as that neuron's external current every tick.
func (e *Engine) RegisterDriver(id int, name string, d Driver) error {
	if e.started {
		return ErrLifecycleViolation
	}
	if _, err := e.neuronAt(id); err != nil {
		return err
	}
	e.drivers[name] = &driverBinding{neuronIdx: id, driver: d}
	return nil
}

// DriverData returns the recorded time series of values a driver produced,
// one entry per tick it has been sampled.
func (e *Engine) DriverData(name string) []float64 {
	if b, ok := e.drivers[name]; ok {
		return b.values
	}
	return nil
}

// markStarted freezes the graph and allocates the activity bitsets, lazily
// on the first Step call.
func (e *Engine) markStarted() {
	if e.started {
		return
	}
	e.env.MarkStarted()
	e.active = NewBitSet(len(e.neurons))
	e.next = NewBitSet(len(e.neurons))
	for i := range e.neurons {
		e.active.Set(i) // every neuron runs at least once
	}
	e.started = true
	e.log.Info("engine started", "neurons", len(e.neurons), "workers", e.workers)
}

// Step advances the engine by count ticks.
func (e *Engine) Step(count int) error {
	if len(e.neurons) == 0 {
		return ErrLifecycleViolation
	}
	e.markStarted()
	for i := 0; i < count; i++ {
		e.tickOnce()
	}
	return nil
}

// RunUntilStable steps the engine until both the activity set is empty and
// env.Step() itself reports stable, or maxTicks is reached, whichever
// comes first. Returns the number of ticks actually run.
func (e *Engine) RunUntilStable(maxTicks int) (int, error) {
	if len(e.neurons) == 0 {
		return 0, ErrLifecycleViolation
	}
	e.markStarted()
	ran := 0
	for ran < maxTicks {
		envStable := e.tickOnce()
		ran++
		if !e.active.Any() && envStable {
			break
		}
	}
	return ran, nil
}

func (e *Engine) tickOnce() bool {
	for _, b := range e.drivers {
		v := b.driver.Sample(e.tick)
		b.values = append(b.values, v)
		e.neurons[b.neuronIdx].SetExternalCurrent(v)
		if v != 0 {
			e.active.Set(b.neuronIdx)
		}
	}

	e.stepActiveNeurons()

	envStable := e.env.Step()

	e.next.ClearAll()
	for i, n := range e.neurons {
		if !e.active.Get(i) {
			continue
		}
		if math.IsNaN(n.Voltage()) {
			// A numeric anomaly must not terminate the tick; leaving the
			// neuron out of the next activity set stops it propagating.
			e.log.Warn("NaN voltage; freezing neuron", "id", i, "tick", e.tick)
			continue
		}
		if !n.Stable() {
			e.next.Set(i)
			for _, j := range e.downstream[i] {
				e.next.Set(j)
			}
		}
	}
	for _, b := range e.drivers {
		if b.driver.Sample(e.tick+1) != 0 {
			e.next.Set(b.neuronIdx)
		}
	}
	e.active, e.next = e.next, e.active

	e.tick++
	return envStable
}

// stepActiveNeurons runs every currently-active neuron's Step, optionally
// partitioned across e.workers goroutines by contiguous id range with a
// WaitGroup barrier.
func (e *Engine) stepActiveNeurons() {
	n := len(e.neurons)
	if e.workers <= 1 || n < e.workers {
		for i := 0; i < n; i++ {
			if e.active.Get(i) {
				e.neurons[i].Step(e)
			}
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + e.workers - 1) / e.workers
	for w := 0; w < e.workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if e.active.Get(i) {
					e.neurons[i].Step(e)
				}
			}
		}(start, end)
	}
	wg.Wait()
}

// Close releases engine resources. There are no worker goroutines left
// running between Step calls, so this only logs the close; it exists to
// satisfy the engine-API lifecycle contract.
func (e *Engine) Close() {
	e.log.Info("engine closed", "ticks", e.tick)
}
