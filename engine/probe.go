/*
=================================================================================
PROBE - PER-TICK SAMPLING SINKS
=================================================================================

Three probe kinds: voltage probes ride the Neuron's own
per-step callback hook; spike and concentration probes are thin wrappers
over functionality the Environment already has (EnableSpikeCounting,
EnableRecording) since both are really "record this scalar's prev value
on every step that changed something," which the double-buffered store
already does in its Step.
=================================================================================
*/
package engine

import "github.com/subchem/subchem/environment"

type voltageProbe struct {
	values []float64
}

// AttachVoltageProbe arms a probe on id's adjusted voltage, retrievable
// later via ProbeData(name).
func (e *Engine) AttachVoltageProbe(id int, name string) error {
	n, err := e.neuronAt(id)
	if err != nil {
		return err
	}
	vp := &voltageProbe{}
	n.AttachProbe(func(v float64) { vp.values = append(vp.values, v) })
	e.voltageProbes[name] = vp
	return nil
}

// AttachSpikeProbe arms a spike counter on id's soma voltage, crossing
// the 30 mV spike threshold.
func (e *Engine) AttachSpikeProbe(id int, name string) error {
	n, err := e.neuronAt(id)
	if err != nil {
		return err
	}
	vid := n.Soma.VoltageID()
	e.env.EnableSpikeCounting(vid, 30.0)
	e.spikeProbes[name] = vid
	return nil
}

// AttachConcentrationProbe arms a recorder on an arbitrary environment
// scalar, e.g. a synapse's axon reserve or cleft pool.
func (e *Engine) AttachConcentrationProbe(id environment.ID, name string) {
	e.env.EnableRecording(id)
	e.concentrationProbes[name] = id
}

// ProbeData returns the recorded time series for name, across whichever
// probe kind registered it, or nil if name is unknown.
func (e *Engine) ProbeData(name string) []float64 {
	if vp, ok := e.voltageProbes[name]; ok {
		return vp.values
	}
	if id, ok := e.concentrationProbes[name]; ok {
		return e.env.Records(id)
	}
	return nil
}

// SpikeCount returns the number of recorded spikes for a probe attached via
// AttachSpikeProbe.
func (e *Engine) SpikeCount(name string) int {
	if id, ok := e.spikeProbes[name]; ok {
		return e.env.SpikeCount(id)
	}
	return 0
}
