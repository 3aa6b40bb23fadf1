/*
=================================================================================
DRIVER - EXTERNAL TIME-FUNCTION CURRENT INJECTION
=================================================================================

A Driver is an external collaborator sampled once per tick to
produce the value written into a neuron's external current. PulseDriver
covers both the current-pulse and activation-pulse uses: the two are the
same periodic on/off waveform, just
interpreted downstream as an injected current for a spiking soma or as a
light intensity for a Photoreceptor soma (soma.Photoreceptor.Step treats
its argument as light level either way).
=================================================================================
*/
package engine

// Driver produces the external-current value to apply to a neuron at the
// given tick index.
type Driver interface {
	Sample(tick int) float64
}

// PulseDriver emits `high` for `Length` ticks out of every `Period` ticks,
// starting after an initial `Delay`, and `baseline` otherwise.
type PulseDriver struct {
	high     float64
	baseline float64
	Period   int
	Length   int
	Delay    int
}

// NewPulseDriver creates a PulseDriver injecting `current` during each
// active window.
func NewPulseDriver(current float64, period, length, delay int) *PulseDriver {
	return &PulseDriver{high: current, Period: period, Length: length, Delay: delay}
}

// NewActivationPulseDriver creates a PulseDriver whose sampled value is
// intended to be read as a light intensity / activation level rather than
// an injected current; the waveform is identical.
func NewActivationPulseDriver(activation float64, period, length, delay int) *PulseDriver {
	return NewPulseDriver(activation, period, length, delay)
}

// Sample implements Driver.
func (d *PulseDriver) Sample(tick int) float64 {
	if tick < d.Delay {
		return d.baseline
	}
	if d.Period <= 0 {
		return d.baseline
	}
	phase := (tick - d.Delay) % d.Period
	if phase < d.Length {
		return d.high
	}
	return d.baseline
}
