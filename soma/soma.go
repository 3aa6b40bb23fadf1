/*
=================================================================================
SOMA - MEMBRANE-VOLTAGE INTEGRATOR INTERFACE
=================================================================================

A Soma is the voltage dynamical system at the heart of a Neuron: a small
interface with three concrete implementations (HH, Izhikevich, and the
HH-derived Photoreceptor) rather than a sum type, since that is the
idiomatic Go shape for "one of a few things, dispatched by interface" when
the variants don't share field layout.

Every Soma registers its own membrane voltage as a scalar in the
Environment it is given at construction time; Step writes the new voltage
into that scalar's next buffer the same way every other shared scalar in
the simulation is written, which is what lets a Neuron read a gap-junction
peer's voltage through Environment.Get without caring whether that peer is
an HH, Izhikevich, or Photoreceptor soma.
=================================================================================
*/
package soma

import (
	"math"

	"github.com/subchem/subchem/environment"
)

// Soma is the shared contract every soma integrator implements.
type Soma interface {
	// Voltage returns the previous-tick membrane voltage (mV).
	Voltage() float64
	// AdjustedVoltage returns a scaled readout suitable for probes --
	// somas with very different voltage ranges (e.g. a photoreceptor's
	// graded hyperpolarization) still produce a comparable signal.
	AdjustedVoltage() float64
	// Step advances the soma by one tick given the total applied current
	// (external + gap-junction + ligand) and returns whether the soma was
	// already at its stability fixed point.
	Step(current float64) bool
	// Reset returns the soma to its resting state.
	Reset()
	// VoltageID exposes the backing environment scalar, e.g. so a gap
	// junction can read a peer's voltage directly.
	VoltageID() environment.ID
}

// safeRate evaluates x/(1-exp(-x/k)), the rate-function shape common to
// every Hodgkin-Huxley alpha/beta term, with the removable singularity at
// x==0 handled by its analytic limit (k).
func safeRate(x, k float64) float64 {
	if math.Abs(x) < 1e-7 {
		return k
	}
	return x / (1 - math.Exp(-x/k))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
