package engine

import "errors"

// Error taxonomy. InvalidParameter and WrongTransporterReceptorPair
// are returned directly by the synapse package's own constructors; the
// engine adds the two failure modes that are specific to graph construction
// and lifecycle.
var (
	// ErrLifecycleViolation is returned by any graph-construction call made
	// after the engine has started stepping ticks, and by Step when no
	// neuron has been created yet.
	ErrLifecycleViolation = errors.New("engine: lifecycle violation")
	// ErrInvalidHandle is returned when a neuron handle passed to the
	// engine does not belong to it.
	ErrInvalidHandle = errors.New("engine: invalid handle")
)
