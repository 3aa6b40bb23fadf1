package soma

import (
	"math"

	"github.com/subchem/subchem/environment"
)

// HH default membrane constants (standard squid giant axon parameters).
const (
	hhDefaultCm  = 1.0
	hhDefaultGNa = 120.0
	hhDefaultGK  = 36.0
	hhDefaultGL  = 0.3
	hhDefaultVNa = 50.0
	hhDefaultVK  = -77.0
	hhDefaultVL  = -54.4
	hhRestingV   = -65.0
	hhResolution = 100

	hhStabilityDelta = 1e-3
	hhStabilityRun   = 10
)

// HH is a Hodgkin-Huxley membrane-voltage integrator: the m/h/n gating
// variables plus the voltage itself are advanced by forward Euler across a
// fixed number of sub-steps per tick.
type HH struct {
	env *environment.Environment
	vID environment.ID

	m, h, n float64

	cm, gNa, gK, gL float64
	vNa, vK, vL     float64

	resolution int
	stableRun  int
}

// NewHH creates an HH soma with its voltage registered in env, seeded to its
// resting potential's steady-state gating values.
func NewHH(env *environment.Environment, resolution int) *HH {
	if resolution <= 0 {
		resolution = hhResolution
	}
	s := &HH{
		env: env, vID: env.Register(hhRestingV),
		cm: hhDefaultCm, gNa: hhDefaultGNa, gK: hhDefaultGK, gL: hhDefaultGL,
		vNa: hhDefaultVNa, vK: hhDefaultVK, vL: hhDefaultVL,
		resolution: resolution,
	}
	s.seedGating(hhRestingV)
	return s
}

func (s *HH) seedGating(v float64) {
	am, bm := hhAlphaM(v), hhBetaM(v)
	ah, bh := hhAlphaH(v), hhBetaH(v)
	an, bn := hhAlphaN(v), hhBetaN(v)
	s.m = am / (am + bm)
	s.h = ah / (ah + bh)
	s.n = an / (an + bn)
}

func hhAlphaM(v float64) float64 { return 0.1 * safeRate(v+40, 10) }
func hhBetaM(v float64) float64  { return 4.0 * math.Exp(-(v + 65) / 18) }
func hhAlphaH(v float64) float64 { return 0.07 * math.Exp(-(v+65)/20) }
func hhBetaH(v float64) float64  { return 1.0 / (1 + math.Exp(-(v+35)/10)) }
func hhAlphaN(v float64) float64 { return 0.01 * safeRate(v+55, 10) }
func hhBetaN(v float64) float64  { return 0.125 * math.Exp(-(v+65)/80) }

func (s *HH) Voltage() float64         { return s.env.Get(s.vID) }
func (s *HH) AdjustedVoltage() float64 { return s.Voltage() / 100.0 }
func (s *HH) VoltageID() environment.ID { return s.vID }

func (s *HH) Reset() {
	s.env.Set(s.vID, hhRestingV)
	s.seedGating(hhRestingV)
	s.stableRun = 0
}

// Step advances the soma by hhResolution forward-Euler sub-steps of the full
// Hodgkin-Huxley system and returns whether the last hhStabilityRun
// consecutive sub-steps all moved voltage by less than hhStabilityDelta with
// no applied current.
func (s *HH) Step(current float64) bool {
	dt := 1.0 / float64(s.resolution)
	v := s.Voltage()
	m, h, n := s.m, s.h, s.n
	run := 0

	for i := 0; i < s.resolution; i++ {
		iNa := s.gNa * m * m * m * h * (v - s.vNa)
		iK := s.gK * n * n * n * n * (v - s.vK)
		iL := s.gL * (v - s.vL)
		dv := dt * (current - iNa - iK - iL) / s.cm

		am, bm := hhAlphaM(v), hhBetaM(v)
		ah, bh := hhAlphaH(v), hhBetaH(v)
		an, bn := hhAlphaN(v), hhBetaN(v)
		m = clamp01(m + dt*(am*(1-m)-bm*m))
		h = clamp01(h + dt*(ah*(1-h)-bh*h))
		n = clamp01(n + dt*(an*(1-n)-bn*n))

		newV := v + dv
		if current == 0 && math.Abs(dv) < hhStabilityDelta {
			run++
		} else {
			run = 0
		}
		v = newV
	}

	s.m, s.h, s.n = m, h, n
	s.stableRun = run
	s.env.Set(s.vID, v)
	return current == 0 && s.stableRun >= hhStabilityRun
}
