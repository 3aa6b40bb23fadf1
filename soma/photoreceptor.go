package soma

import (
	"math"

	"github.com/subchem/subchem/environment"
)

const (
	photoRestingV    = -40.0
	photoBaseM       = 0.9 // sodium activation at zero light
	photoDefaultTauL = 20.0
)

// Photoreceptor is an HH-derived soma in which the sodium activation m is
// driven directly by a low-pass-filtered light input instead of its own
// voltage-gated dynamics (m = base - light), graded rather than
// spiking.
type Photoreceptor struct {
	env *environment.Environment
	vID environment.ID

	h, n  float64
	light float64

	base float64
	tauL float64

	cm, gNa, gK, gL float64
	vNa, vK, vL     float64

	resolution int
}

// NewPhotoreceptor creates a photoreceptor soma with its voltage registered
// in env, dark-adapted (light level 0).
func NewPhotoreceptor(env *environment.Environment, resolution int) *Photoreceptor {
	if resolution <= 0 {
		resolution = hhResolution
	}
	s := &Photoreceptor{
		env: env, vID: env.Register(photoRestingV),
		base: photoBaseM, tauL: photoDefaultTauL,
		cm: hhDefaultCm, gNa: hhDefaultGNa, gK: hhDefaultGK, gL: hhDefaultGL,
		vNa: hhDefaultVNa, vK: hhDefaultVK, vL: hhDefaultVL,
		resolution: resolution,
	}
	ah, bh := hhAlphaH(photoRestingV), hhBetaH(photoRestingV)
	an, bn := hhAlphaN(photoRestingV), hhBetaN(photoRestingV)
	s.h = ah / (ah + bh)
	s.n = an / (an + bn)
	return s
}

// NewPhotoreceptorTau creates a photoreceptor whose light low-pass uses a
// custom time constant, clamped to [10, 1000]. Slower variants model
// rod-like adaptation; the default is cone-like.
func NewPhotoreceptorTau(env *environment.Environment, resolution int, tauL float64) *Photoreceptor {
	s := NewPhotoreceptor(env, resolution)
	if tauL < 10 {
		tauL = 10
	}
	if tauL > 1000 {
		tauL = 1000
	}
	s.tauL = tauL
	return s
}

func (s *Photoreceptor) Voltage() float64          { return s.env.Get(s.vID) }
func (s *Photoreceptor) AdjustedVoltage() float64  { return s.Voltage() / 100.0 }
func (s *Photoreceptor) VoltageID() environment.ID { return s.vID }

func (s *Photoreceptor) Reset() {
	s.env.Set(s.vID, photoRestingV)
	s.light = 0
	ah, bh := hhAlphaH(photoRestingV), hhBetaH(photoRestingV)
	an, bn := hhAlphaN(photoRestingV), hhBetaN(photoRestingV)
	s.h = ah / (ah + bh)
	s.n = an / (an + bn)
}

// StepLight advances the soma by one tick given a light intensity in [0,1]
// (0 is dark) instead of an injected current, and returns whether the
// voltage moved by less than hhStabilityDelta across the whole tick.
func (s *Photoreceptor) StepLight(lightInput float64) bool {
	dt := 1.0 / float64(s.resolution)
	v := s.Voltage()
	h, n, light := s.h, s.n, s.light
	start := v

	for i := 0; i < s.resolution; i++ {
		light += (lightInput - light) / s.tauL
		m := clamp01(s.base - light)

		ah, bh := hhAlphaH(v), hhBetaH(v)
		an, bn := hhAlphaN(v), hhBetaN(v)
		h = clamp01(h + dt*(ah*(1-h)-bh*h))
		n = clamp01(n + dt*(an*(1-n)-bn*n))

		iNa := s.gNa * m * m * m * h * (v - s.vNa)
		iK := s.gK * n * n * n * n * (v - s.vK)
		iL := s.gL * (v - s.vL)
		v += dt * (-iNa - iK - iL) / s.cm
	}

	s.h, s.n, s.light = h, n, light
	s.env.Set(s.vID, v)
	return math.Abs(v-start) < hhStabilityDelta
}

// Step satisfies the Soma interface, treating current as a light intensity.
// Neurons that drive a photoreceptor from an explicit light signal should
// prefer StepLight directly.
func (s *Photoreceptor) Step(current float64) bool { return s.StepLight(current) }
