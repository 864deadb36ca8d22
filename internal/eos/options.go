package eos

import "github.com/sirupsen/logrus"

const (
	defaultDeadBand     = 0.01
	defaultTMinRatio    = 0.25
	defaultTStepDivisor = 1000
	defaultLogPStep     = 0.01
)

type settings struct {
	log      logrus.FieldLogger
	deadBand float64
	tRef     float64
	pRef     float64
	satTMin  float64
	satTStep float64
	satLogP  float64
}

func defaultSettings(p Params) settings {
	return settings{
		log:      logrus.StandardLogger(),
		deadBand: defaultDeadBand,
		tRef:     TRef,
		pRef:     PRef,
		satTMin:  defaultTMinRatio * p.Tc,
		satTStep: p.Tc / defaultTStepDivisor,
		satLogP:  defaultLogPStep,
	}
}

// Option configures a Cubic engine.
type Option func(*settings)

// WithLogger sets the logger used for construction progress and degraded
// lookups.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSaturationGrid sets the cached saturation curve's lower temperature,
// its temperature step, and the ln(P) step of the inverse table. Zero values
// keep the defaults (0.25·Tc, Tc/1000, 0.01).
func WithSaturationGrid(tMin, tStep, logPStep float64) Option {
	return func(s *settings) {
		if tMin > 0 {
			s.satTMin = tMin
		}
		if tStep > 0 {
			s.satTStep = tStep
		}
		if logPStep > 0 {
			s.satLogP = logPStep
		}
	}
}

// WithDeadBand sets the relative band around the saturation pressure inside
// which a state with several roots is treated as two-phase.
func WithDeadBand(band float64) Option {
	return func(s *settings) {
		if band >= 0 {
			s.deadBand = band
		}
	}
}

// WithReference moves the state at which total entropy and enthalpy vanish.
func WithReference(T, P float64) Option {
	return func(s *settings) {
		if T > 0 && P > 0 {
			s.tRef, s.pRef = T, P
		}
	}
}
