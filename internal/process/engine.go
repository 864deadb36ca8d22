package process

import (
	"fmt"
	"math"

	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/solver"
	"github.com/sirupsen/logrus"
)

const (
	temperatureTolerance = 1e-6 // [K]

	defaultTLowRatio  = 0.3
	defaultTHighRatio = 5.0

	// below this spread of saturated properties the phase is decided by volume
	degenerateSpread = 1e-6
)

// DefaultTemperature and DefaultPressure describe the ambient liquid state
// returned by DefaultState.
const (
	DefaultTemperature = 300.0    // [K]
	DefaultPressure    = 101300.0 // [Pa]
)

type property func(T, P, x float64) (float64, error)

// Engine resolves states directly against a cubic equation of state.
type Engine struct {
	eos   *eos.Cubic
	tLow  float64
	tHigh float64
	log   logrus.FieldLogger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTemperatureBounds sets the search interval for single-phase states.
func WithTemperatureBounds(low, high float64) EngineOption {
	return func(e *Engine) {
		if low > 0 && high > low {
			e.tLow, e.tHigh = low, high
		}
	}
}

// WithEngineLogger sets the engine's logger.
func WithEngineLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine wraps c. By default single-phase searches span 0.3·Tc to 5·Tc.
func NewEngine(c *eos.Cubic, opts ...EngineOption) *Engine {
	tc := c.Params().Tc
	e := &Engine{
		eos:   c,
		tLow:  defaultTLowRatio * tc,
		tHigh: defaultTHighRatio * tc,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) EOS() *eos.Cubic { return e.eos }

// Bounds returns the single-phase temperature search interval.
func (e *Engine) Bounds() (low, high float64) { return e.tLow, e.tHigh }

// Enthalpy returns the specific enthalpy at quality x, T and P.
func (e *Engine) Enthalpy(x, T, P float64) (float64, error) {
	return e.eos.Enthalpy(T, P, x)
}

// Entropy returns the specific entropy of st.
func (e *Engine) Entropy(st State) (float64, error) {
	return e.eos.Entropy(st.T, st.P, st.X)
}

// DefaultState is the ambient liquid state at 300 K and 101300 Pa.
func (e *Engine) DefaultState() (State, error) {
	h, err := e.Enthalpy(0, DefaultTemperature, DefaultPressure)
	if err != nil {
		return State{}, err
	}
	return NewState(DefaultTemperature, DefaultPressure, h, 0), nil
}

// Temperature finds the temperature and quality at which the fluid has
// enthalpy h at pressure P.
func (e *Engine) Temperature(P, h float64) (T, x float64, err error) {
	return e.invert(P, h, e.eos.Enthalpy)
}

// Resolve returns the state at (P, h).
func (e *Engine) Resolve(P, h float64) (State, error) {
	T, x, err := e.Temperature(P, h)
	if err != nil {
		return State{}, err
	}
	return NewState(T, P, h, x), nil
}

// StateFromEntropy returns the state at pressure P with specific entropy s.
func (e *Engine) StateFromEntropy(P, s float64) (State, error) {
	T, x, err := e.invert(P, s, e.eos.Entropy)
	if err != nil {
		return State{}, err
	}
	h, err := e.eos.Enthalpy(T, P, x)
	if err != nil {
		return State{}, err
	}
	return NewState(T, P, h, x), nil
}

// IsentropicChange moves st to P keeping its entropy.
func (e *Engine) IsentropicChange(st State, P float64) (State, error) {
	s, err := e.Entropy(st)
	if err != nil {
		return State{}, err
	}
	next, err := e.StateFromEntropy(P, s)
	if err != nil {
		return State{}, fmt.Errorf("isentropic change %v -> %g Pa: %w", st, P, err)
	}
	return next, nil
}

// invert solves prop(T, P, x) = target for T. Below the critical pressure the
// saturation temperature splits the search: a target between the saturated
// liquid and vapor values is two-phase at Tsat, anything below is bisected on
// the liquid branch and anything above on the vapor branch.
func (e *Engine) invert(P, target float64, prop property) (T, x float64, err error) {
	if !(P > 0) || math.IsNaN(target) {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: P=%g target=%g", eos.ErrDomain, P, target)
	}

	tc, pc := e.eos.Params().Tc, e.eos.Params().Pc
	if P >= pc {
		T, err = e.bisect(P, target, prop, 1, e.tLow, e.tHigh)
		if T < tc {
			return T, 0, err
		}
		return T, 1, err
	}

	tsat, err := e.eos.SaturationTemperature(P)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	lo, err := prop(tsat, P, 0)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	hi, err := prop(tsat, P, 1)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}

	switch {
	case target >= lo && target <= hi:
		if hi-lo < degenerateSpread {
			return tsat, 0, nil
		}
		return tsat, (target - lo) / (hi - lo), nil
	case target < lo:
		T, err = e.bisect(P, target, prop, 0, math.Min(e.tLow, tsat), tsat)
		return T, 0, err
	default:
		T, err = e.bisect(P, target, prop, 1, tsat, math.Max(e.tHigh, tsat))
		return T, 1, err
	}
}

func (e *Engine) bisect(P, target float64, prop property, x, lo, hi float64) (float64, error) {
	f := func(T float64) float64 {
		v, err := prop(T, P, x)
		if err != nil {
			return math.NaN()
		}
		return v - target
	}

	T, err := solver.Dichotomy(f, lo, hi, temperatureTolerance)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"P": P, "target": target, "x": x, "t_low": lo, "t_high": hi,
		}).Debug("temperature search failed")
		return math.NaN(), fmt.Errorf("%w: P=%g Pa target=%g in [%g, %g] K: %v", ErrNoSolution, P, target, lo, hi, err)
	}
	return T, nil
}

// Quality estimates the vapor quality of a fluid with enthalpy h at (T, P).
func (e *Engine) Quality(h, T, P float64) (float64, error) {
	return e.quality(h, T, P, e.eos.TotalEnthalpy)
}

// QualityFromEntropy estimates the vapor quality from specific entropy s.
func (e *Engine) QualityFromEntropy(s, T, P float64) (float64, error) {
	return e.quality(s, T, P, e.eos.TotalEntropy)
}

func (e *Engine) quality(target, T, P float64, total func(T, Vm float64) (float64, error)) (float64, error) {
	roots, err := e.eos.ZFactors(T, P)
	if err != nil {
		return 0, err
	}
	vl, vv, err := e.eos.SaturationVolumes(T)
	if err != nil {
		return math.NaN(), err
	}
	if math.Abs(vv-vl) < 1e-8 {
		if roots[0]*eos.R*T/P > vv {
			return 1, nil
		}
		return 0, nil
	}

	if psat, err := e.eos.SaturationPressure(T); err == nil {
		band := e.eos.DeadBand()
		if P < psat*(1-band) {
			return 1, nil
		}
		if P > psat*(1+band) {
			return 0, nil
		}
	}

	lo, err := total(T, vl)
	if err != nil {
		return math.NaN(), err
	}
	hi, err := total(T, vv)
	if err != nil {
		return math.NaN(), err
	}
	if math.Abs(hi-lo) < degenerateSpread {
		if target > lo {
			return 1, nil
		}
		return 0, nil
	}
	return math.Max(0, math.Min(1, (target-lo)/(hi-lo))), nil
}
