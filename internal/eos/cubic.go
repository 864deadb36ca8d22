package eos

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/realfluid/internal/solver"
	"github.com/san-kum/realfluid/internal/table"
	"github.com/sirupsen/logrus"
)

const (
	// ideal-gas heat capacities [J/(mol·K)]
	idealCpEntropy  = 3.5 * R
	idealCpEnthalpy = 75.0

	minZFactor = 1.001
)

// Cubic evaluates fluid properties for any cubic Model. All derived caches
// are built by New; a returned Cubic is read-only.
type Cubic struct {
	model    Model
	params   Params
	log      logrus.FieldLogger
	deadBand float64

	tRef, pRef float64
	sRef, hRef float64
	vc         float64

	saturation *table.Reversible
	satMin     float64
	satMax     float64
}

// New wraps m, computes the reference offsets and caches the saturation curve.
func New(m Model, opts ...Option) (*Cubic, error) {
	p := m.Params()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultSettings(p)
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cubic{
		model:    m,
		params:   p,
		log:      cfg.log.WithField("fluid", p.Name),
		deadBand: cfg.deadBand,
		tRef:     cfg.tRef,
		pRef:     cfg.pRef,
	}

	ref, err := c.ZFactors(cfg.tRef, cfg.pRef)
	if err != nil {
		return nil, fmt.Errorf("eos: reference state: %w", err)
	}
	c.sRef = c.idealEntropy(cfg.tRef, cfg.pRef) + m.ResidualEntropy(cfg.tRef, cfg.pRef, ref[0])
	c.hRef = c.idealEnthalpy(cfg.tRef) + m.ResidualEnthalpy(cfg.tRef, cfg.pRef, ref[0])

	crit, err := c.ZFactors(p.Tc, p.Pc)
	if err != nil {
		return nil, fmt.Errorf("eos: critical state: %w", err)
	}
	c.vc = crit[len(crit)-1] * R * p.Tc / p.Pc

	start := time.Now()
	sat, err := table.NewReversible(c.SolveSaturationPressure,
		cfg.satTMin, p.Tc, table.Linear, cfg.satTStep,
		table.Logarithmic, cfg.satLogP)
	if err != nil {
		return nil, fmt.Errorf("eos: caching saturation curve for %s: %w", p.Name, err)
	}
	c.saturation = sat
	c.satMin, c.satMax, _ = sat.Forward().Bounds()

	c.log.WithFields(logrus.Fields{
		"samples": sat.Forward().Len(),
		"t_min":   c.satMin,
		"t_max":   c.satMax,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("saturation curve cached")

	return c, nil
}

func (c *Cubic) Params() Params          { return c.params }
func (c *Cubic) Model() Model            { return c.model }
func (c *Cubic) CoVolume() float64       { return c.model.CoVolume() }
func (c *Cubic) CriticalVolume() float64 { return c.vc }
func (c *Cubic) DeadBand() float64       { return c.deadBand }

// Reference returns the state at which total entropy and enthalpy are zero.
func (c *Cubic) Reference() (T, P float64) { return c.tRef, c.pRef }

// SaturationRange returns the temperature span covered by the cached curve.
func (c *Cubic) SaturationRange() (tMin, tMax float64) { return c.satMin, c.satMax }

func (c *Cubic) Pressure(T, Vm float64) float64 { return c.model.Pressure(T, Vm) }
func (c *Cubic) DPdV(T, Vm float64) float64     { return c.model.DPdV(T, Vm) }
func (c *Cubic) DPdT(T, Vm float64) float64     { return c.model.DPdT(T, Vm) }

func (c *Cubic) FugacityCoefficient(T, P, Z float64) float64 {
	return c.model.FugacityCoefficient(T, P, Z)
}

func (c *Cubic) minZ(T, P float64) float64 {
	return c.model.CoVolume() * minZFactor * P / (R * T)
}

// ZFactors returns the admissible compressibility factors at (T, P) in
// ascending order. Roots at or below the co-volume bound are rejected. With
// more than one root the first is liquid-like and the last vapor-like.
func (c *Cubic) ZFactors(T, P float64) ([]float64, error) {
	if !(T > 0) || !(P > 0) {
		return nil, stateErr("z factors", T, P, ErrDomain)
	}

	c2, c3, c4 := c.model.ZCoefficients(T, P)
	roots := solver.RealRoots(solver.SolveCubic(1, c2, c3, c4))

	zMin := c.minZ(T, P)
	admissible := roots[:0]
	for _, z := range roots {
		if z > zMin {
			admissible = append(admissible, z)
		}
	}
	if len(admissible) == 0 {
		return nil, stateErr("z factors", T, P, ErrNoRoot)
	}
	return admissible, nil
}

// VolumeMolar returns the molar volume [m³/mol] at (T, P) for vapor quality x.
// x ≤ 0 selects the liquid-like root and x ≥ 1 the vapor-like one; in between
// the saturated volumes are blended.
func (c *Cubic) VolumeMolar(T, P, x float64) (float64, error) {
	roots, err := c.ZFactors(T, P)
	if err != nil {
		return math.NaN(), err
	}

	var z float64
	switch {
	case x <= 0:
		z = roots[0]
	case x >= 1:
		z = roots[len(roots)-1]
	case len(roots) >= 2:
		vl, vv, err := c.SaturationVolumes(T)
		if err != nil {
			return math.NaN(), err
		}
		return (1-x)*vl + x*vv, nil
	default:
		z = roots[0]
	}
	return z * R * T / P, nil
}

// Phase classifies (T, P) against the cached saturation curve.
func (c *Cubic) Phase(T, P float64) (Phase, error) {
	if !(T > 0) || !(P > 0) {
		return Supercritical, stateErr("phase", T, P, ErrDomain)
	}
	if T >= c.params.Tc {
		return Supercritical, nil
	}

	psat, err := c.SaturationPressure(T)
	if err != nil {
		return Supercritical, err
	}
	switch {
	case P > psat*(1+c.deadBand):
		return Liquid, nil
	case P < psat*(1-c.deadBand):
		return Vapor, nil
	default:
		return TwoPhase, nil
	}
}

func (c *Cubic) idealEntropy(T, P float64) float64 {
	return (idealCpEntropy*math.Log(T) - R*math.Log(P)) / c.params.M
}

func (c *Cubic) idealEnthalpy(T float64) float64 {
	return idealCpEnthalpy * T / c.params.M
}

func (c *Cubic) checkVolume(op string, T, Vm float64) error {
	if !(T > 0) || !(Vm > c.model.CoVolume()) {
		return stateErr(op, T, 0, fmt.Errorf("%w: Vm=%g m³/mol", ErrDomain, Vm))
	}
	return nil
}

func finite(op string, T, Vm, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, stateErr(op, T, 0, fmt.Errorf("%w: Vm=%g m³/mol", ErrUnphysical, Vm))
	}
	return v, nil
}

// coexistence reports whether (T, Vm) lies between the saturated volumes,
// returning the saturation pressure, both roots and the vapor quality.
func (c *Cubic) coexistence(T, Vm float64) (psat, zl, zv, x float64, ok bool) {
	if T >= c.params.Tc {
		return 0, 0, 0, 0, false
	}
	psat, err := c.SaturationPressure(T)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	roots, err := c.ZFactors(T, psat)
	if err != nil || len(roots) < 2 {
		return 0, 0, 0, 0, false
	}

	zl, zv = roots[0], roots[len(roots)-1]
	vl, vv := zl*R*T/psat, zv*R*T/psat
	if Vm < vl || Vm > vv {
		return 0, 0, 0, 0, false
	}
	return psat, zl, zv, clamp01((Vm - vl) / (vv - vl)), true
}

// TotalEntropy returns the specific entropy [J/(kg·K)] at (T, Vm) relative to
// the reference state. Inside the saturation dome the saturated-phase
// residuals are blended by quality.
func (c *Cubic) TotalEntropy(T, Vm float64) (float64, error) {
	const op = "total entropy"
	if err := c.checkVolume(op, T, Vm); err != nil {
		return math.NaN(), err
	}

	if psat, zl, zv, x, ok := c.coexistence(T, Vm); ok {
		sl := c.model.ResidualEntropy(T, psat, zl)
		sv := c.model.ResidualEntropy(T, psat, zv)
		return finite(op, T, Vm, (1-x)*sl+x*sv+c.idealEntropy(T, psat)-c.sRef)
	}

	P := c.model.Pressure(T, Vm)
	Z := Vm * P / (R * T)
	return finite(op, T, Vm, c.model.ResidualEntropy(T, P, Z)+c.idealEntropy(T, P)-c.sRef)
}

// TotalEnthalpy returns the specific enthalpy [J/kg] at (T, Vm) relative to
// the reference state.
func (c *Cubic) TotalEnthalpy(T, Vm float64) (float64, error) {
	const op = "total enthalpy"
	if err := c.checkVolume(op, T, Vm); err != nil {
		return math.NaN(), err
	}

	if psat, zl, zv, x, ok := c.coexistence(T, Vm); ok {
		hl := c.model.ResidualEnthalpy(T, psat, zl)
		hv := c.model.ResidualEnthalpy(T, psat, zv)
		return finite(op, T, Vm, (1-x)*hl+x*hv+c.idealEnthalpy(T)-c.hRef)
	}

	P := c.model.Pressure(T, Vm)
	Z := Vm * P / (R * T)
	return finite(op, T, Vm, c.model.ResidualEnthalpy(T, P, Z)+c.idealEnthalpy(T)-c.hRef)
}

// Entropy returns the specific entropy at (T, P) with vapor quality x.
func (c *Cubic) Entropy(T, P, x float64) (float64, error) {
	return c.atState(T, P, x, c.TotalEntropy)
}

// Enthalpy returns the specific enthalpy at (T, P) with vapor quality x.
func (c *Cubic) Enthalpy(T, P, x float64) (float64, error) {
	return c.atState(T, P, x, c.TotalEnthalpy)
}

// atState picks the root for (T, P). A single root is used directly. With
// several roots below Tc, a pressure clearly above the saturation pressure
// selects the liquid root and one clearly below selects the vapor root;
// inside the dead band the saturated phases are blended by x. When the cached
// curve yields no saturated pair, the liquid-like and vapor-like roots at
// (T, P) are blended instead.
func (c *Cubic) atState(T, P, x float64, total func(T, Vm float64) (float64, error)) (float64, error) {
	roots, err := c.ZFactors(T, P)
	if err != nil {
		return math.NaN(), err
	}
	volume := func(z float64) float64 { return z * R * T / P }

	if len(roots) == 1 {
		return total(T, volume(roots[0]))
	}

	if T < c.params.Tc {
		psat, err := c.SaturationPressure(T)
		if err != nil {
			return math.NaN(), err
		}
		switch {
		case P > psat*(1+c.deadBand):
			return total(T, volume(roots[0]))
		case P < psat*(1-c.deadBand):
			return total(T, volume(roots[len(roots)-1]))
		}
	}

	vl, vv, err := c.SaturationVolumes(T)
	if err != nil {
		if !errors.Is(err, ErrNoSaturation) {
			return math.NaN(), err
		}
		c.log.WithFields(logrus.Fields{"T": T, "P": P}).Debug("no saturated pair, using state roots")
		vl, vv = volume(roots[0]), volume(roots[len(roots)-1])
	}
	liquid, err := total(T, vl)
	if err != nil {
		return math.NaN(), err
	}
	vapor, err := total(T, vv)
	if err != nil {
		return math.NaN(), err
	}

	x = clamp01(x)
	return (1-x)*liquid + x*vapor, nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
