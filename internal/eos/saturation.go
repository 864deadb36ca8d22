package eos

import (
	"fmt"
	"math"

	"github.com/san-kum/realfluid/internal/solver"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/integrate"
)

const (
	spinodalGrowth    = 1.05
	spinodalMaxVolume = 1e6 // [m³/mol]

	areaGrowth = 1.01

	// returned by the area function when (T, P) has no liquid/vapor pair
	noCoexistence = math.MaxFloat32

	saturationFloor = 1e-8 // [Pa]
	// bisection runs on ln(P), so this is a relative tolerance
	saturationLogTolerance = 1e-9

	fallbackStep       = 100
	fallbackDx         = 1
	fallbackTolerance  = 2
	fallbackIterations = 500
)

// FindSpinodalPoints returns the molar volumes bounding the unstable part of
// the T isotherm, liquid side first. It marches geometrically from just above
// the co-volume and records each sign change of dP/dV. At or above Tc the
// result is empty.
func (c *Cubic) FindSpinodalPoints(T float64) []float64 {
	if !(T > 0) || T >= c.params.Tc {
		return nil
	}
	return c.spinodals(T, c.model.CoVolume()*minZFactor, spinodalMaxVolume)
}

func (c *Cubic) spinodals(T, vMin, vMax float64) []float64 {
	var found []float64

	prevV := vMin
	prevP := c.model.Pressure(T, prevV)
	prevSlope := math.NaN()

	for v := vMin * spinodalGrowth; v <= vMax; v *= spinodalGrowth {
		p := c.model.Pressure(T, v)
		slope := (p - prevP) / (v - prevV)

		if !math.IsNaN(prevSlope) && prevSlope*slope <= 0 {
			found = append(found, v)
			if len(found) == 2 {
				break
			}
		}
		prevV, prevP, prevSlope = v, p, slope
	}
	return found
}

// areaDifference is the Maxwell construction residual at trial pressure P:
// the integral of P(T, V) between the saturated volumes minus the rectangle
// P·(Vv - Vl). It is zero at the saturation pressure.
func (c *Cubic) areaDifference(T, P float64) float64 {
	roots, err := c.ZFactors(T, P)
	if err != nil || len(roots) < 2 {
		return noCoexistence
	}
	vl := roots[0] * R * T / P
	vv := roots[len(roots)-1] * R * T / P
	if math.Abs(vv-vl) < 1e-9 {
		return noCoexistence
	}

	n := int(math.Log(vv/vl)/math.Log(areaGrowth)) + 2
	vs := make([]float64, 0, n)
	ps := make([]float64, 0, n)
	for v := vl; v < vv; v *= areaGrowth {
		vs = append(vs, v)
		ps = append(ps, c.model.Pressure(T, v))
	}
	vs = append(vs, vv)
	ps = append(ps, c.model.Pressure(T, vv))

	return integrate.Trapezoidal(vs, ps) - P*(vv-vl)
}

// SolveSaturationPressure runs the equal-area search at T without consulting
// the cache. The search is bracketed by the pressures at the two spinodal
// volumes; bisection on ln(P) is tried first, then gradient descent on the
// absolute area difference.
func (c *Cubic) SolveSaturationPressure(T float64) (float64, error) {
	const op = "saturation pressure"
	if !(T > 0) || T >= c.params.Tc {
		return math.NaN(), stateErr(op, T, 0, ErrDomain)
	}

	spin := c.FindSpinodalPoints(T)
	if len(spin) < 2 {
		return math.NaN(), stateErr(op, T, 0, fmt.Errorf("%w: %d spinodal points", ErrNoSaturation, len(spin)))
	}

	pMin := math.Max(saturationFloor, c.model.Pressure(T, spin[0]))
	pMax := c.model.Pressure(T, spin[1])
	if !(pMax > pMin) {
		return math.NaN(), stateErr(op, T, 0, fmt.Errorf("%w: empty bracket [%g, %g]", ErrNoSaturation, pMin, pMax))
	}

	area := func(P float64) float64 { return c.areaDifference(T, P) }
	logArea := func(u float64) float64 { return area(math.Exp(u)) }

	u, err := solver.Dichotomy(logArea, math.Log(pMin), math.Log(pMax), saturationLogTolerance)
	P := math.Exp(u)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"T": T, "p_min": pMin, "p_max": pMax,
		}).Debug("bisection failed, falling back to gradient descent")

		P, err = solver.GradientDescent(
			func(p float64) float64 { return math.Abs(area(p)) },
			(pMin+pMax)/2, fallbackStep, fallbackDx,
			solver.WithTolerance(fallbackTolerance),
			solver.WithMaxIterations(fallbackIterations),
		)
		if err != nil {
			return math.NaN(), stateErr(op, T, 0, fmt.Errorf("%w: %v", ErrNoSaturation, err))
		}
	}

	return math.Max(saturationFloor, P), nil
}

// SaturationPressure interpolates the cached saturation curve. Below the
// cached range the lowest sample is returned.
func (c *Cubic) SaturationPressure(T float64) (float64, error) {
	if !(T > 0) || T >= c.params.Tc {
		return math.NaN(), stateErr("saturation pressure", T, 0, ErrDomain)
	}
	return c.saturation.F(T)
}

// SaturationTemperature inverts the cached saturation curve.
func (c *Cubic) SaturationTemperature(P float64) (float64, error) {
	if !(P > 0) || P >= c.params.Pc {
		return math.NaN(), stateErr("saturation temperature", 0, P, ErrDomain)
	}
	return c.saturation.InverseF(P)
}

// SaturationVolumes returns the saturated liquid and vapor molar volumes at
// T. At or above Tc both are the critical volume. When the cached pressure
// does not yield two roots the pair is NaN and ErrNoSaturation is returned.
func (c *Cubic) SaturationVolumes(T float64) (vl, vv float64, err error) {
	const op = "saturation volumes"
	if !(T > 0) {
		return math.NaN(), math.NaN(), stateErr(op, T, 0, ErrDomain)
	}
	if T >= c.params.Tc {
		return c.vc, c.vc, nil
	}

	psat, err := c.SaturationPressure(T)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	roots, err := c.ZFactors(T, psat)
	if err != nil || len(roots) < 2 {
		c.log.WithFields(logrus.Fields{"T": T, "P": psat}).Warn("saturation pressure outside two-phase region")
		return math.NaN(), math.NaN(), stateErr(op, T, psat, ErrNoSaturation)
	}

	vl = roots[0] * R * T / psat
	vv = roots[len(roots)-1] * R * T / psat
	return vl, vv, nil
}
