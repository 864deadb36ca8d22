package eos

import "math"

// VanDerWaals holds the van der Waals constants of one fluid. The attraction
// parameter does not depend on temperature.
type VanDerWaals struct {
	p Params
	a float64
	b float64
}

// NewVanDerWaalsModel derives the van der Waals constants from p.
func NewVanDerWaalsModel(p Params) (*VanDerWaals, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &VanDerWaals{
		p: p,
		a: 27.0 / 64 * R * R * p.Tc * p.Tc / p.Pc,
		b: R * p.Tc / p.Pc / 8,
	}, nil
}

// NewVanDerWaals returns a van der Waals engine for p.
func NewVanDerWaals(p Params, opts ...Option) (*Cubic, error) {
	m, err := NewVanDerWaalsModel(p)
	if err != nil {
		return nil, err
	}
	return New(m, opts...)
}

func (m *VanDerWaals) Params() Params    { return m.p }
func (m *VanDerWaals) CoVolume() float64 { return m.b }

func (m *VanDerWaals) Pressure(T, Vm float64) float64 {
	return R*T/(Vm-m.b) - m.a/(Vm*Vm)
}

func (m *VanDerWaals) DPdV(T, Vm float64) float64 {
	return -R*T/((Vm-m.b)*(Vm-m.b)) + 2*m.a/(Vm*Vm*Vm)
}

func (m *VanDerWaals) DPdT(T, Vm float64) float64 {
	return R / (Vm - m.b)
}

func (m *VanDerWaals) dimensionless(T, P float64) (A, B float64) {
	return m.a * P / (R * R * T * T), m.b * P / (R * T)
}

func (m *VanDerWaals) ZCoefficients(T, P float64) (c2, c3, c4 float64) {
	A, B := m.dimensionless(T, P)
	return -(1 + B), A, -A * B
}

func (m *VanDerWaals) FugacityCoefficient(T, P, Z float64) float64 {
	const eps = 1e-9
	A, B := m.dimensionless(T, P)
	if B < eps {
		return 1
	}
	if math.Abs(Z-B) < eps {
		return math.NaN()
	}
	return math.Exp(Z - 1 - math.Log(Z-B) - A/Z)
}

func (m *VanDerWaals) ResidualEntropy(T, P, Z float64) float64 {
	_, B := m.dimensionless(T, P)
	return R * math.Log(Z-B) / m.p.M
}

func (m *VanDerWaals) ResidualEnthalpy(T, P, Z float64) float64 {
	A, _ := m.dimensionless(T, P)
	return R * T * (Z - 1 - A/Z) / m.p.M
}
