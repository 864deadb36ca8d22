package eos

import "math"

const sqrt2 = math.Sqrt2

// PengRobinson holds the Peng-Robinson constants of one fluid.
type PengRobinson struct {
	p     Params
	kappa float64
	a0    float64
	b     float64
}

// NewPengRobinsonModel derives the Peng-Robinson constants from p.
func NewPengRobinsonModel(p Params) (*PengRobinson, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &PengRobinson{
		p:     p,
		kappa: 0.37464 + 1.54226*p.Omega - 0.26992*p.Omega*p.Omega,
		a0:    0.45724 * R * R * p.Tc * p.Tc / p.Pc,
		b:     0.07780 * R * p.Tc / p.Pc,
	}, nil
}

// NewPengRobinson returns a Peng-Robinson engine for p.
func NewPengRobinson(p Params, opts ...Option) (*Cubic, error) {
	m, err := NewPengRobinsonModel(p)
	if err != nil {
		return nil, err
	}
	return New(m, opts...)
}

func (m *PengRobinson) Params() Params    { return m.p }
func (m *PengRobinson) CoVolume() float64 { return m.b }
func (m *PengRobinson) Kappa() float64    { return m.kappa }

func (m *PengRobinson) alpha(T float64) float64 {
	s := 1 + m.kappa*(1-math.Sqrt(T/m.p.Tc))
	return s * s
}

func (m *PengRobinson) dAlphadT(T float64) float64 {
	sqrtTr := math.Sqrt(T / m.p.Tc)
	return -m.kappa * (1 + m.kappa*(1-sqrtTr)) / (m.p.Tc * sqrtTr)
}

// A is the temperature-dependent attraction parameter a(T).
func (m *PengRobinson) A(T float64) float64 { return m.a0 * m.alpha(T) }

// DADT is da/dT.
func (m *PengRobinson) DADT(T float64) float64 { return m.a0 * m.dAlphadT(T) }

func (m *PengRobinson) denominator(Vm float64) float64 {
	return Vm*(Vm+m.b) + m.b*(Vm-m.b)
}

func (m *PengRobinson) Pressure(T, Vm float64) float64 {
	return R*T/(Vm-m.b) - m.A(T)/m.denominator(Vm)
}

func (m *PengRobinson) DPdV(T, Vm float64) float64 {
	d := m.denominator(Vm)
	return -R*T/((Vm-m.b)*(Vm-m.b)) + m.A(T)*(2*Vm+2*m.b)/(d*d)
}

func (m *PengRobinson) DPdT(T, Vm float64) float64 {
	return R/(Vm-m.b) - m.DADT(T)/m.denominator(Vm)
}

func (m *PengRobinson) dimensionless(T, P float64) (A, B float64) {
	A = m.A(T) * P / (R * R * T * T)
	B = m.b * P / (R * T)
	return A, B
}

func (m *PengRobinson) ZCoefficients(T, P float64) (c2, c3, c4 float64) {
	A, B := m.dimensionless(T, P)
	c2 = -(1 - B)
	c3 = A - 3*B*B - 2*B
	c4 = -(A*B - B*B - B*B*B)
	return c2, c3, c4
}

// logTerm is ln((Z + (1+√2)B) / (Z + (1-√2)B)).
func logTerm(Z, B float64) float64 {
	return math.Log((Z + (1+sqrt2)*B) / (Z + (1-sqrt2)*B))
}

// FugacityCoefficient returns φ for the phase with compressibility Z. It is 1
// in the ideal-gas limit and NaN when Z collapses onto B.
func (m *PengRobinson) FugacityCoefficient(T, P, Z float64) float64 {
	const eps = 1e-9
	A, B := m.dimensionless(T, P)
	if B < eps {
		return 1
	}
	if math.Abs(Z-B) < eps {
		return math.NaN()
	}
	lnPhi := Z - 1 - math.Log(Z-B) - A/(2*sqrt2*B)*logTerm(Z, B)
	return math.Exp(lnPhi)
}

func (m *PengRobinson) ResidualEntropy(T, P, Z float64) float64 {
	_, B := m.dimensionless(T, P)
	s := R*math.Log(Z-B) + m.DADT(T)/(2*sqrt2*m.b)*logTerm(Z, B)
	return s / m.p.M
}

func (m *PengRobinson) ResidualEnthalpy(T, P, Z float64) float64 {
	_, B := m.dimensionless(T, P)
	h := R*T*(Z-1) + (T*m.DADT(T)-m.A(T))/(2*sqrt2*m.b)*logTerm(Z, B)
	return h / m.p.M
}
