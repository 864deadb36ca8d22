package eos

// R is the molar gas constant [J/(mol·K)].
const R = 8.314462618

// Reference state at which total entropy and enthalpy are zero.
const (
	TRef = 298.15   // [K]
	PRef = 101325.0 // [Pa]
)

// Model is the closed-form part of a cubic equation of state. Molar
// quantities are per mole; residual properties are per kilogram.
type Model interface {
	Params() Params

	// CoVolume is the excluded molar volume b [m³/mol].
	CoVolume() float64

	Pressure(T, Vm float64) float64
	DPdV(T, Vm float64) float64
	DPdT(T, Vm float64) float64

	// ZCoefficients returns c2, c3, c4 of Z³ + c2·Z² + c3·Z + c4 = 0.
	ZCoefficients(T, P float64) (c2, c3, c4 float64)

	FugacityCoefficient(T, P, Z float64) float64

	// ResidualEntropy is the entropy departure from the ideal gas at the
	// same T and P [J/(kg·K)].
	ResidualEntropy(T, P, Z float64) float64

	// ResidualEnthalpy is the enthalpy departure [J/kg].
	ResidualEnthalpy(T, P, Z float64) float64
}

// Phase classifies a (T, P) state.
type Phase int

const (
	Liquid Phase = iota
	TwoPhase
	Vapor
	Supercritical
)

func (p Phase) String() string {
	switch p {
	case Liquid:
		return "liquid"
	case TwoPhase:
		return "two-phase"
	case Vapor:
		return "vapor"
	case Supercritical:
		return "supercritical"
	default:
		return "unknown"
	}
}
