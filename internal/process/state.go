package process

import (
	"fmt"
	"math"
)

// State is a single-component fluid state. States are values; every
// transformation returns a new one.
type State struct {
	T float64 `json:"temperature" yaml:"temperature"`             // [K]
	P float64 `json:"pressure" yaml:"pressure"`                   // [Pa]
	H float64 `json:"specific_enthalpy" yaml:"specific_enthalpy"` // [J/kg]
	X float64 `json:"vapor_quality" yaml:"vapor_quality"`         // 0 liquid, 1 vapor
}

// NewState clamps T and P to be non-negative and x to [0, 1].
func NewState(T, P, h, x float64) State {
	return State{
		T: math.Max(0, T),
		P: math.Max(0, P),
		H: h,
		X: math.Max(0, math.Min(1, x)),
	}
}

// Finite reports whether every field is a number.
func (s State) Finite() bool {
	for _, v := range [...]float64{s.T, s.P, s.H, s.X} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) String() string {
	return fmt.Sprintf("T=%.2f K P=%.0f Pa h=%.0f J/kg x=%.3f", s.T, s.P, s.H, s.X)
}
