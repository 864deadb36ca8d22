package process

import (
	"fmt"
	"math"
)

// Transformer resolves states for one fluid.
type Transformer interface {
	// Resolve returns the state with pressure P and specific enthalpy h.
	Resolve(P, h float64) (State, error)

	// IsentropicChange moves st to pressure P at constant entropy.
	IsentropicChange(st State, P float64) (State, error)
}

// IsentropicExpansion expands st reversibly to st.P / factor.
func IsentropicExpansion(t Transformer, st State, factor float64) (State, error) {
	if !(factor > 0) {
		return State{}, fmt.Errorf("%w: expansion factor %g", ErrInvalidArgument, factor)
	}
	return t.IsentropicChange(st, st.P/factor)
}

// IsentropicCompression compresses st reversibly to st.P · factor.
func IsentropicCompression(t Transformer, st State, factor float64) (State, error) {
	if !(factor > 0) {
		return State{}, fmt.Errorf("%w: compression factor %g", ErrInvalidArgument, factor)
	}
	return t.IsentropicChange(st, st.P*factor)
}

// IsobaricTransfer adds dh [J/kg] at constant pressure.
func IsobaricTransfer(t Transformer, st State, dh float64) (State, error) {
	if dh == 0 {
		return st, nil
	}
	return t.Resolve(st.P, st.H+dh)
}

// RealExpansion is an adiabatic expansion with isentropic efficiency yield:
// the fluid gives up yield times the reversible enthalpy drop.
func RealExpansion(t Transformer, st State, yield, factor float64) (State, error) {
	if !(yield > 0 && yield <= 1) {
		return State{}, fmt.Errorf("%w: yield %g", ErrInvalidArgument, yield)
	}
	rev, err := IsentropicExpansion(t, st, factor)
	if err != nil {
		return State{}, err
	}
	dh := rev.H - st.H
	return IsobaricTransfer(t, rev, -dh*(1-yield))
}

// RealCompression is an adiabatic compression with isentropic efficiency
// yield: the fluid receives the reversible enthalpy rise divided by yield.
func RealCompression(t Transformer, st State, yield, factor float64) (State, error) {
	if !(yield > 0 && yield <= 1) {
		return State{}, fmt.Errorf("%w: yield %g", ErrInvalidArgument, yield)
	}
	rev, err := IsentropicCompression(t, st, factor)
	if err != nil {
		return State{}, err
	}
	dh := rev.H - st.H
	return IsobaricTransfer(t, rev, dh/yield-dh)
}

// Mix combines two streams by amount-weighted pressure and enthalpy.
func Mix(t Transformer, a State, amountA float64, b State, amountB float64) (State, error) {
	if amountA < 0 || amountB < 0 || math.IsNaN(amountA) || math.IsNaN(amountB) {
		return State{}, fmt.Errorf("%w: amounts %g, %g", ErrInvalidArgument, amountA, amountB)
	}
	switch {
	case amountA == 0 && amountB == 0:
		return State{}, fmt.Errorf("%w: both amounts are zero", ErrInvalidArgument)
	case amountA == 0:
		return b, nil
	case amountB == 0:
		return a, nil
	}
	if !a.Finite() || !b.Finite() {
		return State{}, fmt.Errorf("%w: cannot mix %v with %v", ErrInvalidArgument, a, b)
	}

	wa := amountA / (amountA + amountB)
	wb := 1 - wa
	return t.Resolve(a.P*wa+b.P*wb, a.H*wa+b.H*wb)
}
