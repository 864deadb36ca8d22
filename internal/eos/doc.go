// Package eos implements cubic equations of state for pure fluids.
//
// A Model supplies the closed forms of one cubic equation (Peng-Robinson,
// van der Waals). Cubic wraps a Model with everything that only depends on
// those closed forms: compressibility roots, spinodal search, the
// equal-area saturation solver and its cached curve, and total entropy and
// enthalpy with two-phase blending.
//
// A Cubic is immutable once constructed and safe for concurrent use.
package eos
