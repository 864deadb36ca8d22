// Package table implements tabulated functions: sampled one- and
// two-dimensional lookups with piecewise-linear interpolation.
//
// Tables are populated once, by sampling a source function over a grid that is
// uniform in a transformed axis space ([Linear] or [Logarithmic]), and are
// read-only afterwards. Lookups first try grid arithmetic to locate the two
// bracketing samples and fall back to a floor/ceiling search when floating
// point drift leaves the computed keys absent.
//
// # Thread Safety
//
// A populated table is safe for concurrent reads. [Library] swaps whole table
// sets atomically on reload; readers observe either the old or the new set.
package table
