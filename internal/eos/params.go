package eos

import (
	"fmt"
	"sort"
	"strings"
)

// Params are the constants that characterise a pure fluid.
type Params struct {
	Name  string  `yaml:"name" json:"name"`
	Tc    float64 `yaml:"tc" json:"tc"`                 // critical temperature [K]
	Pc    float64 `yaml:"pc" json:"pc"`                 // critical pressure [Pa]
	Omega float64 `yaml:"omega" json:"omega"`           // acentric factor
	M     float64 `yaml:"molar_mass" json:"molar_mass"` // [kg/mol]
}

// Validate checks that the constants describe a physical fluid.
func (p Params) Validate() error {
	if p.Tc <= 0 {
		return fmt.Errorf("%w: critical temperature %g K must be positive", ErrInvalidParams, p.Tc)
	}
	if p.Pc <= 0 {
		return fmt.Errorf("%w: critical pressure %g Pa must be positive", ErrInvalidParams, p.Pc)
	}
	if p.M <= 0 {
		return fmt.Errorf("%w: molar mass %g kg/mol must be positive", ErrInvalidParams, p.M)
	}
	return nil
}

// Water returns the constants for H2O.
func Water() Params {
	return Params{Name: "water", Tc: 647.1, Pc: 22.064e6, Omega: 0.344, M: 18.01528e-3}
}

// Ammonia returns the constants for NH3.
func Ammonia() Params {
	return Params{Name: "ammonia", Tc: 405.4, Pc: 11.333e6, Omega: 0.253, M: 17.031e-3}
}

// CarbonDioxide returns the constants for CO2.
func CarbonDioxide() Params {
	return Params{Name: "co2", Tc: 304.13, Pc: 7.3773e6, Omega: 0.224, M: 44.01e-3}
}

// Methane returns the constants for CH4.
func Methane() Params {
	return Params{Name: "methane", Tc: 190.56, Pc: 4.599e6, Omega: 0.011, M: 16.043e-3}
}

var fluids = map[string]func() Params{
	"water":   Water,
	"ammonia": Ammonia,
	"co2":     CarbonDioxide,
	"methane": Methane,
}

// Lookup returns the built-in fluid with the given name.
func Lookup(name string) (Params, error) {
	f, ok := fluids[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Params{}, fmt.Errorf("eos: unknown fluid %q (available: %s)", name, strings.Join(Fluids(), ", "))
	}
	return f(), nil
}

// Fluids lists the built-in fluid names.
func Fluids() []string {
	names := make([]string, 0, len(fluids))
	for name := range fluids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
