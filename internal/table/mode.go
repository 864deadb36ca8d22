package table

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// StepMode is an axis transform: samples are evenly spaced in Forward(x).
type StepMode int

const (
	Linear StepMode = iota
	Logarithmic
)

// Forward maps a coordinate into the transformed axis space.
func (m StepMode) Forward(x float64) float64 {
	if m == Logarithmic {
		return math.Log(x)
	}
	return x
}

// Inverse maps a transformed coordinate back.
func (m StepMode) Inverse(x float64) float64 {
	if m == Logarithmic {
		return math.Exp(x)
	}
	return x
}

func (m StepMode) String() string {
	switch m {
	case Linear:
		return "LINEAR"
	case Logarithmic:
		return "LOGARITHMIC"
	default:
		return fmt.Sprintf("StepMode(%d)", int(m))
	}
}

// ParseStepMode accepts LINEAR or LOGARITHMIC, case-insensitively.
func ParseStepMode(s string) (StepMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LINEAR":
		return Linear, nil
	case "LOGARITHMIC":
		return Logarithmic, nil
	default:
		return Linear, fmt.Errorf("%w: unknown step mode %q", ErrDefinition, s)
	}
}

func (m StepMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *StepMode) UnmarshalText(text []byte) error {
	parsed, err := ParseStepMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m StepMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *StepMode) UnmarshalYAML(value *yaml.Node) error {
	return m.UnmarshalText([]byte(value.Value))
}
