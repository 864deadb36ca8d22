package process

import "fmt"

// Cycle describes a simple open power cycle: compress, heat at constant
// pressure, then expand. A yield of 1 makes a leg isentropic.
type Cycle struct {
	CompressionRatio float64 `yaml:"compression_ratio" json:"compression_ratio"`
	Heat             float64 `yaml:"heat" json:"heat"` // [J/kg]
	ExpansionRatio   float64 `yaml:"expansion_ratio" json:"expansion_ratio"`
	CompressorYield  float64 `yaml:"compressor_yield" json:"compressor_yield"`
	TurbineYield     float64 `yaml:"turbine_yield" json:"turbine_yield"`
}

// Step is one recorded point of a cycle run.
type Step struct {
	Name  string `json:"name"`
	State State  `json:"state"`
}

// Step names recorded by Run.
const (
	StepInlet      = "inlet"
	StepCompressed = "compressed"
	StepHeated     = "heated"
	StepExpanded   = "expanded"
)

// Run drives start through the cycle with t and returns the four points.
func (c Cycle) Run(t Transformer, start State) ([]Step, error) {
	steps := []Step{{StepInlet, start}}

	compressed, err := RealCompression(t, start, c.CompressorYield, c.CompressionRatio)
	if err != nil {
		return steps, fmt.Errorf("compression: %w", err)
	}
	steps = append(steps, Step{StepCompressed, compressed})

	heated, err := IsobaricTransfer(t, compressed, c.Heat)
	if err != nil {
		return steps, fmt.Errorf("heating: %w", err)
	}
	steps = append(steps, Step{StepHeated, heated})

	expanded, err := RealExpansion(t, heated, c.TurbineYield, c.ExpansionRatio)
	if err != nil {
		return steps, fmt.Errorf("expansion: %w", err)
	}
	return append(steps, Step{StepExpanded, expanded}), nil
}

// NetWork returns the specific work delivered by the cycle [J/kg]: turbine
// output minus compressor input.
func NetWork(steps []Step) float64 {
	if len(steps) < 4 {
		return 0
	}
	in := steps[1].State.H - steps[0].State.H
	out := steps[2].State.H - steps[3].State.H
	return out - in
}
