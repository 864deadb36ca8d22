package config

// Presets holds ready-made cycle settings per fluid.
var Presets = map[string]map[string]*Config{
	"water": {
		"rankine": {
			Fluid: "water", Model: "pr", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 300, Pressure: 101300,
				CompressionRatio: 10, Heat: 2e6, ExpansionRatio: 10,
				CompressorYield: 1, TurbineYield: 1,
			},
		},
		"lossy": {
			Fluid: "water", Model: "pr", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 300, Pressure: 101300,
				CompressionRatio: 10, Heat: 2e6, ExpansionRatio: 10,
				CompressorYield: 0.75, TurbineYield: 0.85,
			},
		},
		"superheated": {
			Fluid: "water", Model: "pr", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 300, Pressure: 101300,
				CompressionRatio: 40, Heat: 3.2e6, ExpansionRatio: 40,
				CompressorYield: 0.8, TurbineYield: 0.9,
			},
		},
		"vdw": {
			Fluid: "water", Model: "vdw", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 300, Pressure: 101300,
				CompressionRatio: 10, Heat: 2e6, ExpansionRatio: 10,
				CompressorYield: 1, TurbineYield: 1,
			},
		},
	},
	"ammonia": {
		"low_lift": {
			Fluid: "ammonia", Model: "pr", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 230, Pressure: 101300,
				CompressionRatio: 8, Heat: 1.2e6, ExpansionRatio: 8,
				CompressorYield: 0.8, TurbineYield: 0.85,
			},
		},
	},
	"co2": {
		"transcritical": {
			Fluid: "co2", Model: "pr", DeadBand: DefaultDeadBand,
			Cycle: CycleConfig{
				Temperature: 280, Pressure: 5e6,
				CompressionRatio: 3, Heat: 2e5, ExpansionRatio: 3,
				CompressorYield: 0.8, TurbineYield: 0.85,
			},
		},
	},
}

// GetPreset returns a copy of the named preset with unset sections filled
// from the defaults.
func GetPreset(fluid, preset string) *Config {
	fluidPresets, ok := Presets[fluid]
	if !ok {
		return nil
	}
	p, ok := fluidPresets[preset]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Tables.Dir == "" {
		cfg.Tables = DefaultConfig().Tables
	}
	if cfg.RunsDir == "" {
		cfg.RunsDir = DefaultRunsDir
	}
	return &cfg
}

func ListPresets(fluid string) []string {
	fluidPresets, ok := Presets[fluid]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fluidPresets))
	for name := range fluidPresets {
		names = append(names, name)
	}
	return names
}
