package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/process"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFluid            = "water"
	DefaultModel            = "pr"
	DefaultDeadBand         = 0.01
	DefaultCompressionRatio = 10.0
	DefaultHeat             = 2e6 // [J/kg]
	DefaultExpansionRatio   = 10.0
	DefaultYield            = 1.0
	DefaultRunsDir          = "runs"
	DefaultTablesDir        = "tables"
)

type Config struct {
	Fluid      string           `yaml:"fluid"`
	Model      string           `yaml:"model"`
	DeadBand   float64          `yaml:"dead_band"`
	Saturation SaturationConfig `yaml:"saturation"`
	Search     SearchConfig     `yaml:"search"`
	Cycle      CycleConfig      `yaml:"cycle"`
	Tables     TablesConfig     `yaml:"tables"`
	RunsDir    string           `yaml:"runs_dir"`
}

// SaturationConfig sizes the cached saturation curve. Zero values keep the
// fluid-scaled defaults.
type SaturationConfig struct {
	TMin     float64 `yaml:"t_min"`
	TStep    float64 `yaml:"t_step"`
	LogPStep float64 `yaml:"log_p_step"`
}

// SearchConfig bounds single-phase temperature searches. Zero values keep
// 0.3·Tc to 5·Tc.
type SearchConfig struct {
	TLow  float64 `yaml:"t_low"`
	THigh float64 `yaml:"t_high"`
}

type CycleConfig struct {
	Temperature      float64 `yaml:"temperature"`
	Pressure         float64 `yaml:"pressure"`
	CompressionRatio float64 `yaml:"compression_ratio"`
	Heat             float64 `yaml:"heat"`
	ExpansionRatio   float64 `yaml:"expansion_ratio"`
	CompressorYield  float64 `yaml:"compressor_yield"`
	TurbineYield     float64 `yaml:"turbine_yield"`
}

type TablesConfig struct {
	Dir  string            `yaml:"dir"`
	Grid process.TableGrid `yaml:"grid"`
}

func DefaultConfig() *Config {
	return &Config{
		Fluid:    DefaultFluid,
		Model:    DefaultModel,
		DeadBand: DefaultDeadBand,
		Cycle: CycleConfig{
			Temperature:      process.DefaultTemperature,
			Pressure:         process.DefaultPressure,
			CompressionRatio: DefaultCompressionRatio,
			Heat:             DefaultHeat,
			ExpansionRatio:   DefaultExpansionRatio,
			CompressorYield:  DefaultYield,
			TurbineYield:     DefaultYield,
		},
		Tables: TablesConfig{
			Dir:  DefaultTablesDir,
			Grid: process.DefaultTableGrid(),
		},
		RunsDir: DefaultRunsDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EOS builds the configured equation of state.
func (c *Config) EOS(log logrus.FieldLogger) (*eos.Cubic, error) {
	params, err := eos.Lookup(c.Fluid)
	if err != nil {
		return nil, err
	}

	opts := []eos.Option{
		eos.WithLogger(log),
		eos.WithSaturationGrid(c.Saturation.TMin, c.Saturation.TStep, c.Saturation.LogPStep),
	}
	if c.DeadBand > 0 {
		opts = append(opts, eos.WithDeadBand(c.DeadBand))
	}

	switch strings.ToLower(c.Model) {
	case "", "pr", "peng-robinson", "pengrobinson":
		return eos.NewPengRobinson(params, opts...)
	case "vdw", "van-der-waals", "vanderwaals":
		return eos.NewVanDerWaals(params, opts...)
	default:
		return nil, fmt.Errorf("unknown model %q (available: pr, vdw)", c.Model)
	}
}

// Engine wraps the configured equation of state in a process engine.
func (c *Config) Engine(log logrus.FieldLogger) (*process.Engine, error) {
	cubic, err := c.EOS(log)
	if err != nil {
		return nil, err
	}
	return process.NewEngine(cubic,
		process.WithTemperatureBounds(c.Search.TLow, c.Search.THigh),
		process.WithEngineLogger(log),
	), nil
}

func (c *Config) GetCycle() process.Cycle {
	return process.Cycle{
		CompressionRatio: c.Cycle.CompressionRatio,
		Heat:             c.Cycle.Heat,
		ExpansionRatio:   c.Cycle.ExpansionRatio,
		CompressorYield:  c.Cycle.CompressorYield,
		TurbineYield:     c.Cycle.TurbineYield,
	}
}

// GetStartState resolves the cycle inlet as liquid at the configured
// temperature and pressure.
func (c *Config) GetStartState(e *process.Engine) (process.State, error) {
	h, err := e.Enthalpy(0, c.Cycle.Temperature, c.Cycle.Pressure)
	if err != nil {
		return process.State{}, err
	}
	return process.NewState(c.Cycle.Temperature, c.Cycle.Pressure, h, 0), nil
}
