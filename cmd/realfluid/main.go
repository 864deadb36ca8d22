package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/realfluid/internal/config"
	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/process"
	"github.com/san-kum/realfluid/internal/solver"
	"github.com/san-kum/realfluid/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	fluid      string
	eosModel   string
	logLevel   string
	deadBand   float64

	// state and saturation queries
	pressure float64
	quality  float64

	// cycle
	startT          float64
	startP          float64
	compression     float64
	heat            float64
	expansion       float64
	compressorYield float64
	turbineYield    float64
	tablesDir       string
	noSave          bool

	// tables and plots
	points  int
	outFile string
	width   int
	height  int
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "realfluid",
		Short: "real-fluid properties from cubic equations of state",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			solver.SetLogger(log)
			return nil
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".realfluid", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&fluid, "fluid", config.DefaultFluid, "fluid ("+strings.Join(eos.Fluids(), ", ")+")")
	pf.StringVar(&eosModel, "model", config.DefaultModel, "equation of state (pr, vdw)")
	pf.Float64Var(&deadBand, "dead-band", config.DefaultDeadBand, "relative two-phase band around Psat")
	pf.StringVar(&logLevel, "log-level", "warning", "log level (debug, info, warning, error)")

	satCmd := &cobra.Command{
		Use:   "sat [temperature]",
		Short: "saturation pressure at T, or saturation temperature with --pressure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saturation,
	}
	satCmd.Flags().Float64Var(&pressure, "pressure", 0, "pressure [Pa]; prints the saturation temperature")

	zCmd := &cobra.Command{
		Use:   "zfactors [temperature] [pressure]",
		Short: "admissible compressibility factors",
		Args:  cobra.ExactArgs(2),
		RunE:  zFactors,
	}

	stateCmd := &cobra.Command{
		Use:   "state [temperature] [pressure]",
		Short: "phase, volume, entropy and enthalpy at a state",
		Args:  cobra.ExactArgs(2),
		RunE:  showState,
	}
	stateCmd.Flags().Float64Var(&quality, "x", 0, "vapor quality inside the two-phase band")

	cycleCmd := &cobra.Command{
		Use:   "cycle",
		Short: "compress, heat and expand the fluid",
		Args:  cobra.NoArgs,
		RunE:  runCycle,
	}
	cf := cycleCmd.Flags()
	cf.Float64Var(&startT, "temperature", config.DefaultConfig().Cycle.Temperature, "inlet temperature [K]")
	cf.Float64Var(&startP, "pressure", config.DefaultConfig().Cycle.Pressure, "inlet pressure [Pa]")
	cf.Float64Var(&compression, "compression", config.DefaultCompressionRatio, "compression ratio")
	cf.Float64Var(&heat, "heat", config.DefaultHeat, "heat added [J/kg]")
	cf.Float64Var(&expansion, "expansion", config.DefaultExpansionRatio, "expansion ratio")
	cf.Float64Var(&compressorYield, "compressor-yield", config.DefaultYield, "compressor isentropic efficiency")
	cf.Float64Var(&turbineYield, "turbine-yield", config.DefaultYield, "turbine isentropic efficiency")
	cf.StringVar(&tablesDir, "tables", "", "resolve states from tables in this directory")
	cf.BoolVar(&noSave, "no-save", false, "do not store the run")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "inspect stored cycle runs",
	}
	runsListCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsShowCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	runsExportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	runsExportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsExportCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "ascii charts",
	}
	plotCmd.PersistentFlags().IntVar(&width, "width", 72, "chart width")
	plotCmd.PersistentFlags().IntVar(&height, "height", 16, "chart height")
	plotSatCmd := &cobra.Command{
		Use:   "saturation",
		Short: "saturation pressure curve",
		Args:  cobra.NoArgs,
		RunE:  plotSaturation,
	}
	plotIsoCmd := &cobra.Command{
		Use:   "isotherm [temperature]",
		Short: "pressure against molar volume at T",
		Args:  cobra.ExactArgs(1),
		RunE:  plotIsotherm,
	}
	plotCmd.AddCommand(plotSatCmd, plotIsoCmd)

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "author and query tabulated properties",
	}
	tableBuildCmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "sample the state tables into dir",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildTables,
	}
	tableBuildCmd.Flags().IntVar(&points, "points", 0, "samples per axis (default from config)")
	tableEvalCmd := &cobra.Command{
		Use:   "eval [dir] [name] [x] [y]",
		Short: "evaluate a stored table",
		Args:  cobra.ExactArgs(4),
		RunE:  evalTable,
	}
	tableListCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "list stored tables",
		Args:  cobra.ExactArgs(1),
		RunE:  listTables,
	}
	tableCmd.AddCommand(tableBuildCmd, tableEvalCmd, tableListCmd)

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive state explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// keep construction logs off the alternate screen
			log.SetLevel(logrus.ErrorLevel)
			return tui.RunExplorer(func(name string) (*process.Engine, error) {
				c := *cfg
				c.Fluid = name
				return c.Engine(log)
			})
		},
	}

	fluidsCmd := &cobra.Command{
		Use:   "fluids",
		Short: "list built-in fluids",
		Args:  cobra.NoArgs,
		RunE:  listFluids,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [fluid]",
		Short: "list available presets for a fluid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for fluid: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(satCmd, zCmd, stateCmd, cycleCmd, runsCmd, plotCmd, tableCmd, exploreCmd, fluidsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(fluid, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(fluid))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fluid") || (preset == "" && configFile == "") {
		cfg.Fluid = fluid
	}
	if flags.Changed("model") {
		cfg.Model = eosModel
	}
	if flags.Changed("dead-band") {
		cfg.DeadBand = deadBand
	}
	if flags.Changed("data") || cfg.RunsDir == "" || cfg.RunsDir == config.DefaultRunsDir {
		cfg.RunsDir = dataDir
	}

	if flags.Lookup("temperature") != nil {
		overrides := []struct {
			flag string
			dst  *float64
			src  float64
		}{
			{"temperature", &cfg.Cycle.Temperature, startT},
			{"pressure", &cfg.Cycle.Pressure, startP},
			{"compression", &cfg.Cycle.CompressionRatio, compression},
			{"heat", &cfg.Cycle.Heat, heat},
			{"expansion", &cfg.Cycle.ExpansionRatio, expansion},
			{"compressor-yield", &cfg.Cycle.CompressorYield, compressorYield},
			{"turbine-yield", &cfg.Cycle.TurbineYield, turbineYield},
		}
		for _, o := range overrides {
			if flags.Changed(o.flag) {
				*o.dst = o.src
			}
		}
	}
	if flags.Changed("tables") {
		cfg.Tables.Dir = tablesDir
	}
	if flags.Changed("points") {
		cfg.Tables.Grid.Points = points
	}

	return cfg, nil
}

func buildEOS(cmd *cobra.Command) (*config.Config, *eos.Cubic, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := cfg.EOS(log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

func buildEngine(cmd *cobra.Command) (*config.Config, *process.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	e, err := cfg.Engine(log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, e, nil
}
