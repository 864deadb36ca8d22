package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/process"
	"github.com/san-kum/realfluid/internal/storage"
	"github.com/san-kum/realfluid/internal/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

func parseFloats(args ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func saturation(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmd.Flags().Changed("pressure") {
		return fmt.Errorf("need a temperature or --pressure")
	}
	_, c, err := buildEOS(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("pressure") {
		T, err := c.SaturationTemperature(pressure)
		if err != nil {
			return err
		}
		fmt.Printf("Tsat(%g Pa) = %.4f K\n", pressure, T)
		return nil
	}

	vals, err := parseFloats(args[0])
	if err != nil {
		return err
	}
	P, err := c.SaturationPressure(vals[0])
	if err != nil {
		return err
	}
	fmt.Printf("Psat(%g K) = %.6g Pa\n", vals[0], P)
	return nil
}

func zFactors(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args...)
	if err != nil {
		return err
	}
	_, c, err := buildEOS(cmd)
	if err != nil {
		return err
	}

	roots, err := c.ZFactors(vals[0], vals[1])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROOT\tZ\tVM [m³/mol]")
	for i, z := range roots {
		fmt.Fprintf(w, "%d\t%.8g\t%.6g\n", i, z, z*eos.R*vals[0]/vals[1])
	}
	return w.Flush()
}

func showState(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args...)
	if err != nil {
		return err
	}
	T, P := vals[0], vals[1]
	cfg, c, err := buildEOS(cmd)
	if err != nil {
		return err
	}

	phase, err := c.Phase(T, P)
	if err != nil {
		return err
	}
	vm, err := c.VolumeMolar(T, P, quality)
	if err != nil {
		return err
	}
	s, err := c.Entropy(T, P, quality)
	if err != nil {
		return err
	}
	h, err := c.Enthalpy(T, P, quality)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "fluid\t%s (%s)\n", cfg.Fluid, cfg.Model)
	fmt.Fprintf(w, "T\t%.4f K\n", T)
	fmt.Fprintf(w, "P\t%.6g Pa\n", P)
	fmt.Fprintf(w, "phase\t%s\n", phase)
	if T < c.Params().Tc {
		if psat, err := c.SaturationPressure(T); err == nil {
			fmt.Fprintf(w, "Psat\t%.6g Pa\n", psat)
		}
	}
	fmt.Fprintf(w, "Vm\t%.6g m³/mol\n", vm)
	fmt.Fprintf(w, "s\t%.6g J/(kg·K)\n", s)
	fmt.Fprintf(w, "h\t%.6g J/kg\n", h)
	return w.Flush()
}

func transformer(dir, fluid string, e *process.Engine) (process.Transformer, error) {
	if dir == "" {
		return e, nil
	}
	lib := table.NewLibrary(log)
	if err := lib.Load(dir); err != nil {
		return nil, err
	}
	tab := process.NewTabulated(lib, fluid)
	if err := tab.Check(); err != nil {
		return nil, fmt.Errorf("%w (run `realfluid table build %s`)", err, dir)
	}
	return tab, nil
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, e, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	start, err := cfg.GetStartState(e)
	if err != nil {
		return err
	}
	var t process.Transformer = e
	if cmd.Flags().Changed("tables") {
		if t, err = transformer(cfg.Tables.Dir, cfg.Fluid, e); err != nil {
			return err
		}
	}

	cycle := cfg.GetCycle()
	steps, err := cycle.Run(t, start)
	printSteps(steps)
	if err != nil {
		return err
	}

	metrics := storage.Metrics(steps)
	fmt.Printf("\nnet work    %.1f kJ/kg\n", metrics["net_work"]/1e3)
	fmt.Printf("heat in     %.1f kJ/kg\n", metrics["heat_in"]/1e3)
	fmt.Printf("efficiency  %.1f %%\n", 100*metrics["efficiency"])

	if noSave {
		return nil
	}
	st := storage.New(cfg.RunsDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Fluid, cfg.Model, cycle, steps)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", runID)
	return nil
}

func printSteps(steps []process.Step) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tT [K]\tP [Pa]\th [J/kg]\tx")
	for _, s := range steps {
		fmt.Fprintf(w, "%s\t%.3f\t%.6g\t%.6g\t%.4f\n", s.Name, s.State.T, s.State.P, s.State.H, s.State.X)
	}
	w.Flush()
}

func runStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.RunsDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFLUID\tMODEL\tTIME\tRATIO\tHEAT\tNET WORK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.0f kJ/kg\t%.1f kJ/kg\n",
			run.ID,
			run.Fluid,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cycle.CompressionRatio,
			run.Cycle.Heat/1e3,
			run.Metrics["net_work"]/1e3,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if len(run.Steps) == 0 {
		return fmt.Errorf("no data to show")
	}

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("fluid: %s (%s)\n\n", run.Meta.Fluid, run.Meta.Model)
	printSteps(run.Steps)
	fmt.Println()

	temps := make([]float64, len(run.Steps))
	for i, s := range run.Steps {
		temps[i] = s.State.T
	}
	graph := asciigraph.Plot(temps,
		asciigraph.Height(8),
		asciigraph.Width(48),
		asciigraph.Caption("temperature along the cycle [K]"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := runStore(cmd)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return storage.ExportJSONStdout(run)
	}
	if err := storage.ExportJSON(outFile, run); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", run.Meta.ID, outFile)
	return nil
}

func plotSaturation(cmd *cobra.Command, args []string) error {
	if width < 2 || height < 1 {
		return fmt.Errorf("chart needs width ≥ 2 and height ≥ 1")
	}
	cfg, c, err := buildEOS(cmd)
	if err != nil {
		return err
	}

	tMin, tMax := c.SaturationRange()
	temps := floats.Span(make([]float64, width), tMin, tMax*0.999)
	data := make([]float64, 0, len(temps))
	for _, T := range temps {
		p, err := c.SaturationPressure(T)
		if err != nil {
			continue
		}
		data = append(data, p/1e3)
	}
	if len(data) == 0 {
		return fmt.Errorf("no saturation points")
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s Psat [kPa], T %.1f K → %.1f K", cfg.Fluid, tMin, tMax)),
	))
	return nil
}

func plotIsotherm(cmd *cobra.Command, args []string) error {
	if width < 2 || height < 1 {
		return fmt.Errorf("chart needs width ≥ 2 and height ≥ 1")
	}
	vals, err := parseFloats(args...)
	if err != nil {
		return err
	}
	T := vals[0]
	cfg, c, err := buildEOS(cmd)
	if err != nil {
		return err
	}

	b := c.CoVolume()
	vMin, vMax := 1.2*b, 60*b
	pMax := 2 * c.Params().Pc
	var psat float64
	if T < c.Params().Tc {
		if vl, vv, err := c.SaturationVolumes(T); err == nil {
			vMin, vMax = 0.9*vl, 1.5*vv
		}
		if psat, err = c.SaturationPressure(T); err == nil {
			pMax = 3 * psat
		}
	}

	// log-spaced volumes resolve both branches
	vols := floats.Span(make([]float64, width), math.Log(vMin), math.Log(vMax))
	curve := make([]float64, len(vols))
	flat := make([]float64, len(vols))
	for i, lv := range vols {
		p := c.Pressure(T, math.Exp(lv))
		curve[i] = math.Max(-pMax, math.Min(pMax, p)) / 1e3
		flat[i] = psat / 1e3
	}

	series := [][]float64{curve}
	if psat > 0 {
		series = append(series, flat)
	}
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("%s isotherm %.1f K: P [kPa] against ln Vm from %.3g to %.3g m³/mol", cfg.Fluid, T, vMin, vMax)),
	))
	return nil
}

func buildTables(cmd *cobra.Command, args []string) error {
	cfg, e, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	dir := cfg.Tables.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	log.WithField("grid", fmt.Sprintf("%+v", cfg.Tables.Grid)).Info("sampling tables")
	tables, err := process.BuildTables(e, cfg.Tables.Grid)
	if err != nil {
		return err
	}
	if err := process.SaveTables(dir, cfg.Fluid, tables); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS")
	for _, name := range process.TableNames {
		fmt.Fprintf(w, "%s\t%d\n", process.TableName(cfg.Fluid, name), tables[name].Rows())
	}
	return w.Flush()
}

func evalTable(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args[2:]...)
	if err != nil {
		return err
	}
	lib := table.NewLibrary(log)
	if err := lib.Load(args[0]); err != nil {
		return err
	}
	v, err := lib.Evaluate(args[1], vals[0], vals[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s(%g, %g) = %.8g\n", args[1], vals[0], vals[1], v)
	return nil
}

func listTables(cmd *cobra.Command, args []string) error {
	lib := table.NewLibrary(log)
	if err := lib.Load(args[0]); err != nil {
		return err
	}
	names := lib.Names()
	if len(names) == 0 {
		fmt.Println("no tables found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func listFluids(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTC [K]\tPC [Pa]\tω\tM [kg/mol]")
	for _, name := range eos.Fluids() {
		p, err := eos.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.4g\t%.3f\t%.5g\n", p.Name, p.Tc, p.Pc, p.Omega, p.M)
	}
	return w.Flush()
}
