package process

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/realfluid/internal/table"
)

// TableGrid is the sampling grid used to author the transformer tables.
// Enthalpy and entropy axes are linear, the pressure axis logarithmic.
type TableGrid struct {
	HMin   float64 `yaml:"h_min" json:"h_min"` // [J/kg]
	HMax   float64 `yaml:"h_max" json:"h_max"`
	SMin   float64 `yaml:"s_min" json:"s_min"` // [J/(kg·K)]
	SMax   float64 `yaml:"s_max" json:"s_max"`
	PMin   float64 `yaml:"p_min" json:"p_min"` // [Pa]
	PMax   float64 `yaml:"p_max" json:"p_max"`
	Points int     `yaml:"points" json:"points"` // samples per axis
}

// DefaultTableGrid covers liquid to superheated vapor for water between
// 0.1 bar and 100 bar.
func DefaultTableGrid() TableGrid {
	return TableGrid{
		HMin: 0, HMax: 3.5e6,
		SMin: 0, SMax: 1e4,
		PMin: 1e4, PMax: 1e7,
		Points: 36,
	}
}

func (g TableGrid) grid(xMin, xMax float64) table.Grid {
	return table.Grid{
		XStart: xMin, XEnd: xMax, XCount: g.Points, XMode: table.Linear,
		YStart: g.PMin, YEnd: g.PMax, YCount: g.Points, YMode: table.Logarithmic,
		Clamp: true,
	}
}

// BuildTables samples e over g and returns the four transformer tables keyed
// by their short names. Points where e finds no state are left out.
func BuildTables(e *Engine, g TableGrid) (map[string]*table.TwoD, error) {
	if g.Points < 2 || !(g.PMin > 0) || !(g.PMax > g.PMin) || !(g.HMax > g.HMin) || !(g.SMax > g.SMin) {
		return nil, fmt.Errorf("%w: table grid %+v", ErrInvalidArgument, g)
	}

	byEnthalpy := func(pick func(State) (float64, error)) table.Func2 {
		return func(h, P float64) (float64, error) {
			st, err := e.Resolve(P, h)
			if err != nil {
				return 0, err
			}
			return pick(st)
		}
	}

	sources := []struct {
		name string
		f    table.Func2
		grid table.Grid
	}{
		{TableHPToT, byEnthalpy(func(st State) (float64, error) { return st.T, nil }), g.grid(g.HMin, g.HMax)},
		{TableHPToX, byEnthalpy(func(st State) (float64, error) { return st.X, nil }), g.grid(g.HMin, g.HMax)},
		{TableHPToS, byEnthalpy(e.Entropy), g.grid(g.HMin, g.HMax)},
		{TableSPToH, func(s, P float64) (float64, error) {
			st, err := e.StateFromEntropy(P, s)
			if err != nil {
				return 0, err
			}
			return st.H, nil
		}, g.grid(g.SMin, g.SMax)},
	}

	out := make(map[string]*table.TwoD, len(sources))
	for _, src := range sources {
		t, err := table.PopulateTwoD(src.f, src.grid)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", src.name, err)
		}
		if t.Rows() == 0 {
			return nil, fmt.Errorf("%w: %s has no samples", ErrNoSolution, src.name)
		}
		e.log.WithField("table", src.name).WithField("rows", t.Rows()).Debug("table sampled")
		out[src.name] = t
	}
	return out, nil
}

// Publish stores tables in lib under the fluid's prefix.
func Publish(lib *table.Library, fluid string, tables map[string]*table.TwoD) {
	for name, t := range tables {
		lib.Put(TableName(fluid, name), t)
	}
}

// SaveTables writes each table as JSON under dir/<fluid>/<name>.json, the
// layout read back by table.Library.Load.
func SaveTables(dir, fluid string, tables map[string]*table.TwoD) error {
	for name, t := range tables {
		file := TableName(fluid, name) + ".json"
		if err := table.WriteDefinition(filepath.Join(dir, filepath.FromSlash(file)), t.Definition()); err != nil {
			return fmt.Errorf("saving %s: %w", file, err)
		}
	}
	return nil
}
