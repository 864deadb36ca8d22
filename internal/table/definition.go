package table

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the persisted form of a two-dimensional table. Dense tables
// carry steps and modes; sparse tables leave them unset.
type Definition struct {
	Table map[string]map[string]float64 `json:"table" yaml:"table"`
	XStep *float64                      `json:"x_step,omitempty" yaml:"x_step,omitempty"`
	YStep *float64                      `json:"y_step,omitempty" yaml:"y_step,omitempty"`
	XMode *StepMode                     `json:"x_mode,omitempty" yaml:"x_mode,omitempty"`
	YMode *StepMode                     `json:"y_mode,omitempty" yaml:"y_mode,omitempty"`
	Clamp bool                          `json:"clamp" yaml:"clamp"`
}

// Evaluator is the lookup surface shared by dense and sparse tables.
type Evaluator interface {
	Evaluate(x, y float64) (float64, error)
}

// Dense reports whether the definition carries the dense grid metadata.
func (d *Definition) Dense() bool {
	return d.XStep != nil && d.YStep != nil && d.XMode != nil && d.YMode != nil
}

func (d *Definition) samples() (map[float64]map[float64]float64, error) {
	if len(d.Table) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrDefinition)
	}
	out := make(map[float64]map[float64]float64, len(d.Table))
	for xs, row := range d.Table {
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: outer key %q: %v", ErrDefinition, xs, err)
		}
		inner := make(map[float64]float64, len(row))
		for ys, v := range row {
			y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: inner key %q: %v", ErrDefinition, ys, err)
			}
			inner[y] = v
		}
		out[x] = inner
	}
	return out, nil
}

// Build turns the definition into a table: dense when all grid metadata is
// present, sparse otherwise.
func (d *Definition) Build() (Evaluator, error) {
	samples, err := d.samples()
	if err != nil {
		return nil, err
	}
	if d.Dense() {
		if *d.XStep <= 0 || *d.YStep <= 0 {
			return nil, fmt.Errorf("%w: steps must be positive", ErrDefinition)
		}
		return NewTwoD(samples, *d.XStep, *d.YStep, *d.XMode, *d.YMode, d.Clamp), nil
	}
	return NewSparse(samples, d.Clamp), nil
}

// Definition exports the table in persisted form.
func (t *TwoD) Definition() *Definition {
	def := rowsDefinition(t.rows, t.clamp)
	xStep, yStep := t.xStep, t.yStep
	xMode, yMode := t.xMode, t.yMode
	def.XStep, def.YStep = &xStep, &yStep
	def.XMode, def.YMode = &xMode, &yMode
	return def
}

// Definition exports the table in persisted form.
func (s *Sparse) Definition() *Definition {
	return rowsDefinition(s.rows, s.clamp)
}

// Sparse re-indexes a dense table for neighbour-search lookups.
func (t *TwoD) Sparse() *Sparse {
	return &Sparse{rows: t.rows, clamp: t.clamp}
}

func rowsDefinition(rows *sortedMap[*OneD], clamp bool) *Definition {
	def := &Definition{Table: make(map[string]map[string]float64, rows.len()), Clamp: clamp}
	for _, r := range rows.entries() {
		inner := make(map[string]float64, r.val.Len())
		for _, p := range r.val.table.entries() {
			inner[formatKey(p.key)] = p.val
		}
		def.Table[formatKey(r.key)] = inner
	}
	return def
}

func formatKey(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ReadDefinition decodes a definition file; YAML for .yaml/.yml, JSON otherwise.
func ReadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	def := &Definition{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, def)
	default:
		err = json.Unmarshal(data, def)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDefinition, path, err)
	}
	return def, nil
}

// WriteDefinition encodes def as indented JSON, or YAML for .yaml/.yml paths.
func WriteDefinition(path string, def *Definition) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(def)
	default:
		data, err = json.MarshalIndent(def, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// sortedKeys is used for stable listings.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
