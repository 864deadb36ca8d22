package process

import (
	"fmt"
	"path"

	"github.com/san-kum/realfluid/internal/table"
)

// Names of the tables backing a Tabulated transformer. Outer key first:
// hp_to_t maps (h, P) to T.
const (
	TableHPToT = "hp_to_t"
	TableHPToS = "hp_to_s"
	TableHPToX = "hp_to_x"
	TableSPToH = "sp_to_h"
)

// TableNames lists every table a Tabulated transformer reads.
var TableNames = []string{TableHPToT, TableHPToS, TableHPToX, TableSPToH}

// Tabulated resolves states from precomputed tables published in a library
// under "<fluid>/<table>". Lookups follow library reloads.
type Tabulated struct {
	lib   *table.Library
	fluid string
}

// NewTabulated reads the tables of fluid from lib.
func NewTabulated(lib *table.Library, fluid string) *Tabulated {
	return &Tabulated{lib: lib, fluid: fluid}
}

// TableName returns the library key of one of the fluid's tables.
func TableName(fluid, name string) string {
	return path.Join(fluid, name)
}

// Check reports which of the required tables are missing.
func (t *Tabulated) Check() error {
	var missing []string
	for _, name := range TableNames {
		if _, ok := t.lib.Get(TableName(t.fluid, name)); !ok {
			missing = append(missing, TableName(t.fluid, name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingTable, missing)
	}
	return nil
}

func (t *Tabulated) lookup(name string, x, y float64) (float64, error) {
	v, err := t.lib.Evaluate(TableName(t.fluid, name), x, y)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrMissingTable, err)
	}
	return v, nil
}

// Resolve returns the state at (P, h).
func (t *Tabulated) Resolve(P, h float64) (State, error) {
	T, err := t.lookup(TableHPToT, h, P)
	if err != nil {
		return State{}, err
	}
	x, err := t.lookup(TableHPToX, h, P)
	if err != nil {
		return State{}, err
	}
	return NewState(T, P, h, x), nil
}

// Entropy returns the tabulated specific entropy of st.
func (t *Tabulated) Entropy(st State) (float64, error) {
	return t.lookup(TableHPToS, st.H, st.P)
}

// IsentropicChange moves st to P through the entropy tables.
func (t *Tabulated) IsentropicChange(st State, P float64) (State, error) {
	s, err := t.Entropy(st)
	if err != nil {
		return State{}, err
	}
	h, err := t.lookup(TableSPToH, s, P)
	if err != nil {
		return State{}, err
	}
	return t.Resolve(P, h)
}
