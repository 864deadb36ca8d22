package process

import (
	"errors"
	"math"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/realfluid/internal/table"
)

var (
	tablesOnce sync.Once
	tables     map[string]*table.TwoD
	tablesErr  error
)

func testGrid() TableGrid {
	g := DefaultTableGrid()
	g.Points = 24
	return g
}

func waterTables(tb testing.TB) map[string]*table.TwoD {
	tb.Helper()
	e := waterEngine(tb)
	tablesOnce.Do(func() {
		tables, tablesErr = BuildTables(e, testGrid())
	})
	if tablesErr != nil {
		tb.Fatalf("failed to build tables: %v", tablesErr)
	}
	return tables
}

func waterTabulated(tb testing.TB) *Tabulated {
	tb.Helper()
	lib := table.NewLibrary(quiet)
	Publish(lib, "water", waterTables(tb))
	return NewTabulated(lib, "water")
}

func TestBuildTablesRejectsBadGrid(t *testing.T) {
	e := waterEngine(t)

	bad := []func(*TableGrid){
		func(g *TableGrid) { g.Points = 1 },
		func(g *TableGrid) { g.PMin = 0 },
		func(g *TableGrid) { g.PMax = g.PMin },
		func(g *TableGrid) { g.HMax = g.HMin - 1 },
		func(g *TableGrid) { g.SMin = math.NaN() },
	}
	for i, mutate := range bad {
		g := DefaultTableGrid()
		mutate(&g)
		if _, err := BuildTables(e, g); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestTabulatedCheck(t *testing.T) {
	lib := table.NewLibrary(quiet)
	tab := NewTabulated(lib, "water")
	if err := tab.Check(); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, got %v", err)
	}
	if _, err := tab.Resolve(1e5, 1e5); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected ErrMissingTable, got %v", err)
	}

	Publish(lib, "water", waterTables(t))
	if err := tab.Check(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := NewTabulated(lib, "ammonia").Check(); err == nil {
		t.Error("expected missing ammonia tables")
	}
}

func TestTabulatedMatchesEngine(t *testing.T) {
	e := waterEngine(t)
	tab := waterTabulated(t)

	tests := []struct {
		name string
		P, h float64
	}{
		{"superheated vapor", 1e5, 3.05e6},
		{"two-phase", 1e5, 1.5e6},
		{"compressed liquid", 1e6, 2e5},
		{"vapor at 1 MPa", 1e6, 3.2e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := e.Resolve(tt.P, tt.h)
			if err != nil {
				t.Fatalf("engine: %v", err)
			}
			got, err := tab.Resolve(tt.P, tt.h)
			if err != nil {
				t.Fatalf("tabulated: %v", err)
			}
			if math.Abs(got.T-want.T) > 3 {
				t.Errorf("expected T %v, got %v", want.T, got.T)
			}
			if math.Abs(got.X-want.X) > 0.02 {
				t.Errorf("expected x %v, got %v", want.X, got.X)
			}
			if got.H != tt.h || got.P != tt.P {
				t.Errorf("expected inputs carried through, got %v", got)
			}
		})
	}
}

func TestTabulatedIsentropicExpansion(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)
	tab := waterTabulated(t)

	st, err := e.Resolve(1e6, 3.2e6)
	g.Expect(err).NotTo(HaveOccurred())

	want, err := IsentropicExpansion(e, st, 10)
	g.Expect(err).NotTo(HaveOccurred())
	got, err := IsentropicExpansion(tab, st, 10)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(got.P).To(Equal(want.P))
	g.Expect(got.H).To(BeNumerically("~", want.H, 0.01*want.H))
	g.Expect(got.T).To(BeNumerically("~", want.T, 3))
	g.Expect(got.X).To(BeNumerically("~", want.X, 0.02))
}

func TestSaveTablesReload(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	built := waterTables(t)

	g.Expect(SaveTables(dir, "water", built)).To(Succeed())

	lib := table.NewLibrary(quiet)
	g.Expect(lib.Load(dir)).To(Succeed())
	g.Expect(lib.Names()).To(ConsistOf(
		"water/hp_to_s", "water/hp_to_t", "water/hp_to_x", "water/sp_to_h",
	))

	tab := NewTabulated(lib, "water")
	g.Expect(tab.Check()).To(Succeed())

	want, err := built[TableHPToT].Evaluate(3.05e6, 1e5)
	g.Expect(err).NotTo(HaveOccurred())
	st, err := tab.Resolve(1e5, 3.05e6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.T).To(BeNumerically("~", want, 1e-9))
}

func BenchmarkTabulatedResolve(b *testing.B) {
	tab := waterTabulated(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tab.Resolve(1e5, 3.05e6); err != nil {
			b.Fatal(err)
		}
	}
}
