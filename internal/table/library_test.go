package table

import (
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeTable(t *testing.T, path string, f func(x, y float64) float64) {
	t.Helper()
	samples := gridSamples([]float64{0, 1}, []float64{0, 1}, f)
	if err := WriteDefinition(path, NewSparse(samples, false).Definition()); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLibraryLoad(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	writeTable(t, filepath.Join(dir, "water", "hp_to_t.json"), func(x, y float64) float64 { return x + y })
	writeTable(t, filepath.Join(dir, "water", "hp_to_s.yaml"), func(x, y float64) float64 { return x - y })

	lib := NewLibrary(quietLogger())
	g.Expect(lib.Load(dir)).To(Succeed())
	g.Expect(lib.Names()).To(Equal([]string{"water/hp_to_s", "water/hp_to_t"}))

	got, err := lib.Evaluate("water/hp_to_t", 0.5, 0.5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(BeNumerically("~", 1.0, 1e-12))

	got, err = lib.Evaluate("water/hp_to_s", 1, 0.25)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(BeNumerically("~", 0.75, 1e-12))

	_, err = lib.Evaluate("water/missing", 0, 0)
	g.Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
}

func TestLibraryReloadReplacesSet(t *testing.T) {
	g := NewWithT(t)

	first, second := t.TempDir(), t.TempDir()
	writeTable(t, filepath.Join(first, "a.json"), func(x, y float64) float64 { return 1 })
	writeTable(t, filepath.Join(second, "b.json"), func(x, y float64) float64 { return 2 })

	lib := NewLibrary(quietLogger())
	g.Expect(lib.Load(first)).To(Succeed())
	_, ok := lib.Get("a")
	g.Expect(ok).To(BeTrue())

	g.Expect(lib.Load(second)).To(Succeed())
	_, ok = lib.Get("a")
	g.Expect(ok).To(BeFalse())
	g.Expect(lib.Names()).To(Equal([]string{"b"}))

	g.Expect(lib.Load(filepath.Join(second, "missing"))).NotTo(Succeed())
	g.Expect(lib.Names()).To(Equal([]string{"b"}))
}

func TestLibraryConcurrentPut(t *testing.T) {
	g := NewWithT(t)
	lib := NewLibrary(quietLogger())
	tab := NewSparse(gridSamples([]float64{0, 1}, []float64{0, 1}, func(x, y float64) float64 { return x }), true)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(2)
		go func(n string) {
			defer wg.Done()
			lib.Put(n, tab)
		}(name)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = lib.Names()
			}
		}()
	}
	wg.Wait()

	g.Expect(lib.Names()).To(Equal(names))
}
