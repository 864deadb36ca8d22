package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestDefinitionRoundTrip(t *testing.T) {
	samples := gridSamples([]float64{0, 1, 2}, []float64{0, 0.5, 1}, func(x, y float64) float64 { return 3*x - y })
	dense := NewTwoD(samples, 1, 0.5, Linear, Linear, true)

	for _, name := range []string{"dense.json", "dense.yaml"} {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)
			path := filepath.Join(t.TempDir(), name)

			g.Expect(WriteDefinition(path, dense.Definition())).To(Succeed())
			def, err := ReadDefinition(path)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(def.Dense()).To(BeTrue())
			g.Expect(*def.XStep).To(Equal(1.0))
			g.Expect(*def.YMode).To(Equal(Linear))

			tab, err := def.Build()
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(tab).To(BeAssignableToTypeOf(&TwoD{}))

			got, err := tab.Evaluate(1.5, 0.25)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(BeNumerically("~", 4.25, 1e-12))
		})
	}
}

func TestDefinitionSparseJSON(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "hp_to_t.json")
	doc := `{
  "table": {
    "100000": {"1000": 300, "3000000": 400},
    "1000000": {"1000": 310, "2000000": 390}
  },
  "clamp": true
}`
	g.Expect(os.WriteFile(path, []byte(doc), 0644)).To(Succeed())

	def, err := ReadDefinition(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(def.Dense()).To(BeFalse())

	tab, err := def.Build()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(tab).To(BeAssignableToTypeOf(&Sparse{}))

	got, err := tab.Evaluate(100000, 1000)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(300.0))

	got, err = tab.Evaluate(5e6, 5e6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(390.0))
}

func TestDefinitionErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		doc  string
	}{
		{"bad mode", "mode.json", `{"table": {"1": {"1": 1}}, "x_step": 1, "y_step": 1, "x_mode": "CUBIC", "y_mode": "LINEAR"}`},
		{"bad key", "key.yaml", "table:\n  abc:\n    \"1\": 2\n"},
		{"empty", "empty.json", `{"table": {}}`},
		{"bad step", "step.json", `{"table": {"1": {"1": 1}}, "x_step": 0, "y_step": 1, "x_mode": "LINEAR", "y_mode": "LINEAR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			path := filepath.Join(dir, tt.file)
			g.Expect(os.WriteFile(path, []byte(tt.doc), 0644)).To(Succeed())

			def, err := ReadDefinition(path)
			if err == nil {
				_, err = def.Build()
			}
			g.Expect(errors.Is(err, ErrDefinition)).To(BeTrue(), "got %v", err)
		})
	}
}
