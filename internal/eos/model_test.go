package eos

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"water", Water(), false},
		{"zero Tc", Params{Tc: 0, Pc: 1e6, M: 0.018}, true},
		{"negative Pc", Params{Tc: 500, Pc: -1, M: 0.018}, true},
		{"zero molar mass", Params{Tc: 500, Pc: 1e6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	g := NewWithT(t)

	p, err := Lookup(" Water ")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p).To(Equal(Water()))

	_, err = Lookup("unobtainium")
	g.Expect(err).To(HaveOccurred())

	g.Expect(Fluids()).To(Equal([]string{"ammonia", "co2", "methane", "water"}))
	for _, name := range Fluids() {
		p, err := Lookup(name)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(p.Validate()).To(Succeed())
	}
}

func TestPengRobinsonConstants(t *testing.T) {
	g := NewWithT(t)

	p := Water()
	m, err := NewPengRobinsonModel(p)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(m.CoVolume()).To(BeNumerically("~", 0.07780*R*p.Tc/p.Pc, 1e-18))
	g.Expect(m.Kappa()).To(BeNumerically("~", 0.37464+1.54226*0.344-0.26992*0.344*0.344, 1e-12))
	g.Expect(m.A(p.Tc)).To(BeNumerically("~", 0.45724*R*R*p.Tc*p.Tc/p.Pc, 1e-12))

	// dilute gas approaches the ideal gas law
	T, V := 500.0, 10.0
	g.Expect(m.Pressure(T, V) / (R * T / V)).To(BeNumerically("~", 1, 1e-3))
	g.Expect(m.FugacityCoefficient(T, 1e-6, 1)).To(Equal(1.0))
}

func TestModelDerivatives(t *testing.T) {
	pr, err := NewPengRobinsonModel(Water())
	if err != nil {
		t.Fatal(err)
	}
	vdw, err := NewVanDerWaalsModel(Water())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		model Model
		T, V  float64
	}{
		{"pr vapor", pr, 450, 1e-2},
		{"pr liquid", pr, 350, 2.5e-5},
		{"vdw vapor", vdw, 450, 1e-2},
		{"vdw dense", vdw, 700, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			m := tt.model

			dV := tt.V * 1e-6
			wantDV := (m.Pressure(tt.T, tt.V+dV) - m.Pressure(tt.T, tt.V-dV)) / (2 * dV)
			g.Expect(m.DPdV(tt.T, tt.V)).To(BeNumerically("~", wantDV, math.Abs(wantDV)*1e-5))

			dT := 1e-3
			wantDT := (m.Pressure(tt.T+dT, tt.V) - m.Pressure(tt.T-dT, tt.V)) / (2 * dT)
			g.Expect(m.DPdT(tt.T, tt.V)).To(BeNumerically("~", wantDT, math.Abs(wantDT)*1e-5))
		})
	}
}

// ln φ must equal the residual Gibbs energy H_res/RT - S_res/R.
func TestDepartureConsistency(t *testing.T) {
	pr, _ := NewPengRobinsonModel(Water())
	vdw, _ := NewVanDerWaalsModel(Water())

	for _, m := range []Model{pr, vdw} {
		g := NewWithT(t)
		T, P := 420.0, 2e5
		M := m.Params().M

		c2, c3, c4 := m.ZCoefficients(T, P)
		var Z float64
		for _, z := range solverRoots(c2, c3, c4) {
			Z = math.Max(Z, z)
		}

		lnPhi := math.Log(m.FugacityCoefficient(T, P, Z))
		gibbs := m.ResidualEnthalpy(T, P, Z)*M/(R*T) - m.ResidualEntropy(T, P, Z)*M/R
		g.Expect(lnPhi).To(BeNumerically("~", gibbs, 1e-9))
	}
}

func TestVanDerWaalsConstants(t *testing.T) {
	g := NewWithT(t)
	p := Water()
	m, err := NewVanDerWaalsModel(p)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.CoVolume()).To(BeNumerically("~", R*p.Tc/p.Pc/8, 1e-18))

	// the critical point is an inflection: Pc at Vc = 3b
	vc := 3 * m.CoVolume()
	g.Expect(m.Pressure(p.Tc, vc) / p.Pc).To(BeNumerically("~", 1, 1e-9))
	g.Expect(math.Abs(m.DPdV(p.Tc, vc) * vc / p.Pc)).To(BeNumerically("<", 1e-9))
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{Liquid, "liquid"},
		{TwoPhase, "two-phase"},
		{Vapor, "vapor"},
		{Supercritical, "supercritical"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
