package process

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestNewState(t *testing.T) {
	tests := []struct {
		name string
		in   [4]float64
		want State
	}{
		{"unchanged", [4]float64{300, 1e5, 1e4, 0.5}, State{300, 1e5, 1e4, 0.5}},
		{"negative temperature", [4]float64{-5, 1e5, 0, 0}, State{0, 1e5, 0, 0}},
		{"negative pressure", [4]float64{300, -1, 0, 0}, State{300, 0, 0, 0}},
		{"quality above one", [4]float64{300, 1e5, 0, 1.7}, State{300, 1e5, 0, 1}},
		{"quality below zero", [4]float64{300, 1e5, -2, -0.1}, State{300, 1e5, -2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewState(tt.in[0], tt.in[1], tt.in[2], tt.in[3])
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if (State{T: math.NaN()}).Finite() {
		t.Error("expected NaN state to be reported as not finite")
	}
}

func TestDefaultState(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	st, err := e.DefaultState()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.T).To(Equal(DefaultTemperature))
	g.Expect(st.P).To(Equal(DefaultPressure))
	g.Expect(st.X).To(BeZero())

	// a few kelvin above the reference liquid
	g.Expect(st.H).To(BeNumerically("~", 12600, 1000))
}

func TestTemperatureRoundTrip(t *testing.T) {
	e := waterEngine(t)

	tests := []struct {
		name string
		T, P float64
		x    float64
	}{
		{"cold liquid", 300, 1e5, 0},
		{"liquid at 100 Pa", 250, 100, 0},
		{"vapor at 50 Pa", 250, 50, 1},
		{"compressed liquid", 330, 1e6, 0},
		{"superheated vapor", 420, 1e5, 1},
		{"vapor at 1 MPa", 500, 1e6, 1},
		{"supercritical", 700, 3e7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := e.Enthalpy(tt.x, tt.T, tt.P)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			T, x, err := e.Temperature(tt.P, h)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(T-tt.T) > 1e-3 {
				t.Errorf("expected T %v, got %v", tt.T, T)
			}
			if x != tt.x {
				t.Errorf("expected x %v, got %v", tt.x, x)
			}
		})
	}
}

func TestLowPressureLiquid(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	// Psat(250 K) is about 70 Pa, so 100 Pa is still liquid
	liquid, err := e.Enthalpy(0, 250, 100)
	g.Expect(err).NotTo(HaveOccurred())
	vapor, err := e.Enthalpy(1, 250, 50)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(vapor - liquid).To(BeNumerically(">", 2e6))

	st, err := e.Resolve(100, liquid)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.X).To(BeZero())
	g.Expect(st.T).To(BeNumerically("~", 250, 1e-3))
}

func TestResolveTwoPhase(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	const P = 1e5
	tsat, err := e.EOS().SaturationTemperature(P)
	g.Expect(err).NotTo(HaveOccurred())
	hl, err := e.Enthalpy(0, tsat, P)
	g.Expect(err).NotTo(HaveOccurred())
	hv, err := e.Enthalpy(1, tsat, P)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(hv).To(BeNumerically(">", hl))

	for _, want := range []float64{0.1, 0.42, 0.9} {
		st, err := e.Resolve(P, hl+want*(hv-hl))
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(st.T).To(Equal(tsat))
		g.Expect(st.X).To(BeNumerically("~", want, 1e-9))
	}

	// saturated liquid then vapor sit exactly on the boundaries
	st, err := e.Resolve(P, hl)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.X).To(BeZero())
	st, err = e.Resolve(P, hv)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.X).To(Equal(1.0))
}

func TestTemperatureErrors(t *testing.T) {
	e := waterEngine(t)

	for _, tc := range [][2]float64{{0, 1e5}, {-1, 1e5}, {1e5, math.NaN()}} {
		_, _, err := e.Temperature(tc[0], tc[1])
		if err == nil {
			t.Errorf("P=%g h=%g: expected error", tc[0], tc[1])
		}
	}

	// far beyond the temperature search interval
	_, _, err := e.Temperature(1e5, 1e9)
	if !errors.Is(err, ErrNoSolution) {
		t.Errorf("expected ErrNoSolution, got %v", err)
	}
}

func TestIsentropicChangeConservesEntropy(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	starts := []State{}
	for _, s := range []struct{ T, P, x float64 }{
		{300, 101300, 0},
		{500, 1e6, 1},
	} {
		h, err := e.Enthalpy(s.x, s.T, s.P)
		g.Expect(err).NotTo(HaveOccurred())
		starts = append(starts, NewState(s.T, s.P, h, s.x))
	}

	for _, st := range starts {
		s0, err := e.Entropy(st)
		g.Expect(err).NotTo(HaveOccurred())

		for _, factor := range []float64{0.1, 0.5, 4} {
			next, err := e.IsentropicChange(st, st.P*factor)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(next.P).To(Equal(st.P * factor))

			s1, err := e.Entropy(next)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(s1).To(BeNumerically("~", s0, 1e-3))
		}
	}
}

func TestIsentropicExpansionIntoDome(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	st, err := e.Resolve(1e6, 3.2e6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(st.X).To(Equal(1.0))

	out, err := IsentropicExpansion(e, st, 10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out.P).To(BeNumerically("~", 1e5, 1e-6))
	g.Expect(out.X).To(BeNumerically("~", 0.88, 0.02))
	g.Expect(out.H).To(BeNumerically("<", st.H))
}

func TestQuality(t *testing.T) {
	e := waterEngine(t)
	c := e.EOS()

	const T = 400.0
	psat, err := c.SaturationPressure(T)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hl, _ := e.Enthalpy(0, T, psat)
	hv, _ := e.Enthalpy(1, T, psat)
	sl, _ := c.Entropy(T, psat, 0)
	sv, _ := c.Entropy(T, psat, 1)

	tests := []struct {
		name string
		got  func() (float64, error)
		want float64
	}{
		{"enthalpy midpoint", func() (float64, error) { return e.Quality((hl+hv)/2, T, psat) }, 0.5},
		{"entropy quarter", func() (float64, error) { return e.QualityFromEntropy(sl+0.25*(sv-sl), T, psat) }, 0.25},
		{"clamped above", func() (float64, error) { return e.Quality(hv+1e5, T, psat) }, 1},
		{"clamped below", func() (float64, error) { return e.Quality(hl-1e5, T, psat) }, 0},
		{"compressed liquid", func() (float64, error) { return e.Quality(hv, T, psat*2) }, 0},
		{"expanded vapor", func() (float64, error) { return e.Quality(hl, T, psat/2) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsobaricTransfer(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	st, err := e.DefaultState()
	g.Expect(err).NotTo(HaveOccurred())

	same, err := IsobaricTransfer(e, st, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(same).To(Equal(st))

	warm, err := IsobaricTransfer(e, st, 1e5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(warm.P).To(Equal(st.P))
	g.Expect(warm.H).To(Equal(st.H + 1e5))
	g.Expect(warm.T).To(BeNumerically("~", 314.7, 1))
	g.Expect(warm.X).To(BeZero())

	boiled, err := IsobaricTransfer(e, st, 1.5e6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(boiled.X).To(BeNumerically(">", 0))
	g.Expect(boiled.X).To(BeNumerically("<", 1))
}

func TestRealProcesses(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	hot, err := e.Resolve(1e6, 3.2e6)
	g.Expect(err).NotTo(HaveOccurred())
	rev, err := IsentropicExpansion(e, hot, 10)
	g.Expect(err).NotTo(HaveOccurred())

	actual, err := RealExpansion(e, hot, 0.8, 10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(actual.P).To(Equal(rev.P))
	g.Expect(actual.H).To(BeNumerically("~", hot.H+0.8*(rev.H-hot.H), 1e-6))
	g.Expect(actual.H).To(BeNumerically(">", rev.H))

	ideal, err := RealExpansion(e, hot, 1, 10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ideal.H).To(BeNumerically("~", rev.H, 1e-6))

	cold, err := e.Resolve(1e5, 3.05e6)
	g.Expect(err).NotTo(HaveOccurred())
	revC, err := IsentropicCompression(e, cold, 5)
	g.Expect(err).NotTo(HaveOccurred())
	realC, err := RealCompression(e, cold, 0.75, 5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(realC.H).To(BeNumerically("~", cold.H+(revC.H-cold.H)/0.75, 1e-6))
	g.Expect(realC.T).To(BeNumerically(">", revC.T))

	for _, yield := range []float64{0, -0.5, 1.2, math.NaN()} {
		_, err := RealExpansion(e, hot, yield, 10)
		g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue(), "yield %v", yield)
		_, err = RealCompression(e, cold, yield, 5)
		g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue(), "yield %v", yield)
	}
	for _, factor := range []float64{0, -2, math.NaN()} {
		_, err := IsentropicExpansion(e, hot, factor)
		g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue(), "factor %v", factor)
		_, err = IsentropicCompression(e, hot, factor)
		g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue(), "factor %v", factor)
	}
}

func TestMix(t *testing.T) {
	g := NewWithT(t)
	e := waterEngine(t)

	a, err := e.Resolve(1e5, 1e5)
	g.Expect(err).NotTo(HaveOccurred())
	b, err := e.Resolve(1e5, 3e5)
	g.Expect(err).NotTo(HaveOccurred())

	m, err := Mix(e, a, 3, b, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m.P).To(BeNumerically("~", 1e5, 1e-9))
	g.Expect(m.H).To(BeNumerically("~", 1.5e5, 1e-6))
	g.Expect(m.T).To(BeNumerically(">", a.T))
	g.Expect(m.T).To(BeNumerically("<", b.T))

	only, err := Mix(e, a, 0, b, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(only).To(Equal(b))
	only, err = Mix(e, a, 2, b, 0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(only).To(Equal(a))

	_, err = Mix(e, a, 0, b, 0)
	g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	_, err = Mix(e, a, -1, b, 1)
	g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
	_, err = Mix(e, State{T: math.NaN(), P: 1e5}, 1, b, 1)
	g.Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
}

func BenchmarkResolve(b *testing.B) {
	e := waterEngine(b)
	for i := 0; i < b.N; i++ {
		if _, err := e.Resolve(1e5, 3.05e6); err != nil {
			b.Fatal(err)
		}
	}
}
