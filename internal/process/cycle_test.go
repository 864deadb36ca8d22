package process

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cycle", func() {
	var (
		e     *Engine
		start State
	)

	BeforeEach(func() {
		e = waterEngine(GinkgoT())
		var err error
		start, err = e.DefaultState()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with reversible legs", func() {
		var steps []Step

		BeforeEach(func() {
			var err error
			steps, err = Cycle{
				CompressionRatio: 10,
				Heat:             2e6,
				ExpansionRatio:   10,
				CompressorYield:  1,
				TurbineYield:     1,
			}.Run(e, start)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(HaveLen(4))
		})

		It("records the legs in order", func() {
			names := make([]string, len(steps))
			for i, s := range steps {
				names[i] = s.Name
			}
			Expect(names).To(Equal([]string{StepInlet, StepCompressed, StepHeated, StepExpanded}))
		})

		It("returns to the inlet pressure", func() {
			Expect(steps[1].State.P).To(BeNumerically("~", 1.013e6, 1e-6))
			Expect(steps[3].State.P).To(BeNumerically("~", DefaultPressure, 1e-6))
		})

		It("conserves entropy on both isentropic legs", func() {
			entropy := func(st State) float64 {
				s, err := e.Entropy(st)
				Expect(err).NotTo(HaveOccurred())
				return s
			}
			Expect(entropy(steps[1].State)).To(BeNumerically("~", entropy(steps[0].State), 1e-3))
			Expect(entropy(steps[3].State)).To(BeNumerically("~", entropy(steps[2].State), 1e-3))
		})

		It("keeps the compressed liquid cold", func() {
			Expect(steps[1].State.X).To(BeZero())
			Expect(steps[1].State.T).To(BeNumerically("~", 300, 0.5))
		})

		It("boils the fluid and expands it into the dome", func() {
			Expect(steps[2].State.H).To(BeNumerically("~", steps[1].State.H+2e6, 1e-6))
			Expect(steps[2].State.X).To(BeNumerically("~", 0.45, 0.05))
			Expect(steps[2].State.T).To(BeNumerically("~", 453.6, 1))
			Expect(steps[3].State.X).To(BeNumerically(">", 0))
			Expect(steps[3].State.X).To(BeNumerically("<", 1))
			Expect(steps[3].State.T).To(BeNumerically("~", 374.5, 1))
		})

		It("delivers positive net work", func() {
			Expect(NetWork(steps)).To(BeNumerically(">", 3e5))
		})
	})

	Context("with lossy legs", func() {
		It("delivers less work than the reversible cycle", func() {
			c := Cycle{CompressionRatio: 10, Heat: 2e6, ExpansionRatio: 10, CompressorYield: 1, TurbineYield: 1}
			ideal, err := c.Run(e, start)
			Expect(err).NotTo(HaveOccurred())

			c.CompressorYield, c.TurbineYield = 0.7, 0.85
			lossy, err := c.Run(e, start)
			Expect(err).NotTo(HaveOccurred())
			Expect(NetWork(lossy)).To(BeNumerically("<", NetWork(ideal)))
		})
	})

	It("stops at the failing leg", func() {
		steps, err := Cycle{CompressionRatio: 10, Heat: 2e6, ExpansionRatio: 10, CompressorYield: 0, TurbineYield: 1}.Run(e, start)
		Expect(errors.Is(err, ErrInvalidArgument)).To(BeTrue())
		Expect(steps).To(HaveLen(1))
	})

	It("returns nothing for an incomplete run", func() {
		Expect(NetWork([]Step{{StepInlet, start}})).To(BeZero())
	})
})
