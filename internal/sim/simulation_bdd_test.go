package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/sim"
)

var _ = Describe("Simulation", func() {
	var s *sim.Simulation

	BeforeEach(func() {
		cfg := sim.DefaultConfig()
		cfg.Seed = 7
		var err error
		s, err = sim.New(dynamo.Discard, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with the configured population inside the viewport", func() {
		Expect(s.Len()).To(Equal(sim.DefaultCount))
		for _, p := range s.Particles() {
			Expect(p.X).To(BeNumerically(">=", 0))
			Expect(p.X).To(BeNumerically("<", sim.DefaultWidth))
			Expect(p.Y).To(BeNumerically(">=", 0))
			Expect(p.Y).To(BeNumerically("<", sim.DefaultHeight))
			Expect(p.Radius()).To(BeNumerically(">=", 1))
			Expect(p.Radius()).To(BeNumerically("<", 3))
		}
	})

	Context("with the cursor absent", func() {
		It("never increases any particle's speed", func() {
			prev := s.Particles()
			for i := 0; i < 300; i++ {
				s.Tick()
				cur := s.Particles()
				for j := range cur {
					Expect(cur[j].Speed()).To(BeNumerically("<=", prev[j].Speed()+1e-15))
				}
				prev = cur
			}
		})
	})

	Context("with the cursor on top of a particle", func() {
		It("keeps every value finite", func() {
			p := s.Particles()[0]
			s.OnPointerMove(p.X, p.Y)
			Expect(s.Run(context.Background(), 100)).To(Succeed())
			Expect(s.Validate()).To(Succeed())
		})
	})

	Context("after a resize", func() {
		It("keeps the population size and resamples into the new bounds", func() {
			Expect(s.OnResize(400, 300)).To(Succeed())
			Expect(s.Len()).To(Equal(sim.DefaultCount))
			for _, p := range s.Particles() {
				Expect(p.X).To(BeNumerically("<", 400))
				Expect(p.Y).To(BeNumerically("<", 300))
			}
		})

		It("rejects an empty viewport", func() {
			Expect(s.OnResize(100, 0)).To(MatchError(dynamo.ErrInvalidViewport))
		})
	})

	It("survives a thousand ticks without runaway velocities", func() {
		Expect(s.Run(context.Background(), 1000)).To(Succeed())
		for _, p := range s.Particles() {
			Expect(p.Valid()).To(BeTrue())
			Expect(p.Speed()).To(BeNumerically("<=", 2*math.Sqrt2*sim.DefaultMaxSpeed))
		}
	})
})
