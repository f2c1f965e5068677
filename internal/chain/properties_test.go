package chain

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

func propertySchedule(n int, size motion.Size) schedule.Schedule {
	spec := schedule.DefaultSpec()
	spec.ShrinkRatio = 0.05
	s, err := schedule.New(spec, n, size, 4)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Chain", func() {
	var (
		params motion.Params
		size   motion.Size
	)

	BeforeEach(func() {
		params = motion.DefaultParams()
		size = motion.Size{Width: 1000, Height: 1000}
	})

	Describe("clamp invariant", func() {
		It("keeps every node's box inside the container on every frame", func() {
			rng := rand.New(rand.NewSource(7))
			c := New(12, params, propertySchedule(12, size))
			sched := c.Schedule()

			for frame := 0; frame < 500; frame++ {
				target := motion.Vec2{X: (rng.Float64() - 0.5) * 4000, Y: (rng.Float64() - 0.5) * 4000}
				c.Step(target)
				for i := 0; i < c.Len(); i++ {
					tr := sched.TransformAt(i, c.At(i))
					minX, minY, maxX, maxY := tr.Bounds()
					Expect(minX).To(BeNumerically(">=", -size.Width/2-1e-9))
					Expect(minY).To(BeNumerically(">=", -size.Height/2-1e-9))
					Expect(maxX).To(BeNumerically("<=", size.Width/2+1e-9))
					Expect(maxY).To(BeNumerically("<=", size.Height/2+1e-9))
				}
			}
		})
	})

	Describe("convergence", func() {
		DescribeTable("every node settles on the target projected onto its clamp box",
			func(speed float64) {
				params.SpeedBase = speed
				c := New(12, params, propertySchedule(12, size))
				target := motion.Vec2{X: 18, Y: -9}

				for frame := 0; frame < 5000; frame++ {
					c.Step(target)
				}
				sched := c.Schedule()
				for i := 0; i < c.Len(); i++ {
					want := target.Clamp(sched.ClampBound(i))
					Expect(c.At(i).Dist(want)).To(BeNumerically("<", 1e-6), "node %d", i)
				}
			},
			Entry("slow", 0.05),
			Entry("medium", 0.3),
			Entry("instant", 1.0),
		)

		It("catches the leader up within 30 frames at speed 0.5 while outer nodes lag", func() {
			params.SpeedBase = 0.5
			c := New(12, params, propertySchedule(12, size))
			target := motion.Vec2{X: 100}

			for frame := 1; frame <= 30; frame++ {
				c.Step(target)
				if c.At(11).X < 99 {
					Expect(c.At(0).X).To(BeNumerically("<", c.At(11).X), "frame %d", frame)
				}
			}
			Expect(c.At(11).X).To(BeNumerically(">", 99))
		})
	})

	Describe("determinism", func() {
		It("produces identical position sequences for identical inputs", func() {
			rng := rand.New(rand.NewSource(42))
			targets := make([]motion.Vec2, 300)
			for i := range targets {
				targets[i] = motion.Vec2{X: rng.NormFloat64() * 200, Y: rng.NormFloat64() * 200}
			}

			run := func() [][]motion.Vec2 {
				c := New(10, params, propertySchedule(10, size))
				out := make([][]motion.Vec2, 0, len(targets))
				for _, tg := range targets {
					c.Step(tg)
					out = append(out, c.Positions())
				}
				return out
			}

			Expect(run()).To(Equal(run()))
		})
	})

	Describe("resize stability", func() {
		It("never moves a node further than needed to satisfy the new clamp box", func() {
			c := New(12, params, propertySchedule(12, size))
			for frame := 0; frame < 300; frame++ {
				c.Step(motion.Vec2{X: 400, Y: -400})
			}
			before := c.Positions()

			c.Resize(motion.Size{Width: 600, Height: 700})
			sched := c.Schedule()
			for i, p := range before {
				b := sched.ClampBound(i)
				dx := max(0, abs(p.X)-b.X)
				dy := max(0, abs(p.Y)-b.Y)
				moved := c.At(i).Sub(p)
				Expect(abs(moved.X)).To(BeNumerically("<=", dx+1e-9))
				Expect(abs(moved.Y)).To(BeNumerically("<=", dy+1e-9))
				Expect(c.InBounds(i)).To(BeTrue())
			}
		})
	})
})

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
