package metrics

import "github.com/san-kum/chainsim/internal/motion"

// Convergence is the largest distance, in the last observed frame, between a
// node and the target projected onto that node's clamp box. A node whose box
// cannot reach the target converges to the nearest point it can reach.
type Convergence struct {
	name  string
	value float64
}

func NewConvergence() *Convergence {
	return &Convergence{name: "convergence"}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(f Frame) {
	c.value = 0
	for i, p := range f.Positions {
		goal := f.Target.Clamp(f.Schedule.ClampBound(i))
		if d := p.Dist(goal); d > c.value {
			c.value = d
		}
	}
}

func (c *Convergence) Value() float64 { return c.value }

func (c *Convergence) Reset() { c.value = 0 }

// Converged reports whether every node sits within tol of its reachable goal.
func Converged(target motion.Vec2, positions []motion.Vec2, bound func(int) motion.Vec2, tol float64) bool {
	for i, p := range positions {
		if p.Dist(target.Clamp(bound(i))) > tol {
			return false
		}
	}
	return true
}
