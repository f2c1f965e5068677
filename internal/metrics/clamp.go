package metrics

import "math"

const clampEpsilon = 1e-9

// ClampViolations counts node-frames whose center left its clamp box. A
// correct integrator always reports zero.
type ClampViolations struct {
	name  string
	count int
}

func NewClampViolations() *ClampViolations {
	return &ClampViolations{name: "clamp_violations"}
}

func (c *ClampViolations) Name() string { return c.name }

func (c *ClampViolations) Observe(f Frame) {
	for i, p := range f.Positions {
		b := f.Schedule.ClampBound(i)
		if math.Abs(p.X) > b.X+clampEpsilon || math.Abs(p.Y) > b.Y+clampEpsilon || !p.IsValid() {
			c.count++
		}
	}
}

func (c *ClampViolations) Value() float64 { return float64(c.count) }

func (c *ClampViolations) Reset() { c.count = 0 }
