// Package metrics holds per-run observers that summarize how a chain moved.
package metrics

import (
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

// Frame is the state a metric observes after one integration step.
type Frame struct {
	Index     int
	Target    motion.Vec2
	Positions []motion.Vec2
	Schedule  schedule.Schedule
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Standard returns a fresh set of the metrics every scenario run records.
func Standard() []Metric {
	return []Metric{NewConvergence(), NewMaxLag(), NewClampViolations()}
}

// Collect reads every metric into a name-keyed map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
