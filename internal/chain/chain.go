package chain

import (
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

type Chain struct {
	params motion.Params
	sched  schedule.Schedule
	pos    []motion.Vec2
	frame  uint64
}

// New creates a chain of n nodes resting at the container center.
func New(n int, p motion.Params, s schedule.Schedule) *Chain {
	if n < 0 {
		n = 0
	}
	return &Chain{
		params: p.Sanitize(),
		sched:  s.WithCount(n),
		pos:    make([]motion.Vec2, n),
	}
}

func (c *Chain) Len() int                    { return len(c.pos) }
func (c *Chain) Frame() uint64               { return c.frame }
func (c *Chain) Params() motion.Params       { return c.params }
func (c *Chain) Schedule() schedule.Schedule { return c.sched }

// At returns node i's position.
func (c *Chain) At(i int) motion.Vec2 { return c.pos[i] }

// Positions returns a copy of every node's position, outermost first.
func (c *Chain) Positions() []motion.Vec2 {
	out := make([]motion.Vec2, len(c.pos))
	copy(out, c.pos)
	return out
}

// Tail returns the innermost node's position, or the origin for an empty chain.
func (c *Chain) Tail() motion.Vec2 {
	if len(c.pos) == 0 {
		return motion.Vec2{}
	}
	return c.pos[len(c.pos)-1]
}

// Step advances every node by one frame toward target.
func (c *Chain) Step(target motion.Vec2) {
	n := len(c.pos)
	if n == 0 {
		return
	}
	if !target.IsValid() {
		target = c.pos[n-1]
	}

	lead := n - 1
	c.pos[lead] = c.ease(lead, target)
	for i := lead - 1; i >= 0; i-- {
		c.pos[i] = c.ease(i, c.pos[i+1])
	}
	c.frame++
}

func (c *Chain) ease(i int, toward motion.Vec2) motion.Vec2 {
	p := c.pos[i]
	rate := c.params.FollowRate(i, len(c.pos))
	p = p.Add(toward.Sub(p).Scale(rate))
	return p.Clamp(c.sched.ClampBound(i))
}

// SetParams swaps the motion parameters; positions are kept.
func (c *Chain) SetParams(p motion.Params) { c.params = p.Sanitize() }

// SetSchedule swaps the schedule, reshaping to its count and re-clamping.
func (c *Chain) SetSchedule(s schedule.Schedule) {
	c.sched = s.WithCount(len(c.pos))
	if s.Count != len(c.pos) {
		c.Reshape(s.Count)
		return
	}
	c.Reclamp()
}

// Resize applies a new container size. Positions only move by the minimum
// needed to satisfy the new clamp boxes.
func (c *Chain) Resize(container motion.Size) {
	c.sched = c.sched.Resize(container)
	c.Reclamp()
}

// Reshape changes the chain length. Surviving nodes keep their positions and
// new nodes start at the last known tail position.
func (c *Chain) Reshape(n int) {
	if n < 0 {
		n = 0
	}
	tail := c.Tail()
	switch {
	case n < len(c.pos):
		c.pos = c.pos[:n]
	case n > len(c.pos):
		grown := make([]motion.Vec2, n)
		copy(grown, c.pos)
		for i := len(c.pos); i < n; i++ {
			grown[i] = tail
		}
		c.pos = grown
	}
	c.sched = c.sched.WithCount(n)
	c.Reclamp()
}

// Reclamp projects every node back into its clamp box.
func (c *Chain) Reclamp() {
	for i := range c.pos {
		c.pos[i] = c.pos[i].Clamp(c.sched.ClampBound(i))
	}
}

// InBounds reports whether node i currently satisfies its clamp box.
func (c *Chain) InBounds(i int) bool {
	b := c.sched.ClampBound(i)
	p := c.pos[i]
	const eps = 1e-9
	return p.X >= -b.X-eps && p.X <= b.X+eps && p.Y >= -b.Y-eps && p.Y <= b.Y+eps
}
