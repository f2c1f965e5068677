package chain

import (
	"testing"
	"time"

	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

func testSchedule(t *testing.T, n int, size motion.Size) schedule.Schedule {
	t.Helper()
	spec := schedule.DefaultSpec()
	spec.ShrinkRatio = 0.05
	s, err := schedule.New(spec, n, size, 0)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return s
}

func TestChain_EmptyIsNoop(t *testing.T) {
	c := New(0, motion.DefaultParams(), testSchedule(t, 0, motion.Size{Width: 100, Height: 100}))
	c.Step(motion.Vec2{X: 10, Y: 10})

	if c.Len() != 0 || len(c.Positions()) != 0 {
		t.Error("empty chain should stay empty")
	}
	if c.Tail() != (motion.Vec2{}) {
		t.Error("empty chain tail should be the origin")
	}

	neg := New(-3, motion.DefaultParams(), testSchedule(t, 0, motion.Size{Width: 100, Height: 100}))
	if neg.Len() != 0 {
		t.Errorf("negative length should clamp to 0, got %d", neg.Len())
	}
}

func TestChain_LeaderEasesAtSpeedBase(t *testing.T) {
	p := motion.DefaultParams()
	p.SpeedBase = 0.25
	c := New(4, p, testSchedule(t, 4, motion.Size{Width: 1000, Height: 1000}))

	c.Step(motion.Vec2{X: 100})
	if got := c.At(3).X; got != 25 {
		t.Errorf("leader x = %f, want 25", got)
	}
}

func TestChain_FollowersReadSameFrame(t *testing.T) {
	p := motion.Params{SpeedBase: 1, FollowMultiplier: 0.5, FollowOffset: 0}
	c := New(3, p, testSchedule(t, 3, motion.Size{Width: 1000, Height: 1000}))

	c.Step(motion.Vec2{X: 40})
	// leader jumps to 40; node 1 reads it in the same frame and moves halfway.
	if got := c.At(1).X; got != 20 {
		t.Errorf("node 1 x = %f, want 20 (same-frame leader)", got)
	}
}

func TestChain_ReshapeGrowUsesTail(t *testing.T) {
	c := New(3, motion.DefaultParams(), testSchedule(t, 3, motion.Size{Width: 1000, Height: 1000}))
	for i := 0; i < 50; i++ {
		c.Step(motion.Vec2{X: 60, Y: -30})
	}
	tail := c.Tail()

	c.Reshape(6)
	if c.Len() != 6 {
		t.Fatalf("expected 6 nodes, got %d", c.Len())
	}
	for i := 3; i < 6; i++ {
		if c.At(i) != tail {
			t.Errorf("new node %d = %v, want tail %v", i, c.At(i), tail)
		}
	}
	if c.Schedule().Count != 6 {
		t.Errorf("schedule count not updated: %d", c.Schedule().Count)
	}
}

func TestChain_ReshapeShrinkKeepsPrefix(t *testing.T) {
	c := New(5, motion.DefaultParams(), testSchedule(t, 5, motion.Size{Width: 1000, Height: 1000}))
	for i := 0; i < 10; i++ {
		c.Step(motion.Vec2{X: 20})
	}
	before := c.Positions()

	c.Reshape(2)
	if c.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", c.Len())
	}
	for i := 0; i < 2; i++ {
		if c.At(i) != before[i] {
			t.Errorf("node %d moved on shrink: %v -> %v", i, before[i], c.At(i))
		}
	}
}

func TestChain_ResizeIsMinimalCorrection(t *testing.T) {
	c := New(8, motion.DefaultParams(), testSchedule(t, 8, motion.Size{Width: 1000, Height: 1000}))
	for i := 0; i < 200; i++ {
		c.Step(motion.Vec2{X: 300, Y: 5})
	}
	before := c.Positions()

	c.Resize(motion.Size{Width: 500, Height: 500})
	sched := c.Schedule()
	for i, p := range before {
		want := p.Clamp(sched.ClampBound(i))
		if c.At(i) != want {
			t.Errorf("node %d: got %v, want projection %v", i, c.At(i), want)
		}
		if !c.InBounds(i) {
			t.Errorf("node %d out of bounds after resize", i)
		}
	}
}

func TestChain_SetParamsKeepsPositions(t *testing.T) {
	c := New(4, motion.DefaultParams(), testSchedule(t, 4, motion.Size{Width: 800, Height: 800}))
	for i := 0; i < 20; i++ {
		c.Step(motion.Vec2{X: 50})
	}
	before := c.Positions()

	p := motion.DefaultParams()
	p.SpeedBase = 0.9
	c.SetParams(p)
	for i, want := range before {
		if c.At(i) != want {
			t.Errorf("node %d reset on param change", i)
		}
	}
}

func TestChain_InvalidTargetHoldsLeader(t *testing.T) {
	c := New(2, motion.DefaultParams(), testSchedule(t, 2, motion.Size{Width: 800, Height: 800}))
	c.Step(motion.Vec2{X: 10})
	lead := c.At(1)

	c.Step(motion.Vec2{X: nan()})
	if !c.At(1).IsValid() || c.At(1) != lead {
		t.Errorf("NaN target should hold the leader, got %v", c.At(1))
	}
}

func TestChain_NonFiniteParamsStayInBounds(t *testing.T) {
	p := motion.DefaultParams()
	p.FollowMultiplier = nan()
	p.FollowOffset = nan()
	p.RotationPerStep = nan()
	c := New(6, p, testSchedule(t, 6, motion.Size{Width: 400, Height: 400}))

	for f := 0; f < 30; f++ {
		c.Step(motion.Vec2{X: 40, Y: -25})
		for i := 0; i < c.Len(); i++ {
			if !c.At(i).IsValid() || !c.InBounds(i) {
				t.Fatalf("frame %d node %d invalid or out of bounds: %v", f, i, c.At(i))
			}
		}
	}
	if c.At(1).X <= 0 {
		t.Errorf("followers should still move toward the target, node 1 at %v", c.At(1))
	}
}

func TestPacer(t *testing.T) {
	p := NewPacer(FrameInterval)
	t0 := time.Unix(0, 0)

	if !p.Ready(t0) {
		t.Fatal("first frame should run")
	}
	if p.Ready(t0.Add(5 * time.Millisecond)) {
		t.Error("frame 5ms later should be skipped")
	}
	if !p.Ready(t0.Add(FrameInterval)) {
		t.Error("frame one interval later should run")
	}
	if !p.Ready(t0.Add(2*FrameInterval - 500*time.Microsecond)) {
		t.Error("small jitter should be tolerated")
	}

	p.Reset()
	if !p.Ready(t0) {
		t.Error("reset pacer should run immediately")
	}
	if NewPacer(0).Interval() != FrameInterval {
		t.Error("zero interval should default to 60 Hz")
	}
}
