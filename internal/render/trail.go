package render

import (
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const DefaultTrailFade = 0.4

// Ghost is one reusable trail slot.
type Ghost struct {
	Pos   motion.Vec2
	Alpha float64

	tween *gween.Tween
	live  bool
}

// Trail is a fixed-capacity ring of ghost slots. Slot index is the push
// counter modulo capacity, so old ghosts are overwritten rather than new
// ones allocated.
type Trail struct {
	slots []Ghost
	next  uint64
	fade  float32
}

func NewTrail(capacity int, fadeSeconds float64) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	if fadeSeconds <= 0 {
		fadeSeconds = DefaultTrailFade
	}
	return &Trail{slots: make([]Ghost, capacity), fade: float32(fadeSeconds)}
}

func (t *Trail) Cap() int       { return len(t.slots) }
func (t *Trail) Pushed() uint64 { return t.next }
func (t *Trail) Enabled() bool  { return len(t.slots) > 0 }

// Push places a fully opaque ghost at p, reusing the oldest slot.
func (t *Trail) Push(p motion.Vec2) {
	if len(t.slots) == 0 {
		return
	}
	s := &t.slots[t.next%uint64(len(t.slots))]
	s.Pos = p
	s.Alpha = 1
	s.live = true
	s.tween = gween.New(1, 0, t.fade, ease.OutQuad)
	t.next++
}

// Update fades every live ghost by dt seconds.
func (t *Trail) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		v, done := s.tween.Update(float32(dt))
		s.Alpha = float64(v)
		if done {
			s.live = false
			s.Alpha = 0
		}
	}
}

// Ghosts returns the visible ghosts, oldest first.
func (t *Trail) Ghosts() []Ghost {
	n := uint64(len(t.slots))
	if n == 0 {
		return nil
	}
	out := make([]Ghost, 0, n)
	start := uint64(0)
	if t.next > n {
		start = t.next - n
	}
	for k := start; k < t.next; k++ {
		if g := t.slots[k%n]; g.live {
			out = append(out, g)
		}
	}
	return out
}

// Clear hides every ghost without releasing slots.
func (t *Trail) Clear() {
	for i := range t.slots {
		t.slots[i].live = false
		t.slots[i].Alpha = 0
	}
}
