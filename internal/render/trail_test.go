package render

import (
	"testing"

	"github.com/san-kum/chainsim/internal/motion"
)

func TestTrail_RingOverwritesOldest(t *testing.T) {
	tr := NewTrail(3, 0.4)
	for i := 0; i < 5; i++ {
		tr.Push(motion.Vec2{X: float64(i)})
	}

	g := tr.Ghosts()
	if len(g) != 3 {
		t.Fatalf("ghosts = %d, want 3", len(g))
	}
	for k, want := range []float64{2, 3, 4} {
		if g[k].Pos.X != want {
			t.Errorf("ghost %d x = %f, want %f", k, g[k].Pos.X, want)
		}
		if g[k].Alpha != 1 {
			t.Errorf("fresh ghost %d alpha = %f, want 1", k, g[k].Alpha)
		}
	}
	if tr.Pushed() != 5 {
		t.Errorf("pushed = %d, want 5", tr.Pushed())
	}
}

func TestTrail_Fades(t *testing.T) {
	tr := NewTrail(2, 0.4)
	tr.Push(motion.Vec2{X: 1})

	tr.Update(0.2)
	g := tr.Ghosts()
	if len(g) != 1 {
		t.Fatalf("ghosts = %d, want 1 mid-fade", len(g))
	}
	if g[0].Alpha <= 0 || g[0].Alpha >= 1 {
		t.Errorf("mid-fade alpha = %f, want in (0,1)", g[0].Alpha)
	}

	tr.Update(0.5)
	if n := len(tr.Ghosts()); n != 0 {
		t.Errorf("ghosts after fade = %d, want 0", n)
	}
}

func TestTrail_Disabled(t *testing.T) {
	tr := NewTrail(0, 0)
	tr.Push(motion.Vec2{X: 1})
	tr.Update(1)

	if tr.Enabled() {
		t.Error("zero-capacity trail should be disabled")
	}
	if tr.Ghosts() != nil {
		t.Error("disabled trail should have no ghosts")
	}
}

func TestTrail_Clear(t *testing.T) {
	tr := NewTrail(4, 1)
	tr.Push(motion.Vec2{X: 1})
	tr.Push(motion.Vec2{X: 2})
	tr.Clear()

	if n := len(tr.Ghosts()); n != 0 {
		t.Errorf("ghosts after clear = %d, want 0", n)
	}
	if tr.Cap() != 4 {
		t.Errorf("cap after clear = %d, want 4", tr.Cap())
	}
}
