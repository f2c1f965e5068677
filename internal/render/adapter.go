package render

import (
	"context"
	"time"

	"github.com/san-kum/chainsim/internal/chain"
	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

// Config is everything the host supplies when mounting a chain.
type Config struct {
	Count       int
	Mode        motion.InputMode
	HitPolicy   motion.HitPolicy
	FollowHover bool
	Params      motion.Params
	Schedule    schedule.Spec
	Budget      motion.Budget
	Caps        input.Capabilities
	TrailCap    int
	TrailFade   float64
}

type observer struct {
	id uint32
	fn func([]motion.Vec2)
}

// Adapter wires input, integrator and schedule together for one host element.
// It is NOT safe for concurrent use; every method must be called from the
// goroutine that owns the frame loop.
type Adapter struct {
	cfg   Config
	chain *chain.Chain
	norm  *input.Normalizer
	perm  *input.Permission
	pacer *chain.Pacer
	trail *Trail

	host      motion.Rect
	container motion.Size
	ready     bool
	mounted   bool
	retired   bool
	dragging  bool

	observers []observer
	nextID    uint32
	lastTick  time.Time
}

// New builds an adapter. It fails only when the schedule colors are invalid.
func New(cfg Config) (*Adapter, error) {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	cfg.Params = cfg.Params.Sanitize()
	sched, err := schedule.New(cfg.Schedule, cfg.Count, motion.Size{}, cfg.Params.RotationPerStep)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		cfg:   cfg,
		chain: chain.New(cfg.Count, cfg.Params, sched),
		norm:  input.NewNormalizer(cfg.Params),
		perm:  input.NewPermission(cfg.Caps),
		pacer: chain.NewPacer(chain.FrameInterval),
		trail: NewTrail(cfg.TrailCap, cfg.TrailFade),
	}, nil
}

func (a *Adapter) Config() Config                { return a.cfg }
func (a *Adapter) Ready() bool                   { return a.ready }
func (a *Adapter) Mounted() bool                 { return a.mounted }
func (a *Adapter) Dragging() bool                { return a.dragging }
func (a *Adapter) Container() motion.Size        { return a.container }
func (a *Adapter) Host() motion.Rect             { return a.host }
func (a *Adapter) Target() motion.Vec2           { return a.norm.Target() }
func (a *Adapter) Permission() *input.Permission { return a.perm }
func (a *Adapter) Trail() *Trail                 { return a.trail }
func (a *Adapter) Schedule() schedule.Schedule   { return a.chain.Schedule() }
func (a *Adapter) Frame() uint64                 { return a.chain.Frame() }
func (a *Adapter) Positions() []motion.Vec2      { return a.chain.Positions() }
func (a *Adapter) InBounds(i int) bool           { return a.chain.InBounds(i) }
func (a *Adapter) Len() int                      { return a.chain.Len() }
func (a *Adapter) GyroActive() bool              { return a.cfg.Mode == motion.ModeGyro && a.perm.Active() }

// Mount starts accepting ticks. Mounting again after Unmount starts a fresh
// permission session.
func (a *Adapter) Mount() {
	if a.retired {
		a.perm = input.NewPermission(a.cfg.Caps)
		a.retired = false
	}
	a.mounted = true
	a.pacer.Reset()
	a.lastTick = time.Time{}
}

// Unmount stops the loop, drops listeners and invalidates any pending
// permission request.
func (a *Adapter) Unmount() {
	a.mounted = false
	a.retired = true
	a.dragging = false
	a.observers = nil
	a.perm.Invalidate()
	a.trail.Clear()
}

// Subscription removes an update observer.
type Subscription struct {
	id uint32
	a  *Adapter
}

func (s Subscription) Remove() {
	if s.a == nil {
		return
	}
	obs := s.a.observers
	for i := range obs {
		if obs[i].id == s.id {
			s.a.observers = append(obs[:i], obs[i+1:]...)
			return
		}
	}
}

// OnUpdate registers fn to receive the position list after every frame.
// The slice is a copy owned by fn.
func (a *Adapter) OnUpdate(fn func([]motion.Vec2)) Subscription {
	a.nextID++
	a.observers = append(a.observers, observer{id: a.nextID, fn: fn})
	return Subscription{id: a.nextID, a: a}
}

// Dispatch routes one raw event.
func (a *Adapter) Dispatch(e Event) {
	switch e.Kind {
	case EventPointerDown:
		a.PointerDown(e.X, e.Y)
	case EventPointerMove:
		a.PointerMove(e.X, e.Y)
	case EventPointerUp, EventPointerCancel:
		a.PointerUp()
	case EventOrientation:
		a.Orientation(e.Beta, e.Gamma)
	case EventResize:
		a.HandleResize(e.Host)
	}
}

// HandleResize recomputes the size budget from the host's client rectangle.
// An unusable size leaves the adapter not ready until the next resize.
func (a *Adapter) HandleResize(host motion.Rect) {
	container := a.cfg.Budget.Resolve(motion.Size{Width: host.Width, Height: host.Height})
	if container.Empty() {
		a.ready = false
		return
	}
	a.host = host
	a.container = container
	a.chain.Resize(container)
	a.syncBound()
	a.ready = true
}

func (a *Adapter) syncBound() {
	n := a.chain.Len()
	if n == 0 {
		a.norm.SetBound(motion.Vec2{})
		return
	}
	a.norm.SetBound(a.chain.Schedule().ClampBound(n - 1))
}

// local converts client coordinates to an unclamped container offset.
func (a *Adapter) local(x, y float64) motion.Vec2 {
	c := a.host.Center()
	return motion.Vec2{X: x - c.X, Y: y - c.Y}
}

// hit reports whether a press at client (x, y) may start a drag. The
// innermost policy tests the node as painted, rotation included, grown by the
// device hit slop on every side.
func (a *Adapter) hit(x, y float64) bool {
	if a.cfg.HitPolicy == motion.HitHost {
		return a.host.Contains(x, y)
	}
	n := a.chain.Len()
	if n == 0 {
		return false
	}
	t := a.transformAt(n - 1)
	slop := a.cfg.Caps.HitSlop()
	t.Width += 2 * slop
	t.Height += 2 * slop
	p := a.local(x, y)
	return t.Contains(p.X, p.Y)
}

// PointerDown starts a drag when the press lands on the drag handle.
func (a *Adapter) PointerDown(x, y float64) bool {
	if !a.ready || a.cfg.Mode == motion.ModeStatic || !a.hit(x, y) {
		return false
	}
	a.dragging = true
	a.norm.Pointer(x, y, a.host)
	return true
}

func (a *Adapter) PointerMove(x, y float64) {
	if !a.ready || a.cfg.Mode == motion.ModeStatic {
		return
	}
	if a.trail.Enabled() && a.host.Contains(x, y) {
		a.trail.Push(a.local(x, y))
	}
	if a.dragging || (a.cfg.FollowHover && a.host.Contains(x, y)) {
		a.norm.Pointer(x, y, a.host)
	}
}

// PointerUp ends a drag. The chain keeps easing toward the last target.
func (a *Adapter) PointerUp() { a.dragging = false }

// Orientation feeds device tilt while gyro input is active.
func (a *Adapter) Orientation(beta, gamma float64) {
	if !a.ready || !a.GyroActive() {
		return
	}
	a.norm.Orientation(beta, gamma)
}

// RequestPermission runs the orientation permission flow once.
func (a *Adapter) RequestPermission(ctx context.Context, r input.Requester) input.PermissionState {
	if !a.mounted {
		return a.perm.State()
	}
	return a.perm.Request(ctx, r)
}

// Tick advances one frame if the adapter is live and the pacer allows it.
func (a *Adapter) Tick(now time.Time) bool {
	if !a.mounted || !a.ready || !a.pacer.Ready(now) {
		return false
	}
	if !a.lastTick.IsZero() {
		a.trail.Update(now.Sub(a.lastTick).Seconds())
	}
	a.lastTick = now

	a.chain.Step(a.norm.Target())
	if len(a.observers) > 0 {
		obs := append([]observer(nil), a.observers...)
		for _, o := range obs {
			o.fn(a.chain.Positions())
		}
	}
	return true
}

// Still returns the transforms and container size for baking an image. It
// fails with ErrNotReady until the container has been measured.
func (a *Adapter) Still() ([]motion.Transform, motion.Size, error) {
	if !a.ready {
		return nil, motion.Size{}, motion.ErrNotReady
	}
	return a.Transforms(), a.container, nil
}

// Transforms returns the paintable state of every node, outermost first.
func (a *Adapter) Transforms() []motion.Transform {
	out := make([]motion.Transform, a.chain.Len())
	for i := range out {
		out[i] = a.transformAt(i)
	}
	return out
}

func (a *Adapter) transformAt(i int) motion.Transform {
	t := a.chain.Schedule().TransformAt(i, a.chain.At(i))
	if i == 0 {
		t.Radius = a.cfg.Params.BorderRadius
	}
	return t
}

// SetParams applies new motion parameters from the next frame on.
func (a *Adapter) SetParams(p motion.Params) {
	p = p.Sanitize()
	a.cfg.Params = p
	a.chain.SetParams(p)
	a.norm.SetParams(p)
	sched := a.chain.Schedule()
	sched.RotationPerStep = p.RotationPerStep
	a.chain.SetSchedule(sched)
}

// SetCount reshapes the chain without resetting surviving nodes.
func (a *Adapter) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	a.cfg.Count = n
	a.chain.Reshape(n)
	a.syncBound()
}

// SetSchedule swaps the size/color schedule.
func (a *Adapter) SetSchedule(spec schedule.Spec) error {
	sched, err := schedule.New(spec, a.chain.Len(), a.container, a.cfg.Params.RotationPerStep)
	if err != nil {
		return err
	}
	a.cfg.Schedule = spec
	a.chain.SetSchedule(sched)
	a.syncBound()
	return nil
}

// Run mounts the adapter and drives it until ctx is cancelled. Events are
// applied on the same goroutine as frames.
func (a *Adapter) Run(ctx context.Context, events <-chan Event) error {
	a.Mount()
	defer a.Unmount()

	ticker := time.NewTicker(a.pacer.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			a.Dispatch(e)
		case now := <-ticker.C:
			a.Tick(now)
		}
	}
}
