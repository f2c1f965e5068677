package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/chainsim/internal/chain"
	"github.com/san-kum/chainsim/internal/config"
	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/metrics"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/render"
)

// Epoch is the virtual clock's start time.
var Epoch = time.Unix(0, 0)

// SettleTolerance is how close, in pixels, every node must be to its
// reachable goal for the chain to count as settled.
const SettleTolerance = 0.5

type Result struct {
	Name       string
	Frames     [][]motion.Vec2
	Targets    []motion.Vec2
	Lag        []float64
	Transforms []motion.Transform
	Container  motion.Size
	Permission string
	Metrics    map[string]float64
	// Settle is the first recorded frame from which the chain stayed settled
	// until the end of the run, or -1.
	Settle int
}

// Final returns the last recorded positions.
func (r *Result) Final() []motion.Vec2 {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}

// Resolve picks the configuration a scenario runs with: the scenario's
// preset when it names one, otherwise base. A nonzero Count overrides either.
func Resolve(sc *Scenario, base *config.Config) (*config.Config, error) {
	cfg := base
	if sc.Preset != "" {
		p, err := config.LookupPreset(sc.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = cfg.Clone()
	if sc.Count > 0 {
		cfg.Chain.Count = sc.Count
	}
	return cfg, cfg.Validate()
}

// Run replays sc on a virtual clock that advances exactly one frame interval
// per frame. The adapter never sees wall-clock time, so two runs of the same
// scenario produce identical positions.
func Run(ctx context.Context, sc *Scenario, cfg *config.Config, extra ...metrics.Metric) (*Result, error) {
	sc = sc.Clone()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	cfg, err := Resolve(sc, cfg)
	if err != nil {
		return nil, err
	}
	a, err := render.New(cfg.AdapterConfig(cfg.Device.Capabilities))
	if err != nil {
		return nil, fmt.Errorf("adapter: %w", err)
	}

	lag := metrics.NewMaxLag()
	ms := append([]metrics.Metric{metrics.NewConvergence(), lag, metrics.NewClampViolations()}, extra...)

	a.Mount()
	defer a.Unmount()
	a.HandleResize(motion.Rect{Width: sc.Parent.Width, Height: sc.Parent.Height})

	res := &Result{
		Name:    sc.Name,
		Frames:  make([][]motion.Vec2, 0, sc.Frames),
		Targets: make([]motion.Vec2, 0, sc.Frames),
		Settle:  -1,
	}

	now := Epoch
	next := 0
	for f := 0; f < sc.Frames; f++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		for next < len(sc.Events) && sc.Events[next].Frame == f {
			apply(ctx, a, sc.Events[next])
			next++
		}

		if a.Tick(now) {
			frame := metrics.Frame{
				Index:     f,
				Target:    a.Target(),
				Positions: a.Positions(),
				Schedule:  a.Schedule(),
			}
			for _, m := range ms {
				m.Observe(frame)
			}
			settled := metrics.Converged(frame.Target, frame.Positions, frame.Schedule.ClampBound, SettleTolerance)
			switch {
			case !settled:
				res.Settle = -1
			case res.Settle < 0:
				res.Settle = len(res.Frames)
			}
			res.Frames = append(res.Frames, frame.Positions)
			res.Targets = append(res.Targets, frame.Target)
		}
		now = now.Add(chain.FrameInterval)
	}

	res.Lag = lag.Series()
	res.Transforms = a.Transforms()
	res.Container = a.Container()
	res.Permission = a.Permission().State().String()
	res.Metrics = metrics.Collect(ms)
	return res, nil
}

func apply(ctx context.Context, a *render.Adapter, e Event) {
	switch e.Kind {
	case "down":
		a.PointerDown(e.X, e.Y)
	case "move":
		a.PointerMove(e.X, e.Y)
	case "up", "cancel":
		a.PointerUp()
	case "orient":
		a.Orientation(e.Beta, e.Gamma)
	case "resize":
		a.HandleResize(motion.Rect{Width: e.Width, Height: e.Height})
	case "grant", "deny":
		granted := e.Kind == "grant"
		a.RequestPermission(ctx, input.RequesterFunc(func(context.Context) (bool, error) {
			return granted, nil
		}))
	}
}
