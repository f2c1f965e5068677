package scenario

import (
	"context"
	"fmt"

	"github.com/san-kum/chainsim/internal/config"
	"github.com/san-kum/chainsim/internal/motion"
	"golang.org/x/sync/errgroup"
)

// Sweep replays one scenario across a range of values for a motion parameter.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
	Settle  int
}

var sweepParams = map[string]func(*motion.Params, float64){
	"speed_base":        func(p *motion.Params, v float64) { p.SpeedBase = v },
	"follow_multiplier": func(p *motion.Params, v float64) { p.FollowMultiplier = v },
	"follow_offset":     func(p *motion.Params, v float64) { p.FollowOffset = v },
	"drag_smoothing":    func(p *motion.Params, v float64) { p.DragSmoothing = v },
	"movement_range":    func(p *motion.Params, v float64) { p.MovementRange = v },
}

// SweepParams lists the parameter names a Sweep accepts.
func SweepParams() []string {
	return []string{"drag_smoothing", "follow_multiplier", "follow_offset", "movement_range", "speed_base"}
}

// RunSweep runs every step concurrently; each step owns its own adapter.
func RunSweep(ctx context.Context, sc *Scenario, base *config.Config, sw Sweep) ([]SweepResult, error) {
	set, ok := sweepParams[sw.Param]
	if !ok {
		return nil, fmt.Errorf("sweep parameter %q: %w", sw.Param, motion.ErrParameterBounds)
	}
	if sw.Steps < 1 {
		return nil, fmt.Errorf("sweep steps %d: %w", sw.Steps, motion.ErrParameterBounds)
	}
	cfg, err := Resolve(sc, base)
	if err != nil {
		return nil, err
	}
	step := 0.0
	if sw.Steps > 1 {
		step = (sw.Max - sw.Min) / float64(sw.Steps-1)
	}

	results := make([]SweepResult, sw.Steps)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < sw.Steps; i++ {
		g.Go(func() error {
			v := sw.Min + float64(i)*step
			c := cfg.Clone()
			set(&c.Motion, v)
			local := sc.Clone()
			local.Preset = ""

			res, err := Run(ctx, local, c)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sw.Param, v, err)
			}
			results[i] = SweepResult{Value: v, Metrics: res.Metrics, Settle: res.Settle}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
