package motion

import "math"

const (
	DefaultSpeedBase        = 0.12
	DefaultFollowMultiplier = 0.8
	DefaultFollowOffset     = 0.4
	DefaultDragSmoothing    = 1.0
	DefaultGyroSensitivity  = 1.0
	DefaultMovementRange    = 240.0
	DefaultRotationPerStep  = 4.0
	DefaultBorderRadius     = 12.0
	DefaultTiltSmoothing    = 0.1

	// MinFollowRate keeps every node moving so the chain always converges.
	MinFollowRate = 0.001
)

// Params is the per-session motion configuration. The engine reads it and
// never writes it.
type Params struct {
	SpeedBase        float64 `yaml:"speed_base" json:"speed_base"`
	FollowMultiplier float64 `yaml:"follow_multiplier" json:"follow_multiplier"`
	FollowOffset     float64 `yaml:"follow_offset" json:"follow_offset"`
	DragSmoothing    float64 `yaml:"drag_smoothing" json:"drag_smoothing"`
	GyroSensitivity  float64 `yaml:"gyro_sensitivity" json:"gyro_sensitivity"`
	MovementRange    float64 `yaml:"movement_range" json:"movement_range"`
	RotationPerStep  float64 `yaml:"rotation_per_step" json:"rotation_per_step"`
	BorderRadius     float64 `yaml:"border_radius" json:"border_radius"`
	DeadZone         float64 `yaml:"dead_zone" json:"dead_zone"`
	TiltSmoothing    float64 `yaml:"tilt_smoothing" json:"tilt_smoothing"`
}

func DefaultParams() Params {
	return Params{
		SpeedBase:        DefaultSpeedBase,
		FollowMultiplier: DefaultFollowMultiplier,
		FollowOffset:     DefaultFollowOffset,
		DragSmoothing:    DefaultDragSmoothing,
		GyroSensitivity:  DefaultGyroSensitivity,
		MovementRange:    DefaultMovementRange,
		RotationPerStep:  DefaultRotationPerStep,
		BorderRadius:     DefaultBorderRadius,
		TiltSmoothing:    DefaultTiltSmoothing,
	}
}

// Sanitize returns a copy with every field forced into its usable range.
// Out-of-range values are clamped, never rejected.
func (p Params) Sanitize() Params {
	if !(p.SpeedBase > 0) {
		p.SpeedBase = DefaultSpeedBase
	}
	p.SpeedBase = math.Min(p.SpeedBase, 1)
	p.FollowMultiplier = finite(p.FollowMultiplier, DefaultFollowMultiplier)
	p.FollowOffset = finite(p.FollowOffset, DefaultFollowOffset)
	p.RotationPerStep = finite(p.RotationPerStep, DefaultRotationPerStep)
	if !(p.DragSmoothing > 0) {
		p.DragSmoothing = DefaultDragSmoothing
	}
	if p.GyroSensitivity < 0 || math.IsNaN(p.GyroSensitivity) {
		p.GyroSensitivity = 0
	}
	if p.MovementRange < 0 || math.IsNaN(p.MovementRange) {
		p.MovementRange = 0
	}
	if !(p.BorderRadius >= 0) || math.IsInf(p.BorderRadius, 1) {
		p.BorderRadius = 0
	}
	p.DeadZone = Clamp(finite(p.DeadZone, 0), 0, 0.5)
	if !(p.TiltSmoothing > 0) {
		p.TiltSmoothing = DefaultTiltSmoothing
	}
	p.TiltSmoothing = math.Min(p.TiltSmoothing, 1)
	return p
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// FollowRate returns the easing rate of node i in a chain of n nodes. The
// leading node (n-1) always eases at SpeedBase; followers scale it by depth.
func (p Params) FollowRate(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	if i >= n-1 {
		return Clamp(p.SpeedBase, MinFollowRate, 1)
	}
	depth := float64(i) / float64(n)
	return Clamp(p.SpeedBase*(p.FollowMultiplier+depth*p.FollowOffset), MinFollowRate, 1)
}

const (
	DefaultCapWidth       = 640.0
	DefaultCapHeight      = 640.0
	DefaultParentFraction = 0.9
	DefaultAspectCap      = 1.6
	DefaultBudgetMin      = 80.0
	DefaultBudgetMax      = 1200.0
)

// Budget describes how the container size is derived from its parent.
type Budget struct {
	CapWidth             float64 `yaml:"cap_width" json:"cap_width"`
	CapHeight            float64 `yaml:"cap_height" json:"cap_height"`
	ParentWidthFraction  float64 `yaml:"parent_width_fraction" json:"parent_width_fraction"`
	ParentHeightFraction float64 `yaml:"parent_height_fraction" json:"parent_height_fraction"`
	// AspectCap limits the longer side to AspectCap times the shorter one; 0 disables it.
	AspectCap float64 `yaml:"aspect_cap" json:"aspect_cap"`
	MinSize   float64 `yaml:"min_size" json:"min_size"`
	MaxSize   float64 `yaml:"max_size" json:"max_size"`
}

func DefaultBudget() Budget {
	return Budget{
		CapWidth:             DefaultCapWidth,
		CapHeight:            DefaultCapHeight,
		ParentWidthFraction:  DefaultParentFraction,
		ParentHeightFraction: DefaultParentFraction,
		AspectCap:            DefaultAspectCap,
		MinSize:              DefaultBudgetMin,
		MaxSize:              DefaultBudgetMax,
	}
}

// Resolve computes the container size for a parent of the given size. A parent
// with no area yields an empty size so callers can defer initialization.
func (b Budget) Resolve(parent Size) Size {
	if parent.Empty() {
		return Size{}
	}
	wf, hf := b.ParentWidthFraction, b.ParentHeightFraction
	if !(wf > 0) {
		wf = 1
	}
	if !(hf > 0) {
		hf = 1
	}
	w, h := parent.Width*wf, parent.Height*hf
	if b.CapWidth > 0 {
		w = math.Min(w, b.CapWidth)
	}
	if b.CapHeight > 0 {
		h = math.Min(h, b.CapHeight)
	}
	if b.AspectCap >= 1 {
		if w > h*b.AspectCap {
			w = h * b.AspectCap
		}
		if h > w*b.AspectCap {
			h = w * b.AspectCap
		}
	}
	lo, hi := b.MinSize, b.MaxSize
	if hi <= 0 {
		hi = math.Inf(1)
	}
	w = Clamp(w, lo, hi)
	h = Clamp(h, lo, hi)
	// never exceed the parent itself, even when MinSize asks for more
	w = math.Min(w, parent.Width)
	h = math.Min(h, parent.Height)
	return Size{Width: w, Height: h}
}
