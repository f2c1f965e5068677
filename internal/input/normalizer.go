package input

import (
	"math"

	"github.com/san-kum/chainsim/internal/motion"
)

const (
	// MaxTilt is the largest beta/gamma magnitude, in degrees, that still moves the chain.
	MaxTilt = 45.0
	// TiltRange is the full span of accepted angles.
	TiltRange = 2 * MaxTilt
)

// Normalizer owns the current target. It is written by input handlers and read
// by the integrator once per frame.
type Normalizer struct {
	params motion.Params
	bound  motion.Vec2
	target motion.Vec2
	tilt   motion.Vec2
}

func NewNormalizer(p motion.Params) *Normalizer {
	return &Normalizer{params: p.Sanitize()}
}

func (n *Normalizer) SetParams(p motion.Params) { n.params = p.Sanitize() }

// SetBound sets the clamp box of the innermost node and re-clamps the target.
func (n *Normalizer) SetBound(b motion.Vec2) {
	n.bound = motion.Vec2{X: math.Max(0, b.X), Y: math.Max(0, b.Y)}
	n.target = n.target.Clamp(n.bound)
}

func (n *Normalizer) Bound() motion.Vec2  { return n.bound }
func (n *Normalizer) Target() motion.Vec2 { return n.target }

// Set places the target directly, clamped.
func (n *Normalizer) Set(v motion.Vec2) motion.Vec2 {
	if !v.IsValid() {
		v = motion.Vec2{}
	}
	n.target = v.Clamp(n.bound)
	return n.target
}

// Pointer converts client coordinates over host into a target offset.
func (n *Normalizer) Pointer(clientX, clientY float64, host motion.Rect) motion.Vec2 {
	c := host.Center()
	local := motion.Vec2{X: clientX - c.X, Y: clientY - c.Y}
	return n.Set(local.Scale(1 / n.params.DragSmoothing))
}

// Orientation converts device tilt in degrees (beta front/back, gamma
// left/right) into a target offset. Gamma drives x and beta drives y.
func (n *Normalizer) Orientation(beta, gamma float64) motion.Vec2 {
	norm := motion.Vec2{X: normalizeAngle(gamma), Y: normalizeAngle(beta)}
	if dz := n.params.DeadZone; dz > 0 {
		norm.X = deadZone(norm.X, dz)
		norm.Y = deadZone(norm.Y, dz)
		n.tilt = n.tilt.Add(norm.Sub(n.tilt).Scale(n.params.TiltSmoothing))
		norm = n.tilt
	}
	return n.Set(norm.Scale(n.params.GyroSensitivity * n.params.MovementRange))
}

// normalizeAngle clamps deg to [-MaxTilt, MaxTilt] and maps it to [-0.5, 0.5].
func normalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) {
		return 0
	}
	return motion.Clamp(deg, -MaxTilt, MaxTilt) / TiltRange
}

func deadZone(v, zone float64) float64 {
	if math.Abs(v) < zone {
		return 0
	}
	return v
}
