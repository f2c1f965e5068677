package motion

import (
	"fmt"
	"math"
	"strings"
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Clamp limits each axis to [-bound, bound].
func (v Vec2) Clamp(bound Vec2) Vec2 {
	return Vec2{Clamp(v.X, -bound.X, bound.X), Clamp(v.Y, -bound.Y, bound.Y)}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Empty reports whether the size cannot hold anything.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis-aligned rectangle in client (viewport) pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Transform is what a host paints for one node. X and Y are the center offset
// from the container center.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Color    string  `json:"color"`
	Rotation float64 `json:"rotation"`
	Radius   float64 `json:"radius,omitempty"`
}

// Bounds returns the unrotated bounding box relative to the container center.
func (t Transform) Bounds() (minX, minY, maxX, maxY float64) {
	return t.X - t.Width/2, t.Y - t.Height/2, t.X + t.Width/2, t.Y + t.Height/2
}

// Reach is the radius of the smallest circle around the center that holds the
// node at any rotation.
func (t Transform) Reach() float64 { return math.Hypot(t.Width/2, t.Height/2) }

// Contains reports whether (x, y), relative to the container center, lies
// inside the rotated, rounded node.
func (t Transform) Contains(x, y float64) bool {
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	dx, dy := x-t.X, y-t.Y
	ax := math.Abs(dx*cos + dy*sin)
	ay := math.Abs(-dx*sin + dy*cos)
	hw, hh := t.Width/2, t.Height/2
	if ax > hw || ay > hh {
		return false
	}
	r := math.Min(t.Radius, math.Min(hw, hh))
	if r <= 0 {
		return true
	}
	qx, qy := ax-(hw-r), ay-(hh-r)
	if qx <= 0 || qy <= 0 {
		return true
	}
	return qx*qx+qy*qy <= r*r
}

type InputMode int

const (
	ModePointer InputMode = iota
	ModeGyro
	ModeStatic
)

func (m InputMode) String() string {
	switch m {
	case ModePointer:
		return "pointer"
	case ModeGyro:
		return "gyro"
	case ModeStatic:
		return "static"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pointer", "drag":
		return ModePointer, nil
	case "gyro", "gyroscope", "tilt":
		return ModeGyro, nil
	case "static", "none":
		return ModeStatic, nil
	}
	return ModePointer, fmt.Errorf("unknown input mode %q: %w", s, ErrParameterBounds)
}

func (m InputMode) MarshalYAML() (interface{}, error) { return m.String(), nil }

func (m *InputMode) UnmarshalText(text []byte) error {
	v, err := ParseInputMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// HitPolicy selects which region starts a drag.
type HitPolicy int

const (
	// HitInnermost only starts a drag over the smallest node.
	HitInnermost HitPolicy = iota
	// HitHost starts a drag anywhere over the host element.
	HitHost
)

func (h HitPolicy) String() string {
	if h == HitHost {
		return "host"
	}
	return "innermost"
}

func ParseHitPolicy(s string) (HitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "innermost", "handle":
		return HitInnermost, nil
	case "host", "whole", "all":
		return HitHost, nil
	}
	return HitInnermost, fmt.Errorf("unknown hit policy %q: %w", s, ErrParameterBounds)
}

func (h HitPolicy) MarshalYAML() (interface{}, error) { return h.String(), nil }

func (h *HitPolicy) UnmarshalText(text []byte) error {
	v, err := ParseHitPolicy(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
