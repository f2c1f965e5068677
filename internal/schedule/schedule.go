// Package schedule maps a node index to its visual attributes: size, color
// and rotation. Everything here is pure and deterministic.
package schedule

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chainsim/internal/motion"
)

const (
	DefaultShrinkRatio = 0.07
	DefaultMinSize     = 20.0
	DefaultMinStep     = 4.0
	DefaultStartColor  = "#1b1b3a"
	DefaultEndColor    = "#ff6b6b"
	DefaultCurvePower  = 1.0
)

// Spec is the configurable part of a schedule.
type Spec struct {
	ShrinkRatio    float64  `yaml:"shrink_ratio" json:"shrink_ratio"`
	MinSize        float64  `yaml:"min_size" json:"min_size"`
	MinStep        float64  `yaml:"min_step" json:"min_step"`
	StartColor     string   `yaml:"start_color" json:"start_color"`
	EndColor       string   `yaml:"end_color" json:"end_color"`
	Palette        []string `yaml:"palette,omitempty" json:"palette,omitempty"`
	CurvePower     float64  `yaml:"curve_power" json:"curve_power"`
	RotationOffset float64  `yaml:"rotation_offset" json:"rotation_offset"`
}

func DefaultSpec() Spec {
	return Spec{
		ShrinkRatio: DefaultShrinkRatio,
		MinSize:     DefaultMinSize,
		MinStep:     DefaultMinStep,
		StartColor:  DefaultStartColor,
		EndColor:    DefaultEndColor,
		CurvePower:  DefaultCurvePower,
	}
}

// Schedule is a resolved Spec for a concrete chain length and container.
type Schedule struct {
	Spec
	Count           int
	Container       motion.Size
	RotationPerStep float64

	start, end colorful.Color
}

// New resolves spec for n nodes inside container. It fails only when an
// endpoint color cannot be parsed.
func New(spec Spec, n int, container motion.Size, rotationPerStep float64) (Schedule, error) {
	start, err := colorful.Hex(spec.StartColor)
	if err != nil {
		return Schedule{}, fmt.Errorf("start color %q: %w", spec.StartColor, err)
	}
	end, err := colorful.Hex(spec.EndColor)
	if err != nil {
		return Schedule{}, fmt.Errorf("end color %q: %w", spec.EndColor, err)
	}
	for i, c := range spec.Palette {
		if _, err := colorful.Hex(c); err != nil {
			return Schedule{}, fmt.Errorf("palette[%d] %q: %w", i, c, err)
		}
	}
	if n < 0 {
		n = 0
	}
	if spec.MinSize < 0 {
		spec.MinSize = 0
	}
	if spec.MinStep < 0 {
		spec.MinStep = 0
	}
	if spec.ShrinkRatio < 0 {
		spec.ShrinkRatio = 0
	}
	return Schedule{
		Spec:            spec,
		Count:           n,
		Container:       container,
		RotationPerStep: rotationPerStep,
		start:           start,
		end:             end,
	}, nil
}

// Resize returns a copy of s for a different container.
func (s Schedule) Resize(container motion.Size) Schedule {
	s.Container = container
	return s
}

// WithCount returns a copy of s for a different chain length.
func (s Schedule) WithCount(n int) Schedule {
	if n < 0 {
		n = 0
	}
	s.Count = n
	return s
}

// Step returns the per-index reduction along each axis.
func (s Schedule) Step() (float64, float64) {
	return math.Max(s.MinStep, s.Container.Width*s.ShrinkRatio),
		math.Max(s.MinStep, s.Container.Height*s.ShrinkRatio)
}

// SizeAt returns the size of node i. Sizes never increase with i and never
// drop below MinSize.
func (s Schedule) SizeAt(i int) motion.Size {
	sw, sh := s.Step()
	fi := float64(i)
	return motion.Size{
		Width:  math.Max(s.MinSize, s.Container.Width-fi*sw),
		Height: math.Max(s.MinSize, s.Container.Height-fi*sh),
	}
}

// ClampBound returns the half extents of the box node i's center may occupy
// so that its bounding box stays inside the container.
func (s Schedule) ClampBound(i int) motion.Vec2 {
	sz := s.SizeAt(i)
	return motion.Vec2{
		X: math.Max(0, (s.Container.Width-sz.Width)/2),
		Y: math.Max(0, (s.Container.Height-sz.Height)/2),
	}
}

// Curve returns the warped interpolation parameter for node i.
func (s Schedule) Curve(i int) float64 {
	if s.Count <= 1 {
		return 0
	}
	t := motion.Clamp(float64(i)/float64(s.Count-1), 0, 1)
	p := s.CurvePower
	if !(p > 0) {
		p = 1
	}
	return math.Pow(t, p)
}

// RGBAt interpolates the endpoint colors for node i, rounding each channel.
func (s Schedule) RGBAt(i int) (r, g, b uint8) {
	t := s.Curve(i)
	lerp := func(a, b float64) uint8 {
		return uint8(motion.Clamp(math.Round(255*(a+t*(b-a))), 0, 255))
	}
	return lerp(s.start.R, s.end.R), lerp(s.start.G, s.end.G), lerp(s.start.B, s.end.B)
}

// ColorAt returns the palette entry for i when there is one, otherwise the
// interpolated color as lowercase #rrggbb.
func (s Schedule) ColorAt(i int) string {
	if i >= 0 && i < len(s.Palette) {
		return s.Palette[i]
	}
	r, g, b := s.RGBAt(i)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RotationAt returns node i's rotation in degrees.
func (s Schedule) RotationAt(i int) float64 {
	return s.RotationOffset + float64(i)*s.RotationPerStep
}

// TransformAt combines the schedule for node i with its current position.
func (s Schedule) TransformAt(i int, pos motion.Vec2) motion.Transform {
	sz := s.SizeAt(i)
	return motion.Transform{
		X:        pos.X,
		Y:        pos.Y,
		Width:    sz.Width,
		Height:   sz.Height,
		Color:    s.ColorAt(i),
		Rotation: s.RotationAt(i),
	}
}
