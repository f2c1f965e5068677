package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/render"
	"github.com/san-kum/chainsim/internal/schedule"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount         = 12
	MaxCount             = 256
	DefaultTrailCapacity = 0
	DefaultPermission    = "grant"
)

type Config struct {
	Chain    ChainConfig   `yaml:"chain"`
	Motion   motion.Params `yaml:"motion"`
	Schedule schedule.Spec `yaml:"schedule"`
	Budget   motion.Budget `yaml:"budget"`
	Trail    TrailConfig   `yaml:"trail"`
	Device   DeviceConfig  `yaml:"device"`
	Theme    string        `yaml:"theme,omitempty"`
}

type ChainConfig struct {
	Count       int              `yaml:"count"`
	Mode        motion.InputMode `yaml:"mode"`
	HitPolicy   motion.HitPolicy `yaml:"hit_policy"`
	FollowHover bool             `yaml:"follow_hover"`
}

type TrailConfig struct {
	Capacity int     `yaml:"capacity"`
	Fade     float64 `yaml:"fade"`
}

// DeviceConfig describes the simulated device. Permission is the answer the
// simulated prompt gives: grant, deny or unsupported.
type DeviceConfig struct {
	input.Capabilities `yaml:",inline"`
	Permission         string `yaml:"permission"`
}

func DefaultConfig() *Config {
	return &Config{
		Chain: ChainConfig{
			Count:     DefaultCount,
			Mode:      motion.ModePointer,
			HitPolicy: motion.HitInnermost,
		},
		Motion:   motion.DefaultParams(),
		Schedule: schedule.DefaultSpec(),
		Budget:   motion.DefaultBudget(),
		Trail: TrailConfig{
			Capacity: DefaultTrailCapacity,
			Fade:     render.DefaultTrailFade,
		},
		Device: DeviceConfig{Permission: DefaultPermission},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse overlays a YAML document onto the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values that cannot be clamped into something meaningful.
// Motion parameters are never rejected; the engine sanitizes them.
func (c *Config) Validate() error {
	if c.Chain.Count < 0 || c.Chain.Count > MaxCount {
		return fmt.Errorf("chain.count %d not in [0, %d]: %w", c.Chain.Count, MaxCount, motion.ErrParameterBounds)
	}
	if c.Trail.Capacity < 0 {
		return fmt.Errorf("trail.capacity %d: %w", c.Trail.Capacity, motion.ErrParameterBounds)
	}
	if _, err := schedule.New(c.Schedule, c.Chain.Count, motion.Size{}, 0); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	switch strings.ToLower(c.Device.Permission) {
	case "", "grant", "deny", "unsupported":
	default:
		return fmt.Errorf("device.permission %q: %w", c.Device.Permission, motion.ErrParameterBounds)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Schedule.Palette != nil {
		out.Schedule.Palette = append([]string(nil), c.Schedule.Palette...)
	}
	return &out
}

// Capabilities returns the device capabilities with environment overrides applied.
func (c *Config) Capabilities(getenv func(string) string) input.Capabilities {
	return input.Probe(c.Device.Capabilities, getenv)
}

// AdapterConfig converts the document into what the render adapter consumes.
func (c *Config) AdapterConfig(caps input.Capabilities) render.Config {
	return render.Config{
		Count:       c.Chain.Count,
		Mode:        c.Chain.Mode,
		HitPolicy:   c.Chain.HitPolicy,
		FollowHover: c.Chain.FollowHover,
		Params:      c.Motion,
		Schedule:    c.Schedule,
		Budget:      c.Budget,
		Caps:        caps,
		TrailCap:    c.Trail.Capacity,
		TrailFade:   c.Trail.Fade,
	}
}

// Requester returns the simulated permission prompt for this device.
func (c *Config) Requester() input.Requester {
	switch strings.ToLower(c.Device.Permission) {
	case "unsupported":
		return nil
	case "deny":
		return input.RequesterFunc(func(context.Context) (bool, error) { return false, motion.ErrPermissionDenied })
	default:
		return input.RequesterFunc(func(context.Context) (bool, error) { return true, nil })
	}
}
