package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/schedule"
)

// Presets are the three shipped variants of the component.
var Presets = map[string]*Config{
	"drag": DefaultConfig(),
	"gyro": {
		Chain:    ChainConfig{Count: 8, Mode: motion.ModeGyro, HitPolicy: motion.HitHost, FollowHover: true},
		Motion:   motion.DefaultParams(),
		Schedule: schedule.Spec{ShrinkRatio: 0.09, MinSize: 24, MinStep: 4, StartColor: "#0f2027", EndColor: "#2dd4bf", CurvePower: 1.4},
		Budget:   motion.DefaultBudget(),
		Trail:    TrailConfig{Capacity: 16, Fade: 0.5},
		Device: DeviceConfig{
			Capabilities: input.Capabilities{Touch: true, Orientation: true, PermissionRequired: true},
			Permission:   "grant",
		},
	},
	"paper": {
		Chain: ChainConfig{Count: 1, Mode: motion.ModeGyro, HitPolicy: motion.HitHost},
		Motion: motion.Params{
			SpeedBase:        0.08,
			FollowMultiplier: motion.DefaultFollowMultiplier,
			FollowOffset:     motion.DefaultFollowOffset,
			DragSmoothing:    2,
			GyroSensitivity:  0.6,
			MovementRange:    60,
			DeadZone:         0.03,
			TiltSmoothing:    0.1,
		},
		Schedule: schedule.Spec{ShrinkRatio: 0.2, MinSize: 40, MinStep: 4, StartColor: "#f5f0e6", EndColor: "#f5f0e6"},
		Budget:   motion.DefaultBudget(),
		Trail:    TrailConfig{Fade: 0.4},
		Device: DeviceConfig{
			Capabilities: input.Capabilities{Orientation: true},
			Permission:   "grant",
		},
		Theme: "paper",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an ErrUnknownPreset error instead of nil.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%q: %w", name, motion.ErrUnknownPreset)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
