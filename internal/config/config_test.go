package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/motion"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chain.Count != DefaultCount {
		t.Errorf("expected count %d, got %d", DefaultCount, cfg.Chain.Count)
	}
	if cfg.Chain.Mode != motion.ModePointer {
		t.Errorf("expected pointer mode, got %v", cfg.Chain.Mode)
	}
	if cfg.Motion.SpeedBase <= 0 {
		t.Error("speed base should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParse_Overlay(t *testing.T) {
	doc := []byte(`
chain:
  count: 6
  mode: gyro
  hit_policy: host
motion:
  speed_base: 0.3
device:
  orientation: true
  permission: deny
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Chain.Count != 6 || cfg.Chain.Mode != motion.ModeGyro || cfg.Chain.HitPolicy != motion.HitHost {
		t.Errorf("chain section not applied: %+v", cfg.Chain)
	}
	if cfg.Motion.SpeedBase != 0.3 {
		t.Errorf("expected speed base 0.3, got %f", cfg.Motion.SpeedBase)
	}
	if cfg.Motion.FollowMultiplier != motion.DefaultFollowMultiplier {
		t.Error("unset motion fields should keep their defaults")
	}
	if !cfg.Device.Orientation {
		t.Error("inline device capabilities not applied")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative count", "chain: {count: -1}"},
		{"huge count", "chain: {count: 100000}"},
		{"bad mode", "chain: {mode: sideways}"},
		{"bad color", "schedule: {start_color: notacolor}"},
		{"bad permission", "device: {permission: maybe}"},
		{"negative trail", "trail: {capacity: -2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := Parse([]byte("chain: {count: -1}"))
	if !errors.Is(err, motion.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	cfg := GetPreset("gyro")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Chain != cfg.Chain || got.Motion != cfg.Motion || got.Device != cfg.Device {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("paper")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Chain.Count != 1 || cfg.Motion.DeadZone <= 0 {
		t.Errorf("paper preset should be a single dead-zone layer, got %+v", cfg.Chain)
	}

	cfg.Chain.Count = 99
	if Presets["paper"].Chain.Count == 99 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := LookupPreset("nonexistent"); !errors.Is(err, motion.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"drag", "gyro", "paper"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("preset %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	for _, name := range got {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestRequester(t *testing.T) {
	tests := []struct {
		permission string
		want       input.PermissionState
	}{
		{"grant", input.PermissionGranted},
		{"deny", input.PermissionDenied},
		{"unsupported", input.PermissionUnsupported},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Device = DeviceConfig{
			Capabilities: input.Capabilities{Orientation: true, PermissionRequired: true},
			Permission:   tt.permission,
		}
		p := input.NewPermission(cfg.Device.Capabilities)
		if got := p.Request(t.Context(), cfg.Requester()); got != tt.want {
			t.Errorf("permission %s: expected %v, got %v", tt.permission, tt.want, got)
		}
	}
}

func TestCapabilities_EnvOverride(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{"CHAINSIM_TOUCH": "true", "CHAINSIM_ORIENTATION": "1"}
	caps := cfg.Capabilities(func(k string) string { return env[k] })
	if !caps.Touch || !caps.Orientation {
		t.Errorf("env overrides not applied: %+v", caps)
	}

	ac := cfg.AdapterConfig(caps)
	if ac.Count != cfg.Chain.Count || ac.Caps != caps {
		t.Errorf("adapter config mismatch: %+v", ac)
	}
}
