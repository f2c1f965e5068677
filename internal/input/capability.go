package input

import (
	"strconv"
	"strings"
)

// Capabilities describes the host device. It is probed once and passed down
// so every consumer sees the same answer.
type Capabilities struct {
	Touch              bool `yaml:"touch" json:"touch"`
	CoarsePointer      bool `yaml:"coarse_pointer" json:"coarse_pointer"`
	Orientation        bool `yaml:"orientation" json:"orientation"`
	PermissionRequired bool `yaml:"permission_required" json:"permission_required"`
}

// Probe overlays environment overrides onto base. Unparseable values are ignored.
func Probe(base Capabilities, getenv func(string) string) Capabilities {
	if getenv == nil {
		return base
	}
	apply := func(key string, dst *bool) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
	c := base
	apply("CHAINSIM_TOUCH", &c.Touch)
	apply("CHAINSIM_COARSE_POINTER", &c.CoarsePointer)
	apply("CHAINSIM_ORIENTATION", &c.Orientation)
	apply("CHAINSIM_PERMISSION_REQUIRED", &c.PermissionRequired)
	return c
}

// HitSlop returns extra pixels added around the drag handle.
func (c Capabilities) HitSlop() float64 {
	if c.CoarsePointer || c.Touch {
		return 12
	}
	return 0
}
