// Package scenario replays scripted input timelines against a chain on a
// virtual clock, so runs are reproducible frame for frame.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/san-kum/chainsim/internal/motion"
	"gopkg.in/yaml.v3"
)

const DefaultFrames = 600

// Scenario is a scripted run.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Count       int     `yaml:"count"`
	Frames      int     `yaml:"frames"`
	Parent      Parent  `yaml:"parent"`
	Events      []Event `yaml:"events"`
}

// Parent is the host element size in client pixels.
type Parent struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Event is one scripted input applied before the frame it names.
type Event struct {
	Frame  int     `yaml:"frame"`
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Beta   float64 `yaml:"beta"`
	Gamma  float64 `yaml:"gamma"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

var kinds = map[string]bool{
	"down": true, "move": true, "up": true, "cancel": true,
	"orient": true, "resize": true, "grant": true, "deny": true,
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Clone returns a copy that shares nothing with s.
func (s *Scenario) Clone() *Scenario {
	out := *s
	out.Events = append([]Event(nil), s.Events...)
	return &out
}

// Validate fills defaults, normalizes event kinds and orders events by frame.
func (s *Scenario) Validate() error {
	if s.Frames == 0 {
		s.Frames = DefaultFrames
	}
	if s.Frames < 0 {
		return fmt.Errorf("frames %d: %w", s.Frames, motion.ErrParameterBounds)
	}
	if s.Count < 0 {
		return fmt.Errorf("count %d: %w", s.Count, motion.ErrParameterBounds)
	}
	if s.Parent.Width == 0 && s.Parent.Height == 0 {
		s.Parent = Parent{Width: 800, Height: 600}
	}
	for i := range s.Events {
		e := &s.Events[i]
		e.Kind = strings.ToLower(strings.TrimSpace(e.Kind))
		if !kinds[e.Kind] {
			return fmt.Errorf("event %d: unknown kind %q: %w", i, e.Kind, motion.ErrParameterBounds)
		}
		if e.Frame < 0 || e.Frame >= s.Frames {
			return fmt.Errorf("event %d: frame %d outside [0, %d): %w", i, e.Frame, s.Frames, motion.ErrParameterBounds)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Frame < s.Events[j].Frame })
	return nil
}
