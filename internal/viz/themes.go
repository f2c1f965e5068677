package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is the palette of everything the live view paints besides the nodes,
// which keep their schedule colors.
type Theme struct {
	Name       string
	Background string
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Warning    lipgloss.Color
	Ghost      string
	Target     string
}

var (
	ThemeNight = Theme{
		Name:       "night",
		Background: "#0a0a12",
		Border:     lipgloss.Color("#444466"),
		Text:       lipgloss.Color("#e6e6f0"),
		Muted:      lipgloss.Color("#666688"),
		Accent:     lipgloss.Color("#00ccff"),
		Warning:    lipgloss.Color("#ffaa00"),
		Ghost:      "#9fb4ff",
		Target:     "#ffffff",
	}

	ThemePaper = Theme{
		Name:       "paper",
		Background: "#f5f0e6",
		Border:     lipgloss.Color("#b8a98c"),
		Text:       lipgloss.Color("#2b2620"),
		Muted:      lipgloss.Color("#8a7f6d"),
		Accent:     lipgloss.Color("#c2410c"),
		Warning:    lipgloss.Color("#b45309"),
		Ghost:      "#6b5e4a",
		Target:     "#1f1a14",
	}

	ThemeMono = Theme{
		Name:       "mono",
		Background: "#000000",
		Border:     lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#ffffff"),
		Warning:    lipgloss.Color("#cccccc"),
		Ghost:      "#aaaaaa",
		Target:     "#ffffff",
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: "#001a33",
		Border:     lipgloss.Color("#4488aa"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
		Warning:    lipgloss.Color("#ffcc00"),
		Ghost:      "#00a8cc",
		Target:     "#ffd700",
	}

	Themes = []Theme{ThemeNight, ThemePaper, ThemeMono, ThemeOcean}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Fade mixes hex toward the theme background; alpha 1 keeps hex unchanged.
func (t Theme) Fade(hex string, alpha float64) string {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return t.Background
	}
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return hex
	}
	if alpha >= 1 {
		return hex
	}
	if alpha <= 0 {
		return t.Background
	}
	return bg.BlendRgb(fg, alpha).Clamped().Hex()
}
