package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/chainsim/internal/config"
)

var presetInfo = map[string]string{
	"drag":  "nested squares, drag the innermost",
	"gyro":  "tilt or hover, trail of ghosts",
	"paper": "one layer, slow tilt with dead zone",
}

const (
	stateMenu = iota
	stateLive
)

// picker lists the presets and hands the chosen one to a live Model.
type picker struct {
	state   int
	cursor  int
	presets []string
	getenv  func(string) string
	outDir  string
	styles  styles
	live    Model
	err     error
	size    tea.WindowSizeMsg
}

func newPicker(getenv func(string) string, outDir string) picker {
	return picker{
		presets: config.ListPresets(),
		getenv:  getenv,
		outDir:  outDir,
		styles:  newStyles(ThemeNight),
	}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.size = size
	}
	if p.state == stateLive {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start()
	}
	return p, nil
}

func (p picker) start() (tea.Model, tea.Cmd) {
	cfg, err := config.LookupPreset(p.presets[p.cursor])
	if err != nil {
		p.err = err
		return p, nil
	}
	live, err := NewModel(cfg, cfg.Capabilities(p.getenv))
	if err != nil {
		p.err = err
		return p, nil
	}
	p.live = live.WithOutput(p.outDir, nil)
	p.state = stateLive
	if p.size.Width > 0 {
		next, _ := p.live.Update(p.size)
		p.live = next.(Model)
	}
	return p, p.live.Init()
}

func (p picker) View() string {
	if p.state == stateLive {
		return p.live.View()
	}
	st := p.styles
	var b strings.Builder
	b.WriteString("\n    " + st.header.Render("CHAINSIM") + "\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-8s %s", name, presetInfo[name])
		if i == p.cursor {
			b.WriteString("  " + st.current.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + st.picker.Render(line) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + st.warn.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.hint.Render("j/k navigate  enter start  q quit") + "\n")
	return b.String()
}

// RunPicker shows the preset menu, then the live view of the chosen preset.
func RunPicker(getenv func(string) string, outDir string) error {
	p := tea.NewProgram(newPicker(getenv, outDir), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
