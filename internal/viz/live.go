package viz

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chainsim/internal/chain"
	"github.com/san-kum/chainsim/internal/config"
	"github.com/san-kum/chainsim/internal/input"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/render"
	"github.com/san-kum/chainsim/internal/share"
)

const (
	panelWidth  = 36
	lagCapacity = 120
	tiltStep    = 5.0
	maxDevice   = 90.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(chain.FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts one chain in the terminal. Mouse events drive the pointer path
// and arrow keys stand in for device tilt.
type Model struct {
	cfg       *config.Config
	adapter   *render.Adapter
	requester input.Requester
	clipboard io.Writer
	outDir    string

	width, height int
	canvas        *Canvas
	theme         Theme
	styles        styles

	running  bool
	showHelp bool
	beta     float64
	gamma    float64
	lag      []float64
	status   string
	statusOK bool
}

// NewModel mounts a new adapter for cfg. caps is the probed device.
func NewModel(cfg *config.Config, caps input.Capabilities) (Model, error) {
	a, err := render.New(cfg.AdapterConfig(caps))
	if err != nil {
		return Model{}, err
	}
	a.Mount()
	theme := GetTheme(cfg.Theme)
	return Model{
		cfg:       cfg,
		adapter:   a,
		requester: cfg.Requester(),
		clipboard: os.Stderr,
		outDir:    ".",
		width:     80,
		height:    24,
		canvas:    NewCanvas(0, 0, theme.Background),
		theme:     theme,
		styles:    newStyles(theme),
		running:   true,
		lag:       make([]float64, 0, lagCapacity),
	}, nil
}

// WithOutput sets where stills are written and where clipboard sequences go.
func (m Model) WithOutput(dir string, clipboard io.Writer) Model {
	if dir != "" {
		m.outDir = dir
	}
	if clipboard != nil {
		m.clipboard = clipboard
	}
	return m
}

func (m Model) Adapter() *render.Adapter { return m.adapter }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	case TickMsg:
		if m.running && m.adapter.Tick(time.Time(msg)) {
			m.recordLag()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols, rows := max(w-panelWidth, 0), max(h, 0)
	m.canvas = NewCanvas(cols, rows, m.theme.Background)
	m.adapter.HandleResize(motion.Rect{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)})
	log.Printf("resize %dx%d cells, container %+v ready=%v", cols, rows, m.adapter.Container(), m.adapter.Ready())
}

// clientPos maps a terminal cell to the client pixel at its center.
func clientPos(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * CellWidth, (float64(y) + 0.5) * CellHeight
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := clientPos(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.adapter.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.adapter.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.adapter.PointerUp()
	}
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.adapter.Unmount()
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = m.theme.Next()
		m.styles = newStyles(m.theme)
		m.canvas = NewCanvas(m.canvas.Width, m.canvas.Height, m.theme.Background)
	case "up":
		m.tilt(-tiltStep, 0)
	case "down":
		m.tilt(tiltStep, 0)
	case "left":
		m.tilt(0, -tiltStep)
	case "right":
		m.tilt(0, tiltStep)
	case "0":
		m.beta, m.gamma = 0, 0
		m.tilt(0, 0)
	case "p":
		st := m.adapter.RequestPermission(context.Background(), m.requester)
		m.setStatus(st == input.PermissionGranted, "orientation "+st.String())
	case "c":
		ack := share.CopyParams(m.clipboard, m.cfg)
		m.setStatus(ack.OK, ack.Message)
	case "s":
		tr, size, err := m.adapter.Still()
		if err != nil {
			m.setStatus(false, "still failed: "+err.Error())
			break
		}
		name := fmt.Sprintf("chainsim_%d.png", time.Now().Unix())
		ack := share.WritePNG(filepath.Join(m.outDir, name), tr, size)
		m.setStatus(ack.OK, ack.Message)
	case "+", "=":
		m.setCount(m.adapter.Len() + 1)
	case "-", "_":
		m.setCount(m.adapter.Len() - 1)
	case "[":
		m.scaleSpeed(0.9)
	case "]":
		m.scaleSpeed(1.1)
	}
	return m, nil
}

func (m *Model) tilt(dBeta, dGamma float64) {
	m.beta = motion.Clamp(m.beta+dBeta, -maxDevice, maxDevice)
	m.gamma = motion.Clamp(m.gamma+dGamma, -maxDevice, maxDevice)
	m.adapter.Orientation(m.beta, m.gamma)
}

func (m *Model) setCount(n int) {
	n = int(motion.Clamp(float64(n), 1, config.MaxCount))
	m.adapter.SetCount(n)
	m.cfg.Chain.Count = n
}

func (m *Model) scaleSpeed(f float64) {
	p := m.cfg.Motion
	p.SpeedBase = motion.Clamp(p.SpeedBase*f, motion.MinFollowRate, 1)
	m.cfg.Motion = p
	m.adapter.SetParams(p)
}

func (m *Model) setStatus(ok bool, msg string) {
	m.status, m.statusOK = msg, ok
	log.Printf("status ok=%v: %s", ok, msg)
}

func (m *Model) recordLag() {
	pos := m.adapter.Positions()
	v := 0.0
	if len(pos) > 1 {
		v = pos[0].Dist(pos[len(pos)-1])
	}
	m.lag = append(m.lag, v)
	if len(m.lag) > lagCapacity {
		m.lag = m.lag[1:]
	}
}

// draw rasterizes the chain, its trail and the target into the canvas.
func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	if !m.adapter.Ready() {
		return
	}
	host := m.adapter.Host().Center()
	const pw, ph = CellWidth, CellHeight / 2

	// canvas pixel (x, y) -> offset from the container center
	offset := func(x, y int) (float64, float64) {
		return (float64(x)+0.5)*pw - host.X, (float64(y)+0.5)*ph - host.Y
	}
	toPixel := func(v motion.Vec2) (int, int) {
		return int(math.Floor((v.X + host.X) / pw)), int(math.Floor((v.Y + host.Y) / ph))
	}

	for _, t := range m.adapter.Transforms() {
		x0, y0 := toPixel(motion.Vec2{X: t.X - t.Reach(), Y: t.Y - t.Reach()})
		x1, y1 := toPixel(motion.Vec2{X: t.X + t.Reach(), Y: t.Y + t.Reach()})
		for y := max(y0, 0); y <= y1 && y < len(c.Pix); y++ {
			for x := max(x0, 0); x <= x1 && x < c.Width; x++ {
				if ox, oy := offset(x, y); t.Contains(ox, oy) {
					c.Set(x, y, t.Color)
				}
			}
		}
	}

	for _, g := range m.adapter.Trail().Ghosts() {
		x, y := toPixel(g.Pos)
		c.Set(x, y, m.theme.Fade(m.theme.Ghost, g.Alpha))
	}

	pos := m.adapter.Positions()
	if len(pos) > 1 {
		x0, y0 := toPixel(pos[0])
		x1, y1 := toPixel(pos[len(pos)-1])
		c.DrawLine(x0, y0, x1, y1, m.theme.Fade(m.theme.Target, 0.35))
	}
	tx, ty := toPixel(m.adapter.Target())
	c.Set(tx, ty, m.theme.Target)
}

func (m Model) View() string {
	m.draw()
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), m.panel())
	if m.showHelp {
		return m.styles.help.Render(helpText) + "\n" + main
	}
	return main
}

const helpText = `mouse      drag the innermost square
arrows     tilt the simulated device
0          level the device
p          request orientation permission
c          copy parameters to clipboard
s          save a PNG still
+ / -      add / remove a square
[ / ]      slower / faster easing
space      pause       t  theme
?          help        q  quit`

func (m Model) panel() string {
	st := m.styles
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	b.WriteString(st.header.Render("CHAINSIM") + "\n")
	state := "running"
	if !m.running {
		state = "paused"
	}
	if !m.adapter.Ready() {
		state = "waiting for size"
	}
	row("state", state)
	row("mode", m.cfg.Chain.Mode.String())
	row("permission", m.adapter.Permission().State().String())
	row("nodes", fmt.Sprintf("%d", m.adapter.Len()))
	row("frame", fmt.Sprintf("%d", m.adapter.Frame()))
	tg := m.adapter.Target()
	row("target", fmt.Sprintf("%+.0f, %+.0f", tg.X, tg.Y))
	row("tilt", fmt.Sprintf("β %+.0f° γ %+.0f°", m.beta, m.gamma))
	row("speed", fmt.Sprintf("%.3f", m.cfg.Motion.SpeedBase))
	row("theme", m.theme.Name)

	if len(m.lag) > 1 {
		chart := asciigraph.Plot(m.lag,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("head/tail lag px"))
		b.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if m.status != "" {
		s := st.warn
		if m.statusOK {
			s = st.ok
		}
		b.WriteString("\n" + s.Render(m.status) + "\n")
	}
	if m.adapter.Permission().NeedsGesture() {
		b.WriteString("\n" + st.warn.Render("press p to enable tilt") + "\n")
	}
	b.WriteString("\n" + st.hint.Render("? help  q quit"))
	return st.panel.Height(max(m.height, 1)).Render(b.String())
}

// Run starts the live view until the user quits.
func Run(cfg *config.Config, caps input.Capabilities, outDir string) error {
	m, err := NewModel(cfg, caps)
	if err != nil {
		return err
	}
	m = m.WithOutput(outDir, nil)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
