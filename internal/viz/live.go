package viz

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/dynamo"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/host"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 40
	minCols         = 10
	minRows         = 4
	cellScale       = 4.0
	historyCapacity = 120
)

type frameMsg time.Time

// Model hosts one simulation in the terminal. The braille canvas is the
// drawing surface; every repaint dispatches the frame queue once.
type Model struct {
	session  *host.Session
	canvas   *Canvas
	surface  *CanvasSurface
	recorder *export.Recorder
	energy   *metrics.Series
	density  gauge
	theme    Theme
	fps      int
	ticking  bool
	params   []string
	selected int
	cols     int
	rows     int
	status   string
	outDir   string
}

// NewModel builds the simulation sized for a default 80x24 terminal; the
// first window size message resizes it.
func NewModel(cfg *config.Config) (*Model, error) {
	sc, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}

	m := &Model{
		recorder: export.NewRecorder(),
		energy:   metrics.NewSeries(historyCapacity, metrics.KineticEnergy),
		theme:    GetTheme(cfg.Theme),
		fps:      cfg.FPS,
		density:  newGauge(cfg.FPS),
		outDir:   ".",
	}
	m.layout(defaultCols, defaultRows)
	m.surface = NewCanvasSurface(m.canvas, cellScale)
	sc.Viewport = m.viewport()

	m.session, err = host.NewSession(export.Tee(m.surface, m.recorder), sc, sim.WithAccent(m.accent))
	if err != nil {
		return nil, err
	}
	m.session.Sim.AddObserver(m.energy)

	m.params = make([]string, 0, 3)
	for k := range m.session.Sim.Params().GetParams() {
		m.params = append(m.params, k)
	}
	sort.Strings(m.params)
	return m, nil
}

// SetOutputDir sets where snapshots are written.
func (m *Model) SetOutputDir(dir string) { m.outDir = dir }

func (m *Model) accent() (color.NRGBA, bool) { return m.theme.AccentColor() }

func (m *Model) layout(width, height int) {
	m.cols = max(width-statsWidth-2*padLeft-1, minCols)
	m.rows = max(height-2*padTop, minRows)
	m.canvas = NewCanvas(m.cols, m.rows)
	if m.surface != nil {
		m.surface.Canvas = m.canvas
	}
}

func (m *Model) viewport() dynamo.Viewport {
	return dynamo.Viewport{
		Width:  int(float64(m.canvas.SubWidth()) * cellScale),
		Height: int(float64(m.canvas.SubHeight()) * cellScale),
	}
}

func (m *Model) nextFrame() tea.Cmd {
	m.ticking = true
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

// repaint draws the current state onto a paused canvas. A running
// session repaints on its next frame.
func (m *Model) repaint() {
	if !m.session.Running() {
		m.session.Sim.Redraw()
	}
}

func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return m.nextFrame()
}

// Update handles input events and dispatches frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.ticking = false
		m.session.Frame()
		if n := m.session.Sim.Len(); n > 0 {
			m.density.step(float64(m.session.Sim.Links()) / float64(n))
		}
		if m.session.Queue.Pending() {
			return m, m.nextFrame()
		}
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		vp := m.viewport()
		if err := m.session.Resize(vp.Width, vp.Height); err != nil {
			m.status = err.Error()
		}
		m.repaint()
	case tea.MouseMsg:
		m.pointer(msg.X, msg.Y)
	case tea.BlurMsg:
		m.session.Sim.OnPointerLeave()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// pointer maps a terminal cell to simulation units, treating anything
// outside the canvas as the pointer leaving it.
func (m *Model) pointer(x, y int) {
	cx, cy := x-padLeft, y-padTop
	if cx < 0 || cy < 0 || cx >= m.cols || cy >= m.rows {
		m.session.Sim.OnPointerLeave()
		return
	}
	m.session.Sim.OnPointerMove((float64(cx)*2+1)*cellScale, (float64(cy)*4+2)*cellScale)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Stop()
		return m, tea.Quit
	case " ":
		if !m.session.TogglePause() {
			m.status = "paused"
			return m, nil
		}
		m.status = ""
		if !m.ticking {
			return m, m.nextFrame()
		}
	case "r":
		m.session.Sim.Reinitialize()
		m.repaint()
	case "t":
		m.theme = Themes[(themeIndex(m.theme.Name)+1)%len(Themes)]
	case "s":
		m.snapshot()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.params)-1 {
			m.selected++
		}
	case "+", "=", "right", "l":
		m.adjust(1.1)
	case "-", "left", "h":
		m.adjust(1 / 1.1)
	}
	return m, nil
}

func (m *Model) adjust(factor float64) {
	name := m.params[m.selected]
	p := m.session.Sim.Params()
	val := p.GetParams()[name] * factor
	if name == "damping" {
		val = min(val, 1)
	}
	if err := p.SetParam(name, val); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) snapshot() {
	path := filepath.Join(m.outDir, fmt.Sprintf("constellation-%06d.svg", m.session.Sim.Ticks()))
	if err := export.WriteSVG(path, m.recorder, string(m.theme.Background)); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) View() string {
	canvas := canvasStyle.Render(m.theme.dots().Render(m.canvas.String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(m.stats()))
}

func (m *Model) stats() string {
	var b strings.Builder

	b.WriteString(m.theme.header().Render("CONSTELLATION") + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("state", m.session.Driver.State().String())
	row("tick", fmt.Sprintf("%d", m.session.Sim.Ticks()))
	row("particles", fmt.Sprintf("%d", m.session.Sim.Len()))
	row("links", fmt.Sprintf("%d", m.session.Sim.Links()))
	row("density", m.theme.graph().Render(m.density.bar(gaugeFull, 12))+fmt.Sprintf(" %.2f", m.density.value()))
	row("viewport", fmt.Sprintf("%dx%d", m.session.Sim.Viewport().Width, m.session.Sim.Viewport().Height))
	if c := m.session.Sim.Cursor(); c.Present {
		row("cursor", fmt.Sprintf("%.0f, %.0f", c.X, c.Y))
	} else {
		row("cursor", "-")
	}
	row("theme", m.theme.Name)

	b.WriteString("\n")
	values := m.session.Sim.Params().GetParams()
	for i, name := range m.params {
		line := fmt.Sprintf("%-10s%.4f", name, values[name])
		if i == m.selected {
			b.WriteString(m.theme.active().Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	if data := m.energy.Values(); len(data) > 1 {
		plot := asciigraph.Plot(data, asciigraph.Height(6), asciigraph.Width(statsWidth-14), asciigraph.Caption("kinetic energy"))
		b.WriteString(m.theme.graph().Render(plot) + "\n")
	}

	if m.status != "" {
		b.WriteString(m.theme.warn().Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("space pause  r reset  t theme\ns svg  ↑↓ param  +/- adjust  q quit"))
	return b.String()
}

// Run starts the terminal host for cfg and blocks until it quits.
func Run(cfg *config.Config, outDir string) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	m.SetOutputDir(outDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
