package viz

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/loop"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelFrames(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected a frame command from Init")
	}

	_, cmd := m.Update(frameMsg(time.Now()))
	if m.session.Sim.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", m.session.Sim.Ticks())
	}
	if cmd == nil {
		t.Error("expected the next frame to be scheduled")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m.Init()

	m.Update(key(" "))
	if m.session.Driver.State() != loop.Stopped {
		t.Fatalf("expected stopped, got %v", m.session.Driver.State())
	}

	_, cmd := m.Update(frameMsg(time.Now()))
	if m.session.Sim.Ticks() != 0 {
		t.Errorf("frame ticked while paused")
	}
	if cmd != nil {
		t.Error("expected no frame scheduled while paused")
	}

	_, cmd = m.Update(key(" "))
	if cmd == nil {
		t.Error("expected resume to schedule a frame")
	}
	m.Update(frameMsg(time.Now()))
	if m.session.Sim.Ticks() != 1 {
		t.Errorf("expected 1 tick after resume, got %d", m.session.Sim.Ticks())
	}
}

func TestModelPointer(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.MouseMsg{X: padLeft + 3, Y: padTop + 2, Action: tea.MouseActionMotion})
	c := m.session.Sim.Cursor()
	if !c.Present || c.X != 28 || c.Y != 40 {
		t.Errorf("unexpected cursor %+v", c)
	}

	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if m.session.Sim.Cursor().Present {
		t.Error("expected cursor cleared outside the canvas")
	}

	m.Update(tea.MouseMsg{X: padLeft, Y: padTop, Action: tea.MouseActionMotion})
	m.Update(tea.BlurMsg{})
	if m.session.Sim.Cursor().Present {
		t.Error("expected cursor cleared on blur")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	vp := m.session.Sim.Viewport()
	if vp.Width != 75*2*4 || vp.Height != 38*4*4 {
		t.Errorf("unexpected viewport %v", vp)
	}
	for _, p := range m.session.Sim.Particles() {
		if p.X >= float64(vp.Width) || p.Y >= float64(vp.Height) {
			t.Fatalf("particle outside resized viewport: %+v", p)
		}
	}
}

func inkedCells(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				n++
			}
		}
	}
	return n
}

func TestModelPausedRepaints(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"resize", tea.WindowSizeMsg{Width: 120, Height: 40}},
		{"reset", key("r")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.Init()
			m.Update(frameMsg(time.Now()))
			m.Update(key(" "))
			ticks := m.session.Sim.Ticks()

			m.Update(tt.msg)

			if inkedCells(m.canvas) == 0 {
				t.Error("paused canvas left blank")
			}
			if m.session.Sim.Ticks() != ticks {
				t.Errorf("repaint advanced the field: %d -> %d ticks", ticks, m.session.Sim.Ticks())
			}
			first := m.session.Sim.Particles()[0]
			if op := m.recorder.Ops[0]; op.X0 != first.X || op.Y0 != first.Y {
				t.Errorf("drawn frame is stale: first circle at (%v, %v), particle at (%v, %v)", op.X0, op.Y0, first.X, first.Y)
			}
		})
	}
}

func TestModelSnapshot(t *testing.T) {
	m := newTestModel(t)
	dir := t.TempDir()
	m.SetOutputDir(dir)
	m.Init()
	m.Update(frameMsg(time.Now()))

	m.Update(key("s"))

	data, err := os.ReadFile(filepath.Join(dir, "constellation-000001.svg"))
	if err != nil {
		t.Fatalf("snapshot missing: %v (status %q)", err, m.status)
	}
	if strings.Count(string(data), "<circle") != m.session.Sim.Len() {
		t.Errorf("expected %d circles in snapshot", m.session.Sim.Len())
	}
}

func TestModelThemeCycle(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name

	m.Update(key("t"))
	if m.theme.Name == first {
		t.Error("expected theme to change")
	}
	if c, ok := m.accent(); !ok || c == (color.NRGBA{}) {
		t.Errorf("expected theme accent, got %v %v", c, ok)
	}
}

func TestModelAdjustParam(t *testing.T) {
	m := newTestModel(t)
	name := m.params[m.selected]
	before := m.session.Sim.Params().GetParams()[name]

	m.Update(key("+"))

	after := m.session.Sim.Params().GetParams()[name]
	if after <= before {
		t.Errorf("%s: expected increase from %v, got %v", name, before, after)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m.Init()
	for i := 0; i < 3; i++ {
		m.Update(frameMsg(time.Now()))
	}

	view := m.View()
	for _, want := range []string{"CONSTELLATION", "particles", "coupling"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCanvasSurface(t *testing.T) {
	c := NewCanvas(4, 2)
	s := NewCanvasSurface(c, 4)

	s.FillCircle(8, 8, 1, color.NRGBA{A: 255})
	if c.Grid[0][1] == 0x2800 {
		t.Error("expected dot at sub-pixel (2, 2)")
	}

	s.StrokeLine(0, 0, 28, 0, 1, color.NRGBA{A: 0})
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected faint line to be skipped")
	}

	s.ClearRect(0, 0, 32, 32)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("expected cleared canvas")
			}
		}
	}
}

func TestAppLaunchesPreset(t *testing.T) {
	a := NewApp(config.DefaultConfig(), t.TempDir())
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	a.Update(key("j"))
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected launch to start frames")
	}
	if a.state != stateSim || a.live == nil {
		t.Fatalf("expected live simulation, state %d", a.state)
	}
	if a.live.session.Sim.Len() != config.GetPreset(a.presets[1]).Particle.Count {
		t.Errorf("preset population not applied")
	}
}

func TestGaugeSettlesOnTarget(t *testing.T) {
	g := newGauge(60)
	for i := 0; i < 600; i++ {
		g.step(2)
	}
	if math.Abs(g.value()-2) > 1e-3 {
		t.Errorf("expected gauge near 2, got %v", g.value())
	}
	if bar := g.bar(4, 10); bar != "█████░░░░░" {
		t.Errorf("unexpected bar %q", bar)
	}
}

func TestGaugeBarClamps(t *testing.T) {
	g := gauge{pos: 9}
	if bar := g.bar(4, 3); bar != "███" {
		t.Errorf("unexpected bar %q", bar)
	}
	g.pos = -1
	if bar := g.bar(4, 3); bar != "░░░" {
		t.Errorf("unexpected bar %q", bar)
	}
}
