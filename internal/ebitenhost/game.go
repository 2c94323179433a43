// Package ebitenhost runs the field in an ebiten window. ebiten owns the
// main loop; Draw is the per-repaint callback that dispatches the frame queue.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/host"
	"github.com/san-kum/constellation/internal/sim"
)

var background = color.NRGBA{R: 10, G: 10, B: 10, A: 255}

var errQuit = errors.New("quit")

type Game struct {
	session *host.Session
	surface *Surface
	frame   *export.Recorder
	status  string
	width   int
	height  int
	hud     bool
}

func NewGame(cfg *config.Config) (*Game, error) {
	sc, err := cfg.SimConfig()
	if err != nil {
		return nil, err
	}
	surface := &Surface{Background: background}
	frame := export.NewRecorder()
	s, err := host.NewSession(export.Tee(surface, frame), sc, sim.WithAccent(cfg.Accent))
	if err != nil {
		return nil, err
	}
	return &Game{
		session: s,
		surface: surface,
		frame:   frame,
		width:   sc.Viewport.Width,
		height:  sc.Viewport.Height,
		hud:     true,
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Sim.Reinitialize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		path, err := saveFrameDialog(g.frame)
		switch {
		case err != nil:
			g.status = err.Error()
		case path != "":
			g.status = "saved " + path
		}
	}

	mx, my := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < g.width && my < g.height
	// a zero size before the first Layout keeps the old field
	_ = g.session.Sync(g.width, g.height, float64(mx), float64(my), inside)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target = screen
	g.session.Frame()

	if !g.hud {
		return
	}
	s := g.session.Sim
	status := "RUNNING"
	if !g.session.Running() {
		status = "PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("constellation  %s  %d particles  %d links  %.0f FPS",
		status, s.Len(), s.Links(), ebiten.ActualFPS()), 12, 12)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 12, 28)
	}
	ebitenutil.DebugPrintAt(screen, "[SPACE] PAUSE  [R] RESET  [S] SAVE SVG  [H] HUD  [Q] QUIT", 12, g.height-24)
}

// Layout keeps one logical pixel per window pixel; Update applies the size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func Run(cfg *config.Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	ebiten.SetWindowTitle("constellation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	g.session.Start()
	defer g.session.Stop()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}
