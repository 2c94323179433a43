package gui

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/host"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const telemetryCapacity = 200

type App struct {
	Base      *config.Config
	Cfg       *config.Config
	Session   *host.Session
	Surface   *Surface
	Frame     *export.Recorder
	Status    string
	Energy    *metrics.Series
	InMenu    bool
	InConfig  bool
	Presets   []string
	Selected  int
	Params    map[string]float64
	ParamKeys []string
	ParamSel  int
	Err       error
	quit      bool
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Viewport.Width), int32(cfg.Viewport.Height), "constellation")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// NewApp starts either in the preset menu or directly in the field described
// by cfg.
func NewApp(cfg *config.Config, interactive bool) (*App, error) {
	app := &App{
		Base:     cfg,
		Presets:  config.ListPresets(),
		Surface:  &Surface{Background: ColBg},
		Energy:   metrics.NewSeries(telemetryCapacity, metrics.KineticEnergy),
		InMenu:   interactive,
		Params:   make(map[string]float64),
		Selected: 0,
	}
	if !interactive {
		if err := app.load(cfg); err != nil {
			return nil, err
		}
		app.Session.Start()
	}
	return app, nil
}

// RunInteractive opens the window on the preset menu and blocks until it is
// closed.
func RunInteractive(cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()
	app, err := NewApp(cfg, true)
	if err != nil {
		return err
	}
	return app.RunLoop()
}

// Run opens the window straight on the field and blocks until it is closed.
func Run(cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()
	app, err := NewApp(cfg, false)
	if err != nil {
		return err
	}
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
		if a.Err != nil {
			return a.Err
		}
	}
	if a.Session != nil {
		a.Session.Stop()
	}
	return nil
}

func (a *App) load(cfg *config.Config) error {
	sc, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	if rl.IsWindowReady() {
		sc.Viewport.Width = rl.GetScreenWidth()
		sc.Viewport.Height = rl.GetScreenHeight()
	}

	a.Frame = export.NewRecorder()
	s, err := host.NewSession(export.Tee(a.Surface, a.Frame), sc, sim.WithAccent(cfg.Accent))
	if err != nil {
		return err
	}
	a.Energy.Reset()
	s.Sim.AddObserver(a.Energy)

	a.Cfg = cfg
	a.Session = s
	a.Params = s.Sim.Params().GetParams()
	a.ParamKeys = a.ParamKeys[:0]
	for k := range a.Params {
		a.ParamKeys = append(a.ParamKeys, k)
	}
	sort.Strings(a.ParamKeys)
	a.ParamSel = 0
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}
	if a.InConfig {
		a.updateConfig()
		return
	}

	// Polled every frame; a resize made on the menu or config screen still
	// reaches the field. Minimized windows report a zero size, which keeps
	// the old field.
	pos := rl.GetMousePosition()
	_ = a.Session.Sync(rl.GetScreenWidth(), rl.GetScreenHeight(), float64(pos.X), float64(pos.Y), rl.IsCursorOnScreen())

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Session.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Sim.Reinitialize()
		a.Energy.Reset()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		path := fmt.Sprintf("constellation-%06d.svg", a.Session.Sim.Ticks())
		if err := export.WriteSVG(path, a.Frame, export.DefaultBackground); err != nil {
			a.Status = err.Error()
		} else {
			a.Status = "saved " + path
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.Session.Stop()
		a.InMenu = true
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	if a.Selected >= len(a.Presets) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Presets) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		cfg := *a.Base
		if err := config.ApplyPreset(&cfg, a.Presets[a.Selected]); err != nil {
			a.Err = err
			return
		}
		if err := a.load(&cfg); err != nil {
			a.Err = err
			return
		}
		a.InMenu = false
		a.InConfig = true
	}
}

func (a *App) updateConfig() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.InConfig = false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		for k, v := range a.Params {
			if err := a.Session.Sim.Params().SetParam(k, v); err != nil {
				a.Err = err
				return
			}
		}
		a.InConfig = false
		a.Session.Start()
		return
	}
	if len(a.ParamKeys) == 0 {
		return
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel = (a.ParamSel - 1 + len(a.ParamKeys)) % len(a.ParamKeys)
	}

	key := a.ParamKeys[a.ParamSel]
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.Params[key] *= 1.1
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.Params[key] *= 0.9
	}
	// damping above one would pump energy in
	if key == "damping" && a.Params[key] > 1 {
		a.Params[key] = 1
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.Session.Frame()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("constellation", 30, 30, 24, ColSelect)
	s := a.Session.Sim
	a.drawText(fmt.Sprintf(":: %d particles  %d links  %v", s.Len(), s.Links(), s.Viewport()), 230, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Session.Running() {
		status = "PAUSED"
		col = ColTextDim
	}
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	a.drawText(status, w-130, 30, 16, col)

	if a.Status != "" {
		a.drawText(a.Status, 30, 64, 14, ColAccent)
	}
	a.drawText("[SPACE] PAUSE  [R] RESET  [S] SVG  [ESC] MENU  [Q] QUIT", w-540, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

// DrawTelemetry plots recent kinetic energy as a line strip.
func (a *App) DrawTelemetry() {
	values := a.Energy.Values()
	if len(values) < 2 {
		return
	}

	rectX, rectY := 30, int(rl.GetScreenHeight())-130
	width, height := 400, 60

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := float32(rectX) + (float32(i)/float32(len(values)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.2e", values[len(values)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("constellation", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, int(rl.GetScreenHeight())-40, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("constellation", 50, 50, 40, ColTextDim)
	a.drawText("configure", 360, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Preset: %s", a.Presets[a.Selected]), 50, 110, 16, ColAccent)

	y := 180
	for i, key := range a.ParamKeys {
		val := a.Params[key]
		if i == a.ParamSel {
			a.drawText(fmt.Sprintf("> %-15s %.3f", key, val), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-15s %.3f", key, val), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: ADJUST  ENTER: RUN  ESC: BACK", 50, int(rl.GetScreenHeight())-40, 14, ColTextDim)
}
