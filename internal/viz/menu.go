package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/constellation/internal/config"
)

var presetInfo = map[string]string{
	"default": "50 particles, the classic look",
	"dense":   "crowded field, faint short links",
	"calm":    "slow drift, gentle cursor",
	"swarm":   "fast particles, wide cursor reach",
	"sparse":  "few large particles, long links",
}

const (
	stateMenu = iota
	stateSim
)

// App is the preset picker that launches a live Model.
type App struct {
	state         int
	cursor        int
	presets       []string
	base          *config.Config
	outDir        string
	live          *Model
	width, height int
	err           error
}

func NewApp(base *config.Config, outDir string) *App {
	return &App{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    base,
		outDir:  outDir,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = size.Width, size.Height
	}
	if a.state == stateSim {
		_, cmd := a.live.Update(msg)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a, a.launch(a.presets[a.cursor])
	}
	return a, nil
}

func (a *App) launch(preset string) tea.Cmd {
	cfg := *a.base
	if err := config.ApplyPreset(&cfg, preset); err != nil {
		a.err = err
		return nil
	}
	live, err := NewModel(&cfg)
	if err != nil {
		a.err = err
		return nil
	}
	live.SetOutputDir(a.outDir)
	a.live, a.state, a.err = live, stateSim, nil

	cmd := live.Init()
	if a.width > 0 && a.height > 0 {
		live.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return cmd
}

func (a *App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	theme := GetTheme(a.base.Theme)
	var b strings.Builder
	b.WriteString(theme.header().Render("CONSTELLATION") + "\n")
	b.WriteString(helpStyle.Render("choose a preset") + "\n\n")
	for i, name := range a.presets {
		line := fmt.Sprintf("%-10s %s", name, presetInfo[name])
		if i == a.cursor {
			b.WriteString(theme.active().Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n" + theme.warn().Render(a.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("↑↓ select  enter start  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// RunInteractive opens the preset picker and blocks until it quits.
func RunInteractive(base *config.Config, outDir string) error {
	p := tea.NewProgram(NewApp(base, outDir), tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
