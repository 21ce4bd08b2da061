package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/core"
)

// maxNameLen caps names shown in the HUD and sent to leaderboards.
const maxNameLen = 16

// CrossySelection holds the user's choices from the Crossy setup screen.
type CrossySelection struct {
	Preset config.DifficultyPreset
	Name   string
}

var presetBlurbs = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "more grass, more corn",
	config.DifficultyNormal: "the usual morning commute",
	config.DifficultyHard:   "busy roads, scarce corn",
	config.DifficultyFixed:  "no speed-up as you go",
}

// CrossySetupModel lets users pick a difficulty and, if needed, a name.
type CrossySetupModel struct {
	cursor    int
	naming    bool
	name      textinput.Model
	width     int
	height    int
	keyMapper *KeyMapper
	selection CrossySelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewCrossySetupModel creates the setup screen. A non-empty name skips the
// name prompt.
func NewCrossySetupModel(width, height int, name string) CrossySetupModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLen
	ti.Width = maxNameLen + 1
	ti.SetValue(name)

	return CrossySetupModel{
		cursor:    1, // normal
		name:      ti,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m CrossySetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CrossySetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.handleNameKey(msg)
		}
		return m.handlePresetKey(m.keyMapper.MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.naming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CrossySetupModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Preset = config.Presets[m.cursor]
		if strings.TrimSpace(m.name.Value()) == "" {
			m.naming = true
			return m, m.name.Focus()
		}
		return m.finish()
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m CrossySetupModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.naming = false
		m.name.Blur()
		return m, nil
	case "enter":
		m.name.Blur()
		return m.finish()
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m CrossySetupModel) finish() (tea.Model, tea.Cmd) {
	m.selection.Name = strings.TrimSpace(m.name.Value())
	m.choosing = false
	return m, tea.Quit
}

// View renders the setup screen.
func (m CrossySetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C R O S S Y   R O A D", m.width))
	b.WriteString("\n\n")

	if m.naming {
		b.WriteString(centerText("Who is crossing? (leave empty to skip the leaderboard)", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.name.View(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Start  |  Esc: Back", m.width))
		return b.String()
	}

	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, p, presetBlurbs[p])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if name := strings.TrimSpace(m.name.Value()); name != "" {
		b.WriteString("\n")
		b.WriteString(centerText("Playing as "+name, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m CrossySetupModel) Selected() *CrossySelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m CrossySetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m CrossySetupModel) WantsBack() bool {
	return m.back
}

// RunCrossySetup runs the setup screen and returns the selection.
// A nil selection means the user backed out or quit.
func RunCrossySetup(cfg core.RuntimeConfig) (*CrossySelection, error) {
	model := NewCrossySetupModel(cfg.ScreenW, cfg.ScreenH, cfg.PlayerName)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(CrossySetupModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
