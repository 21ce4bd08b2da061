package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crossy-arcade/internal/core"
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
	"github.com/vovakirdan/crossy-arcade/internal/registry"
)

// cornCounter is implemented by games that track corn per run.
type cornCounter interface {
	Corn() int
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	submitter  leaderboard.Submitter
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	submitted  bool // Whether the current game over has been reported
}

// NewModel creates a new Bubble Tea model for the given game.
// submitter may be nil to disable score reporting.
func NewModel(game registry.Game, submitter leaderboard.Submitter, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = discardLogger()
	}
	if g, ok := game.(*crossy.Game); ok {
		g.SetListener(func(e crossy.Event) {
			logger.Debug("session event", "event", crossy.EventName(e), "player", cfg.PlayerName)
		})
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		submitter:  submitter,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered once the run is over or paused
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen buffer. The run keeps going; the
// renderer lays lanes out from the new size on the next frame.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A restart clears the game over flag; the next one gets reported again
	if wasOver && !m.gameState.GameOver {
		m.submitted = false
	}

	if m.gameState.GameOver && !m.submitted {
		m.report()
		m.submitted = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// report hands the finished run to the leaderboard without blocking the loop.
func (m Model) report() {
	entry := leaderboard.Entry{
		GameID: m.game.ID(),
		Name:   m.config.PlayerName,
		Score:  m.gameState.Score,
	}
	if c, ok := m.game.(cornCounter); ok {
		entry.Corn = c.Corn()
	}
	leaderboard.Report(m.submitter, leaderboard.NewLogger(m.logger), entry)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// NewGame creates the game for gameID. For Crossy the selection picks the
// difficulty preset and player name.
func NewGame(gameID string, sel *CrossySelection, cfg *core.RuntimeConfig) (registry.Game, error) {
	if gameID == "crossy" && sel != nil {
		crossyCfg, err := crossy.LoadConfigWithPreset(sel.Preset)
		if err != nil {
			return nil, fmt.Errorf("tui: crossy config: %w", err)
		}
		if sel.Name != "" {
			cfg.PlayerName = sel.Name
		}
		return crossy.NewWithConfig(crossyCfg), nil
	}
	return registry.Create(gameID)
}

// Run starts the Bubble Tea program for a single game.
// It returns true if the player asked to go back to the menu.
func Run(game registry.Game, submitter leaderboard.Submitter, logger *log.Logger, cfg core.RuntimeConfig) (bool, error) {
	model := NewModel(game, submitter, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
