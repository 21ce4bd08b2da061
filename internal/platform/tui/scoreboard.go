package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crossy-arcade/internal/registry"
	"github.com/vovakirdan/crossy-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the stats panel
	sidebarWidth       = 24  // Width of the stats panel
	tableMinWidth      = 50  // Minimum table width
	maxScores          = 100 // Max rows to load
)

// scoreView selects what the table lists.
type scoreView int

const (
	viewRuns    scoreView = iota // every recorded run
	viewPlayers                  // best run per named player
)

func (v scoreView) String() string {
	if v == viewPlayers {
		return "Players"
	}
	return "All runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "runs/players"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	game      registry.GameInfo
	store     *storage.Store
	player    string // highlighted in the table; may be empty
	view      scoreView
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	personal  int
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for gameID. player marks the
// viewer's own runs and enables the personal best line.
func NewScoreboardModel(store *storage.Store, gameID, player string, width, height int) ScoreboardModel {
	info, ok := registry.Info(gameID)
	if !ok {
		info = registry.GameInfo{ID: gameID, Title: gameID}
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		game:   info,
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Corn", Width: 5},
		{Title: "Date", Width: 13},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar() {
		tableWidth -= sidebarWidth + 3 // Panel + border + gap
	}

	// Spare room goes to the name column, up to a full name plus marker
	if spare := tableWidth - tableMinWidth; spare > 0 {
		columns[1].Width += min(spare, maxNameLen+2-columns[1].Width)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Title, tabs, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes rows and stats for the current view.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.personal, m.loadErr = nil, nil, 0, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if m.view == viewPlayers {
		m.scores, m.loadErr = m.store.BestPerPlayer(m.game.ID, maxScores)
	} else {
		m.scores, m.loadErr = m.store.TopScores(m.game.ID, maxScores)
	}

	if stats, err := m.store.GetGameStats(m.game.ID); err == nil {
		m.stats = stats
	}
	if m.player != "" {
		if best, err := m.store.PersonalBest(m.game.ID, m.player); err == nil {
			m.personal = best
		}
	}
	m.updateTableRows()
}

// updateTableRows rebuilds the table from the loaded scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		name := s.PlayerName
		switch {
		case name == "":
			name = "-"
		case name == m.player:
			name += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Corn),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - "+m.game.Title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableBox := boxStyle.Render(m.renderTableContent())

	if m.showSidebar() {
		panel := boxStyle.Width(sidebarWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, "  ", tableBox))
	} else {
		b.WriteString(centerText(tableBox, m.width))
		if line := m.statsLine(); line != "" {
			b.WriteString("\n")
			b.WriteString(centerText(line, m.width))
		}
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("28")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, v := range []scoreView{viewRuns, viewPlayers} {
		if v == m.view {
			tabs = append(tabs, active.Render(v.String()))
		} else {
			tabs = append(tabs, inactive.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStats is the side panel summarizing every run of the game.
func (m ScoreboardModel) renderStats() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	value := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString("Stats\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	row := func(name, v string) {
		fmt.Fprintf(&b, "%s %s\n", label.Render(fmt.Sprintf("%-8s", name)), value.Render(v))
	}

	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(label.Render("no runs yet"))
		b.WriteString("\n")
	} else {
		row("Best", fmt.Sprintf("%d", m.stats.HighScore))
		row("Runs", fmt.Sprintf("%d", m.stats.GamesCount))
		row("Average", fmt.Sprintf("%.1f", m.stats.AvgScore))
		row("Corn", fmt.Sprintf("%d", m.stats.TotalCorn))
		if !m.stats.LastPlayed.IsZero() {
			row("Last", m.stats.LastPlayed.Format("Jan 02 15:04"))
		}
	}

	if m.player != "" {
		b.WriteString("\n")
		row("You", m.player)
		row("PB", fmt.Sprintf("%d", m.personal))
	}
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return empty.Render("Scores are not being saved.")
	case m.loadErr != nil:
		return empty.Render("Could not load scores.")
	case len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nHop across a few lanes to set one!")
	}
	return m.table.View()
}

// statsLine is the one-line stats summary for narrow terminals.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("%d runs  |  avg %.1f  |  %d corn total", m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalCorn)
	if m.player != "" {
		line += fmt.Sprintf("  |  your best %d", m.personal)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(line)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for gameID.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID, player string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, gameID, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
