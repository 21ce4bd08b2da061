package tui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/core"
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
	"github.com/vovakirdan/crossy-arcade/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type recordingSubmitter struct {
	mu      sync.Mutex
	entries []leaderboard.Entry
}

func (r *recordingSubmitter) Submit(_ context.Context, e leaderboard.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingSubmitter) snapshot() []leaderboard.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]leaderboard.Entry(nil), r.entries...)
}

func waitForEntries(t *testing.T, r *recordingSubmitter, n int) []leaderboard.Entry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d submissions, got %d", n, len(r.snapshot()))
	return nil
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("w"), core.ActionUp, false},
		{runeKey("k"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("j"), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("a"), core.ActionLeft, false},
		{runeKey("h"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey("d"), core.ActionRight, false},
		{runeKey("l"), core.ActionRight, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.key)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.key.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}) != MenuActionScoreboard {
		t.Error("tab should open the scoreboard")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}) != MenuActionSelect {
		t.Error("enter should select")
	}
	if km.MapKeyToMenuAction(runeKey("h")) != MenuActionLeft {
		t.Error("h should move left")
	}
}

func newCrossyModel(sub leaderboard.Submitter) (Model, *crossy.Game) {
	game := crossy.NewWithConfig(config.DefaultCrossyConfig())
	m := NewModel(game, sub, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, PlayerName: "ada"})
	m.Init()
	return m, game
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg(time.Time{}))
	return next.(Model)
}

func TestModelSubmitsOnceOnGameOver(t *testing.T) {
	rec := &recordingSubmitter{}
	m, game := newCrossyModel(rec)

	// Hop onto the first lane, then get hit without a checkpoint
	game.Session().QueueMove(crossy.Forward)
	game.Session().StepCompleted()
	game.Session().Hit()

	for range 5 {
		m = tick(m)
	}

	got := waitForEntries(t, rec, 1)
	if got[0].GameID != "crossy" || got[0].Name != "ada" || got[0].Score != 1 {
		t.Errorf("entry = %+v", got[0])
	}

	// More ticks while over must not submit again
	for range 5 {
		m = tick(m)
	}
	time.Sleep(20 * time.Millisecond)
	if n := len(rec.snapshot()); n != 1 {
		t.Errorf("submissions = %d, expected 1", n)
	}
}

func TestModelRestartReportsNextRun(t *testing.T) {
	rec := &recordingSubmitter{}
	m, game := newCrossyModel(rec)

	game.Session().QueueMove(crossy.Forward)
	game.Session().StepCompleted()
	game.Session().Hit()
	m = tick(m)
	waitForEntries(t, rec, 1)

	next, _ := m.Update(runeKey("r"))
	m = tick(next.(Model))
	if m.gameState.GameOver {
		t.Fatal("restart should start a new run")
	}

	game.Session().QueueMove(crossy.Forward)
	game.Session().StepCompleted()
	game.Session().Hit()
	m = tick(m)
	waitForEntries(t, rec, 2)
}

func TestModelZeroScoreIsNotSubmitted(t *testing.T) {
	rec := &recordingSubmitter{}
	m, game := newCrossyModel(rec)

	game.Session().Hit()
	m = tick(m)
	time.Sleep(20 * time.Millisecond)

	if !m.gameState.GameOver {
		t.Fatal("expected game over")
	}
	if n := len(rec.snapshot()); n != 0 {
		t.Errorf("zero score should be skipped, got %d submissions", n)
	}
}

func TestModelBackOnlyWhenOverOrPaused(t *testing.T) {
	m, game := newCrossyModel(nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.BackToMenu() {
		t.Fatal("back should be ignored mid-run")
	}

	game.Session().Hit()
	m = tick(m)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("back should work after game over")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, game := newCrossyModel(nil)
	game.Session().QueueMove(crossy.Forward)
	game.Session().StepCompleted()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if game.Session().Position().Row != 1 {
		t.Error("resize should not restart the run")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestCrossySetupFlow(t *testing.T) {
	m := NewCrossySetupModel(80, 24, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(CrossySetupModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(CrossySetupModel)
	if !m.naming || m.Selected() != nil {
		t.Fatal("empty name should open the name prompt")
	}

	for _, r := range "bob" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(CrossySetupModel)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(CrossySetupModel)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Preset != config.DifficultyHard || sel.Name != "bob" {
		t.Errorf("selection = %+v", sel)
	}
}

func TestCrossySetupKnownNameSkipsPrompt(t *testing.T) {
	m := NewCrossySetupModel(80, 24, "ada")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := next.(CrossySetupModel).Selected()
	if sel == nil || sel.Preset != config.DifficultyNormal || sel.Name != "ada" {
		t.Errorf("selection = %+v", sel)
	}
}

func TestMenuListsCrossy(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())
	if !strings.Contains(m.View(), "Crossy Road") {
		t.Error("menu should list Crossy Road")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 1)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	if out := RenderScreen(s); !strings.Contains(out, "a") || !strings.Contains(out, "cd") {
		t.Errorf("rendered = %q", out)
	}
}

func TestScoreboardTogglesViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []struct {
		name  string
		score int
	}{{"ada", 5}, {"ada", 9}, {"bob", 7}} {
		if _, err := store.SaveScore("crossy", r.name, r.score, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "crossy", "ada", 100, 30)
	if len(m.scores) != 3 || m.personal != 9 {
		t.Fatalf("runs view: %d rows, personal best %d", len(m.scores), m.personal)
	}
	if view := m.View(); !strings.Contains(view, "Crossy Road") || !strings.Contains(view, "ada *") {
		t.Errorf("view should show the title and mark the viewer's runs:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewPlayers || len(m.scores) != 2 {
		t.Fatalf("players view: view=%v rows=%d", m.view, len(m.scores))
	}
	if m.scores[0].PlayerName != "ada" || m.scores[0].Score != 9 {
		t.Errorf("top player = %+v", m.scores[0])
	}

	next, _ = m.Update(runeKey("b"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("b should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "crossy", "", 60, 20)
	if !strings.Contains(m.View(), "not being saved") {
		t.Errorf("view = %q", m.View())
	}
}
