package storage

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Parent directories are created on demand
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		name        string
		score, corn int
	}{
		{"ada", 12, 1},
		{"bob", 40, 3},
		{"ada", 7, 0},
	}
	for _, r := range runs {
		if _, err := store.SaveScore("crossy", r.name, r.score, r.corn); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "ada", 999, 0); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("crossy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{40, 12, 7}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].PlayerName != "bob" || scores[0].Corn != 3 {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveScore("crossy", "ada", i*10, 0); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("crossy", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 150 {
		t.Errorf("Expected top score 150, got %d", scores[0].Score)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores("crossy", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores for default limit, got %d", len(scores))
	}
}

func TestStoreHighScoreAndPersonalBest(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("crossy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore("crossy", "ada", 30, 0)
	store.SaveScore("crossy", "ada", 18, 0)
	store.SaveScore("crossy", "bob", 55, 0)

	if high, _ = store.HighScore("crossy"); high != 55 {
		t.Errorf("HighScore = %d, expected 55", high)
	}

	best, err := store.PersonalBest("crossy", "ada")
	if err != nil {
		t.Fatalf("PersonalBest() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("PersonalBest(ada) = %d, expected 30", best)
	}
	if best, _ = store.PersonalBest("crossy", "nobody"); best != 0 {
		t.Errorf("PersonalBest(nobody) = %d, expected 0", best)
	}
}

func TestStoreBestPerPlayer(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		name  string
		score int
		corn  int
	}{
		{"ada", 12, 1},
		{"bob", 30, 4},
		{"ada", 41, 6},
		{"", 99, 0},
		{"bob", 8, 0},
	}
	for _, r := range runs {
		if _, err := store.SaveScore("crossy", r.name, r.score, r.corn); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	bests, err := store.BestPerPlayer("crossy", 10)
	if err != nil {
		t.Fatalf("BestPerPlayer() failed: %v", err)
	}
	if len(bests) != 2 {
		t.Fatalf("got %d rows, expected one per named player: %+v", len(bests), bests)
	}
	if bests[0].PlayerName != "ada" || bests[0].Score != 41 || bests[0].Corn != 6 {
		t.Errorf("first = %+v, expected ada's 41 run", bests[0])
	}
	if bests[1].PlayerName != "bob" || bests[1].Score != 30 || bests[1].Corn != 4 {
		t.Errorf("second = %+v, expected bob's 30 run", bests[1])
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("crossy", "ada", 100, 0)
	store.SaveScore("other", "ada", 200, 0)

	if err := store.ClearScores("crossy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("crossy", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	scores, _ = store.TopScores("other", 10)
	if len(scores) != 1 {
		t.Errorf("Clearing one game should keep the others, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("crossy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("crossy", "ada", 10, 2)
	store.SaveScore("crossy", "bob", 30, 1)

	stats, err := store.GetGameStats("crossy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.TotalCorn != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["crossy"].GamesCount != 2 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStorePlayers(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.EnsurePlayer("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name error = %v, expected ErrEmptyName", err)
	}

	p, err := store.EnsurePlayer(" ada ")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	if p.Name != "ada" {
		t.Errorf("name = %q, expected trimmed 'ada'", p.Name)
	}

	again, err := store.EnsurePlayer("ada")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	if again.ID != p.ID {
		t.Errorf("same name should keep its id: %s vs %s", again.ID, p.ID)
	}

	missing, err := store.PlayerByName("bob")
	if err != nil || missing != nil {
		t.Errorf("PlayerByName(bob) = %+v, %v", missing, err)
	}
}

func TestNewPlayerID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewPlayerID(now, rand.New(rand.NewSource(1)))

	if !regexp.MustCompile(`^user_1700000000123_[0-9a-z]{7}$`).MatchString(id) {
		t.Errorf("unexpected id format: %s", id)
	}
	if id != NewPlayerID(now, rand.New(rand.NewSource(1))) {
		t.Error("same clock and seed should give the same id")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "test.db")); err != nil {
		t.Errorf("Database should be created under HOME: %v", err)
	}
}
