package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenCreatesNestedFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("rocket", "ada", 150); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("rocket")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 150 {
		t.Errorf("HighScore() = %d, expected 150", high)
	}
}

func TestStoreMigratesLegacyScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	); INSERT INTO scores (game_id, score) VALUES ('rocket', 250)`); err != nil {
		t.Fatalf("legacy schema failed: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on legacy database failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("rocket", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != AnonymousPlayer || scores[0].Score != 250 {
		t.Errorf("TopScores() = %+v, expected one anonymous 250", scores)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		player string
		score  int
	}{{"ada", 100}, {"", 50}, {"linus", 200}}
	for _, s := range saves {
		if _, err := store.SaveScore("rocket", s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "ada", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("rocket", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []struct {
		player string
		score  int
	}{{"linus", 200}, {"ada", 100}, {AnonymousPlayer, 50}}
	for i, e := range scores {
		if e.Score != expected[i].score || e.Player != expected[i].player {
			t.Errorf("scores[%d] = %s/%d, expected %s/%d", i, e.Player, e.Score, expected[i].player, expected[i].score)
		}
		if e.GameID != "rocket" {
			t.Errorf("scores[%d].GameID = %q", i, e.GameID)
		}
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("rocket", "ada", (i+1)*100)
	}
	store.SaveScore("rocket", "late", 500)

	scores, err := store.TopScores("rocket", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 500 || scores[2].Score != 400 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ada" {
		t.Errorf("tie went to %q, expected the earlier score", scores[0].Player)
	}

	if scores, _ := store.TopScores("rocket", 0); len(scores) != 6 {
		t.Errorf("TopScores(0) returned %d, expected the default limit to cover 6", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("rocket")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("rocket", "ada", 100)
	store.SaveScore("rocket", "ada", 300)
	store.SaveScore("rocket", "linus", 200)

	high, err = store.HighScore("rocket")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("rocket", "ada", 100)
	store.SaveScore("rocket", "ada", 200)
	store.SaveScore("other", "ada", 300)

	n, err := store.ClearScores("rocket")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() = %d, expected 2", n)
	}

	if scores, _ := store.TopScores("rocket", 10); len(scores) != 0 {
		t.Errorf("Expected 0 rocket scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other scores should not be affected by clearing rocket")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("rocket")
	if err != nil {
		t.Fatalf("GameStats() on empty store failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.GameID != "rocket" {
		t.Errorf("GameStats() on empty store = %+v", empty)
	}

	store.SaveScore("rocket", "ada", 100)
	store.SaveScore("rocket", "linus", 200)
	store.SaveScore("rocket", "ada", 150)
	store.SaveScore("other", "ada", 10)

	stats, err := store.GameStats("rocket")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 200 || stats.AvgScore != 150 {
		t.Errorf("GameStats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed is zero")
	}

	all, err := store.AllGameStats()
	if err != nil {
		t.Fatalf("AllGameStats() failed: %v", err)
	}
	if len(all) != 2 || all["other"].HighScore != 10 || all["other"].Players != 1 {
		t.Errorf("AllGameStats() = %v", all)
	}
}
