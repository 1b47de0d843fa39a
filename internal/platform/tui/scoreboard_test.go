package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kids-arcade/internal/storage"
)

func TestFlightRows(t *testing.T) {
	flights := []storage.FlightRecord{{
		Outcome:     storage.OutcomeLanded,
		Orbits:      2,
		Score:       200,
		FuelStart:   80,
		FuelLeft:    12.4,
		QuizCorrect: 4,
		QuizTotal:   5,
		CreatedAt:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
	}}

	rows := flightRows(flights)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, expected 1", len(rows))
	}
	want := []string{"landed", "2", "200", "80% -> 12%", "4/5", "Mar 05 14:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], cell)
		}
	}
}

func TestScoreRows(t *testing.T) {
	rows := scoreRows([]storage.ScoreEntry{
		{Player: "ada", Score: 250, CreatedAt: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{Player: "linus", Score: 100},
	})
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, expected 2", len(rows))
	}
	want := []string{"#1", "ada", "250", "Mar 05 14:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "#2" || rows[1][1] != "linus" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}

func TestScoreColumnsClampPlayerWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 20, expected: 8},
		{width: 40, expected: 8},
		{width: 45, expected: 13},
		{width: 120, expected: 16},
	}
	for _, tt := range tests {
		cols := scoreColumns(tt.width)
		if len(cols) != 4 || cols[1].Title != "Player" {
			t.Fatalf("scoreColumns(%d) = %v", tt.width, cols)
		}
		if cols[1].Width != tt.expected {
			t.Errorf("scoreColumns(%d) player width = %d, expected %d", tt.width, cols[1].Width, tt.expected)
		}
	}
}

func TestScoreboardFlightLogPage(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.SaveFlight(storage.FlightRecord{Outcome: storage.OutcomeCrashed, FuelStart: 60, QuizCorrect: 3, QuizTotal: 5}); err != nil {
		t.Fatalf("SaveFlight() error = %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	last := m.pages[len(m.pages)-1]
	if !last.isFlightLog() {
		t.Fatalf("last page = %+v, expected the flight log", last)
	}

	// Shift+Tab from the first page wraps around to the flight log.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)

	if !m.currentPage().isFlightLog() {
		t.Fatalf("current page = %+v, expected the flight log", m.currentPage())
	}
	if len(m.flights) != 1 || m.stats == nil || m.stats.Crashes != 1 {
		t.Errorf("flights = %d, stats = %+v, expected one crash", len(m.flights), m.stats)
	}
	if view := m.View(); !strings.Contains(view, "FLIGHT LOG") || !strings.Contains(view, "crashed") {
		t.Errorf("View() missing flight log content:\n%s", view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No") {
		t.Error("View() should show an empty message without a store")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
