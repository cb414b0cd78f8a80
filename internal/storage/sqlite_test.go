package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory() failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "history.db")

	h, err := OpenHistory(dbPath)
	if err != nil {
		t.Fatalf("OpenHistory() with nested path failed: %v", err)
	}
	defer h.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestHistorySaveAndTopRuns(t *testing.T) {
	h := openTestHistory(t)

	runs := []Run{
		{PlayerID: "a", PlayerName: "Ada", Score: 40, Level: 2, Preset: "EASY", Strategy: "continuous"},
		{PlayerID: "b", PlayerName: "Bob", Score: 75, Level: 3, Preset: "HARD", Strategy: "continuous"},
		{PlayerID: "a", PlayerName: "Ada", Score: 80, Level: 3, Preset: "CAMPAIGN", Strategy: "stages", Won: true, Duration: 90 * time.Second},
		{PlayerID: "b", PlayerName: "Bob", Score: 40, Level: 2, Preset: "MEDIUM", Strategy: "continuous"},
	}
	for _, r := range runs {
		if _, err := h.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := h.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 80 || top[1].Score != 75 || top[2].Score != 40 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
	// Equal scores keep insertion order
	if top[2].PlayerID != "a" {
		t.Errorf("Tie should favour the earlier run, got player %q", top[2].PlayerID)
	}
	if !top[0].Won || top[0].Duration != 90*time.Second || top[0].Strategy != "stages" {
		t.Errorf("Fields not preserved: %+v", top[0])
	}
}

func TestHistoryPlayerRunsAndStats(t *testing.T) {
	h := openTestHistory(t)

	h.RecordRun(Run{PlayerID: "a", PlayerName: "Ada", Score: 10, Level: 0, Preset: "EASY", Strategy: "continuous", Duration: time.Second})
	h.RecordRun(Run{PlayerID: "a", PlayerName: "Ada", Score: 30, Level: 1, Preset: "EASY", Strategy: "continuous", Duration: 2 * time.Second})
	h.RecordRun(Run{PlayerID: "b", PlayerName: "Bob", Score: 50, Level: 2, Preset: "CAMPAIGN", Strategy: "stages", Won: true})

	mine, err := h.PlayerRuns("a", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(mine) != 2 || mine[0].Score != 30 {
		t.Errorf("PlayerRuns should list newest first, got %+v", mine)
	}

	all, err := h.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if all.Runs != 3 || all.Wins != 1 || all.HighScore != 50 || all.MaxLevel != 2 {
		t.Errorf("Unexpected aggregate stats: %+v", all)
	}
	if all.AvgScore != 30 {
		t.Errorf("Expected average 30, got %v", all.AvgScore)
	}

	ada, err := h.Stats("a")
	if err != nil {
		t.Fatalf("Stats(a) failed: %v", err)
	}
	if ada.Runs != 2 || ada.HighScore != 30 || ada.TotalTime != 3*time.Second {
		t.Errorf("Unexpected player stats: %+v", ada)
	}
}

func TestHistoryEmptyAndClear(t *testing.T) {
	h := openTestHistory(t)

	stats, err := h.Stats("")
	if err != nil {
		t.Fatalf("Stats() on empty history failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Empty history should have zero stats, got %+v", stats)
	}

	h.RecordRun(Run{PlayerID: "a", PlayerName: "Ada", Score: 5, Preset: "EASY", Strategy: "continuous"})
	if err := h.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := h.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}
