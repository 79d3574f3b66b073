package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-physics/internal/core"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	state := core.SceneState{
		Ticks:         600,
		Contacts:      42,
		Top:           1,
		Bottom:        30,
		Left:          5,
		Right:         6,
		GroundedTicks: 400,
		MaxSpeed:      12.5,
	}
	id, err := store.SaveRun("platformer", state)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive id, got %d", id)
	}

	runs, err := store.RecentRuns("platformer", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	r := runs[0]
	if r.SceneID != "platformer" || r.Ticks != 600 || r.Contacts != 42 {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Top != 1 || r.Bottom != 30 || r.Left != 5 || r.Right != 6 {
		t.Errorf("side counts not stored: %+v", r)
	}
	if r.GroundedTicks != 400 || r.MaxSpeed != 12.5 {
		t.Errorf("grounded ticks or max speed not stored: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveRunRequiresScene(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun("", core.SceneState{}); err == nil {
		t.Error("expected error for empty scene id")
	}
}

func TestStoreRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRun("bouncer", core.SceneState{Ticks: i * 100})
	}
	store.SaveRun("cannon", core.SceneState{Ticks: 7})

	runs, err := store.RecentRuns("bouncer", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].Ticks != 500 || runs[1].Ticks != 400 || runs[2].Ticks != 300 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 runs across scenes, got %d", len(all))
	}
	if all[0].SceneID != "cannon" {
		t.Errorf("Expected newest run first, got %s", all[0].SceneID)
	}
}

func TestStoreSceneStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.SceneStats("platformer")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.MaxSpeed != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected zero stats for unplayed scene, got %+v", empty)
	}

	store.SaveRun("platformer", core.SceneState{Ticks: 100, Contacts: 10, MaxSpeed: 3})
	store.SaveRun("platformer", core.SceneState{Ticks: 300, Contacts: 30, MaxSpeed: 9})
	store.SaveRun("cannon", core.SceneState{Ticks: 50, Contacts: 1, MaxSpeed: 400})

	stats, err := store.SceneStats("platformer")
	if err != nil {
		t.Fatalf("SceneStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.TotalTicks != 400 || stats.TotalContacts != 40 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.AvgContacts != 20 || stats.MaxSpeed != 9 {
		t.Errorf("unexpected aggregates: %+v", stats)
	}

	all, err := store.AllSceneStats()
	if err != nil {
		t.Fatalf("AllSceneStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 scenes, got %d", len(all))
	}
	if all["cannon"].MaxSpeed != 400 || all["platformer"].Runs != 2 {
		t.Errorf("unexpected per-scene stats: cannon=%+v platformer=%+v", all["cannon"], all["platformer"])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("bouncer", core.SceneState{Ticks: 1})
	store.SaveRun("bouncer", core.SceneState{Ticks: 2})
	store.SaveRun("cannon", core.SceneState{Ticks: 3})

	// Clear only bouncer runs
	n, err := store.ClearRuns("bouncer")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 cleared runs, got %d", n)
	}

	if runs, _ := store.RecentRuns("bouncer", 10); len(runs) != 0 {
		t.Errorf("Expected 0 bouncer runs after clear, got %d", len(runs))
	}
	if runs, _ := store.RecentRuns("cannon", 10); len(runs) != 1 {
		t.Error("Cannon runs should not be affected by clearing bouncer")
	}

	if n, _ := store.ClearRuns(""); n != 1 {
		t.Errorf("Expected clearing all to remove 1 run, got %d", n)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
