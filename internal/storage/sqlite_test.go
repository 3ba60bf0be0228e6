package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs the migration again
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.bricks/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".bricks", "runs.db")); err != nil {
		t.Errorf("database not under home: %v", err)
	}
}

func TestSaveAndFetchRun(t *testing.T) {
	store := openTemp(t)
	started := time.UnixMilli(1_700_000_000_123)

	want := Run{
		SessionID:   "a",
		Layout:      "random",
		Seed:        -42,
		Outcome:     "fault",
		Frames:      120,
		Truncated:   2,
		BricksTotal: 160,
		BricksLeft:  150,
		Fault:       "bricks: physics invariant violated",
		Started:     started,
		Duration:    2500 * time.Millisecond,
	}
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d", id)
	}

	got, err := store.RunBySession("a")
	if err != nil {
		t.Fatalf("RunBySession() failed: %v", err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	want.ID = id
	want.CreatedAt = got.CreatedAt
	if !got.Started.Equal(want.Started) {
		t.Errorf("Started = %v, expected %v", got.Started, want.Started)
	}
	got.Started = want.Started
	if *got != want {
		t.Errorf("RunBySession() = %+v\nexpected %+v", *got, want)
	}
	if got.Broken() != 10 {
		t.Errorf("Broken() = %d", got.Broken())
	}

	if _, err := store.SaveRun(want); err == nil {
		t.Error("duplicate session id should be rejected")
	}

	missing, err := store.RunBySession("nope")
	if err != nil || missing != nil {
		t.Errorf("RunBySession(missing) = %v, %v", missing, err)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i, layout := range []string{"random", "pyramid", "random", "random"} {
		_, err := store.SaveRun(Run{
			SessionID: string(rune('a' + i)),
			Layout:    layout,
			Outcome:   "game_over",
			Started:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.SessionID)
	}
	if strings.Join(ids, "") != "dcba" {
		t.Errorf("RecentRuns order = %v, expected newest first", ids)
	}

	runs, err = store.RecentRuns("random", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].SessionID != "d" || runs[1].SessionID != "c" {
		t.Errorf("filtered runs = %+v", runs)
	}
}

func TestStats(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	rows := []Run{
		{SessionID: "1", Layout: "random", Outcome: "game_over", Frames: 100, BricksTotal: 10, BricksLeft: 7, Started: base},
		{SessionID: "2", Layout: "random", Outcome: "fault", Frames: 300, BricksTotal: 10, BricksLeft: 2, Started: base.Add(time.Hour)},
		{SessionID: "3", Layout: "heart", Outcome: "stopped", Frames: 10, BricksTotal: 80, BricksLeft: 80, Started: base},
	}
	for _, r := range rows {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats() has %d layouts, expected 2", len(stats))
	}

	r := stats["random"]
	if r.Runs != 2 || r.Faults != 1 || r.BestBroken != 8 || r.AvgFrames != 200 {
		t.Errorf("random stats = %+v", r)
	}
	if !r.LastPlayed.Equal(base.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v", r.LastPlayed)
	}
	if h := stats["heart"]; h.Runs != 1 || h.BestBroken != 0 {
		t.Errorf("heart stats = %+v", h)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	stats, _ = store.Stats()
	if len(stats) != 0 {
		t.Errorf("Stats() after clear = %v", stats)
	}
}

func TestRecordSummary(t *testing.T) {
	store := openTemp(t)

	sum := bricks.Summary{
		ID:          "sess",
		Layout:      "striped",
		Seed:        7,
		Outcome:     bricks.OutcomeGameOver,
		Frames:      42,
		BricksTotal: 5,
		BricksLeft:  3,
		Started:     time.UnixMilli(1_700_000_000_000),
		Elapsed:     700 * time.Millisecond,
	}
	if err := store.RecordSummary(sum); err != nil {
		t.Fatalf("RecordSummary() failed: %v", err)
	}

	got, err := store.RunBySession("sess")
	if err != nil || got == nil {
		t.Fatalf("RunBySession() = %v, %v", got, err)
	}
	if got.Outcome != "game_over" || got.Frames != 42 || got.Duration != 700*time.Millisecond || got.Fault != "" {
		t.Errorf("journaled run = %+v", got)
	}

	sum.ID = "live"
	sum.Outcome = bricks.OutcomeRunning
	if err := store.RecordSummary(sum); err == nil {
		t.Error("running session should not be journaled")
	}
}
