package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordEndingUpsertsPerEndingID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	def, _ := ending.ByID("basic_survivor")
	res := ending.Result{Ending: def, Score: 12}

	if err := s.RecordEnding(ctx, "run-1", res, ending.Stats{SurvivalScore: 400}); err != nil {
		t.Fatalf("first RecordEnding failed: %v", err)
	}
	first, err := s.ListAchievements(ctx, 10)
	if err != nil {
		t.Fatalf("ListAchievements failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("Expected one achievement row, got %d", len(first))
	}
	if first[0].EndingID != "basic_survivor" || first[0].TimesEarned != 1 {
		t.Errorf("Expected basic_survivor earned once, got %+v", first[0])
	}
	if first[0].Rarity == "" {
		t.Error("Expected the rarity carried from the catalog")
	}

	// A second run reaching the same ending bumps the count, keeps the
	// first-seen stamp, and keeps the best score.
	if err := s.RecordEnding(ctx, "run-2", res, ending.Stats{SurvivalScore: 250}); err != nil {
		t.Fatalf("second RecordEnding failed: %v", err)
	}
	second, err := s.ListAchievements(ctx, 10)
	if err != nil {
		t.Fatalf("ListAchievements failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("Expected the repeat ending folded into one row, got %d", len(second))
	}
	if second[0].TimesEarned != 2 {
		t.Errorf("Expected times_earned 2, got %d", second[0].TimesEarned)
	}
	if !second[0].FirstSeen.Equal(first[0].FirstSeen) {
		t.Errorf("Expected first_seen unchanged, %v -> %v", first[0].FirstSeen, second[0].FirstSeen)
	}
	if second[0].BestScore != 400 {
		t.Errorf("Expected the best score kept, got %v", second[0].BestScore)
	}
	if second[0].LastRunID != "run-2" {
		t.Errorf("Expected last_run_id updated, got %q", second[0].LastRunID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertSave(ctx, "run-1", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("UpsertSave failed: %v", err)
	}
	if err := s.UpsertSave(ctx, "run-1", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second UpsertSave failed: %v", err)
	}

	runID, state, err := s.LatestSave(ctx)
	if err != nil {
		t.Fatalf("LatestSave failed: %v", err)
	}
	if runID != "run-1" || string(state) != `{"v":2}` {
		t.Errorf("Expected the replaced save back, got %q %s", runID, state)
	}

	if err := s.DeleteSave(ctx, "run-1"); err != nil {
		t.Fatalf("DeleteSave failed: %v", err)
	}
	if _, state, _ := s.LatestSave(ctx); state != nil {
		t.Errorf("Expected no save after delete, got %s", state)
	}
}
