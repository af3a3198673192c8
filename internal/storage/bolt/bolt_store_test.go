package bolt

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/brk3/habitcal/internal/storage"
	"github.com/brk3/habitcal/pkg/habit"
	"go.etcd.io/bbolt"
)

func newTestStore(t *testing.T) (*Store, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, cleanup
}

func TestOpen(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestLoadHabits_NoSnapshot(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	_, err := store.LoadHabits()
	if !errors.Is(err, storage.ErrNoSnapshot) {
		t.Fatalf("got %v want ErrNoSnapshot", err)
	}
}

func TestSaveAndLoadHabits(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	habits := []habit.Habit{
		{
			ID:                 "a",
			Name:               "guitar",
			CreatedAt:          created,
			Completions:        []habit.Completion{{Date: "2024-03-10"}, {Date: "2024-03-11", Notes: "scales"}},
			CurrentStreak:      2,
			LongestStreak:      2,
			LastCompletionDate: "2024-03-11",
		},
		{ID: "b", Name: "exercise", CreatedAt: created, Completions: []habit.Completion{}},
	}

	if err := store.SaveHabits(habits); err != nil {
		t.Fatalf("SaveHabits failed: %v", err)
	}

	got, err := store.LoadHabits()
	if err != nil {
		t.Fatalf("LoadHabits failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Completions[1].Notes != "scales" {
		t.Errorf("expected note 'scales', got %q", got[0].Completions[1].Notes)
	}
	if !got[0].CreatedAt.Equal(created) {
		t.Errorf("createdAt: got %v want %v", got[0].CreatedAt, created)
	}
}

func TestSaveHabits_OverwritesSnapshot(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveHabits([]habit.Habit{{ID: "a", Name: "guitar"}}); err != nil {
		t.Fatalf("SaveHabits failed: %v", err)
	}
	if err := store.SaveHabits(nil); err != nil {
		t.Fatalf("SaveHabits failed: %v", err)
	}

	got, err := store.LoadHabits()
	if err != nil {
		t.Fatalf("LoadHabits failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d habits", len(got))
	}
}

func TestLoadHabits_Corrupt(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(rootBucket)).Put([]byte(habitsKey), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("failed to write corrupt snapshot: %v", err)
	}

	if _, err := store.LoadHabits(); err == nil {
		t.Fatal("expected decode error for corrupt snapshot")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.SaveHabits([]habit.Habit{{ID: "a", Name: "guitar"}}); err != nil {
		t.Fatalf("SaveHabits failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	got, err := store.LoadHabits()
	if err != nil {
		t.Fatalf("LoadHabits failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "guitar" {
		t.Fatalf("expected [guitar], got %+v", got)
	}
}
