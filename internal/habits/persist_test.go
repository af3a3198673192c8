package habits

import (
	"context"
	"testing"

	"github.com/brk3/habitcal/pkg/habit"
)

func TestAdapterLoad_FirstRun(t *testing.T) {
	res := NewAdapter(newMemStore()).Load(context.Background())
	if res.Source != SourceEmpty || len(res.Habits) != 0 || res.Err != nil {
		t.Fatalf("got %+v want empty first-run result", res)
	}
	if res.Habits == nil {
		t.Fatal("expected non-nil empty collection")
	}
}

func TestAdapterLoad_Corrupt(t *testing.T) {
	st := newMemStore()
	st.data = []byte("{not json")

	res := NewAdapter(st).Load(context.Background())

	if res.Source != SourceCorrupt {
		t.Fatalf("got source %s want corrupt", res.Source)
	}
	if res.Err == nil {
		t.Fatal("expected the decode error to be reported in the result")
	}
	if len(res.Habits) != 0 {
		t.Fatalf("expected empty collection, got %d", len(res.Habits))
	}
}

func TestAdapterLoad_ReadError(t *testing.T) {
	st := newMemStore()
	st.loadErr = errQuota
	res := NewAdapter(st).Load(context.Background())
	if res.Source != SourceCorrupt || res.Err != errQuota {
		t.Fatalf("got %+v", res)
	}
}

func TestAdapterLoad_FillsNilCompletions(t *testing.T) {
	st := newMemStore()
	st.data = []byte(`[{"id":"a","name":"guitar","currentStreak":0,"longestStreak":0}]`)

	res := NewAdapter(st).Load(context.Background())
	if res.Source != SourceStored {
		t.Fatalf("got source %s want stored", res.Source)
	}
	if res.Habits[0].Completions == nil {
		t.Fatal("expected completions to be normalised to an empty list")
	}
}

func TestAdapterSave_SwallowsErrors(t *testing.T) {
	st := newMemStore()
	st.saveErr = errQuota

	// Must not panic or surface the error.
	NewAdapter(st).Save(context.Background(), []habit.Habit{{ID: "a"}})

	if st.saves != 0 {
		t.Fatalf("expected no successful saves, got %d", st.saves)
	}
}

func TestTracker_ContinuesAfterSaveFailure(t *testing.T) {
	st := newMemStore()
	tr, _ := newTestTracker(t, st)
	st.saveErr = errQuota

	h, err := tr.Add(context.Background(), "guitar", "")
	if err != nil {
		t.Fatalf("Add should succeed despite storage failure: %v", err)
	}
	if _, err := tr.Get(h.ID); err != nil {
		t.Fatalf("habit should be kept in memory: %v", err)
	}
}

func TestAdapter_NilStore(t *testing.T) {
	a := NewAdapter(nil)
	a.Save(context.Background(), nil)
	if res := a.Load(context.Background()); res.Source != SourceEmpty {
		t.Fatalf("got %s want empty", res.Source)
	}
}
