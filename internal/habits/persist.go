package habits

import (
	"context"
	"errors"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/storage"
	"github.com/brk3/habitcal/pkg/habit"
)

type Source int

const (
	// SourceEmpty means nothing had been saved yet (first run).
	SourceEmpty Source = iota
	// SourceStored means a snapshot was read successfully.
	SourceStored
	// SourceCorrupt means a snapshot existed but could not be read; the
	// caller starts from an empty collection.
	SourceCorrupt
)

func (s Source) String() string {
	switch s {
	case SourceEmpty:
		return "empty"
	case SourceStored:
		return "stored"
	case SourceCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

type LoadResult struct {
	Habits []habit.Habit
	Source Source
	Err    error
}

// Adapter loads and saves the full habit collection. It never returns
// storage failures to its callers; they are logged and the app carries on.
type Adapter struct {
	store storage.Store
}

func NewAdapter(store storage.Store) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) Load(ctx context.Context) LoadResult {
	if a.store == nil {
		return LoadResult{Habits: []habit.Habit{}, Source: SourceEmpty}
	}

	hs, err := a.store.LoadHabits()
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		logger.DebugContext(ctx, "No habit snapshot found, starting empty")
		return LoadResult{Habits: []habit.Habit{}, Source: SourceEmpty}
	case err != nil:
		logger.ErrorContext(ctx, "Failed to load habits, starting empty", "error", err)
		storageErrors.WithLabelValues("load").Inc()
		return LoadResult{Habits: []habit.Habit{}, Source: SourceCorrupt, Err: err}
	}

	if hs == nil {
		hs = []habit.Habit{}
	}
	for i := range hs {
		if hs[i].Completions == nil {
			hs[i].Completions = []habit.Completion{}
		}
	}
	logger.InfoContext(ctx, "Loaded habits", "count", len(hs))
	return LoadResult{Habits: hs, Source: SourceStored}
}

func (a *Adapter) Save(ctx context.Context, hs []habit.Habit) {
	if a.store == nil {
		return
	}
	if err := a.store.SaveHabits(hs); err != nil {
		logger.ErrorContext(ctx, "Failed to save habits", "count", len(hs), "error", err)
		storageErrors.WithLabelValues("save").Inc()
		return
	}
	logger.DebugContext(ctx, "Saved habits", "count", len(hs))
}
