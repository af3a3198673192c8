// Package habits owns the habit collection: it loads it once, applies
// add/delete/toggle, and saves the full snapshot after every change.
package habits

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/streak"
	"github.com/brk3/habitcal/pkg/habit"
	"github.com/google/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1024
)

var ErrAlreadyLoaded = errors.New("habits already loaded")

type Tracker struct {
	mu      sync.Mutex
	adapter *Adapter
	policy  streak.Policy
	now     func() time.Time
	newID   func() string

	loaded bool
	habits []habit.Habit
}

type Option func(*Tracker)

func WithPolicy(p streak.Policy) Option {
	return func(t *Tracker) { t.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(adapter *Adapter, opts ...Option) *Tracker {
	t := &Tracker{
		adapter: adapter,
		policy:  streak.Approximate,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Load reads the stored collection. It must be called exactly once, before
// any other method.
func (t *Tracker) Load(ctx context.Context) (LoadResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return LoadResult{}, ErrAlreadyLoaded
	}
	res := t.adapter.Load(ctx)
	t.habits = res.Habits
	t.loaded = true
	activeHabits.Set(float64(len(t.habits)))
	return res, nil
}

// Today is the current calendar day in UTC.
func (t *Tracker) Today() string {
	return habit.Day(t.now())
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

func (t *Tracker) List() ([]habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return nil, ErrNotLoaded
	}
	out := make([]habit.Habit, len(t.habits))
	for i := range t.habits {
		out[i] = t.habits[i].Clone()
	}
	return out, nil
}

func (t *Tracker) Get(id string) (habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return habit.Habit{}, ErrNotLoaded
	}
	i := t.index(id)
	if i < 0 {
		return habit.Habit{}, &NotFoundError{ID: id}
	}
	return t.habits[i].Clone(), nil
}

// Add creates a habit and puts it at the front of the collection.
func (t *Tracker) Add(ctx context.Context, name, description string) (habit.Habit, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validate(name, description); err != nil {
		return habit.Habit{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return habit.Habit{}, ErrNotLoaded
	}

	h := habit.Habit{
		ID:          t.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   t.now().UTC(),
		Completions: []habit.Completion{},
	}
	t.habits = slices.Insert(t.habits, 0, h)
	t.persist(ctx)

	logger.InfoContext(ctx, "Habit added", "habit_id", h.ID, "habit_name", h.Name)
	return h.Clone(), nil
}

func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return ErrNotLoaded
	}
	i := t.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	t.habits = slices.Delete(t.habits, i, i+1)
	t.persist(ctx)

	logger.InfoContext(ctx, "Habit deleted", "habit_id", id)
	return nil
}

// Toggle marks the habit done for today, or undoes today's completion.
func (t *Tracker) Toggle(ctx context.Context, id string) (habit.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loaded {
		return habit.Habit{}, ErrNotLoaded
	}
	i := t.index(id)
	if i < 0 {
		return habit.Habit{}, &NotFoundError{ID: id}
	}

	today := habit.Day(t.now())
	action := "complete"
	if t.habits[i].CompletedOn(today) {
		action = "undo"
	}
	t.habits[i] = streak.Toggle(t.habits[i], today, t.policy)
	t.persist(ctx)
	toggleTotal.WithLabelValues(action).Inc()

	h := t.habits[i]
	logger.InfoContext(ctx, "Habit toggled", "habit_id", id, "action", action, "day", today,
		"current_streak", h.CurrentStreak, "longest_streak", h.LongestStreak)
	return h.Clone(), nil
}

func (t *Tracker) index(id string) int {
	return slices.IndexFunc(t.habits, func(h habit.Habit) bool { return h.ID == id })
}

// persist saves the complete collection; callers hold t.mu.
func (t *Tracker) persist(ctx context.Context) {
	activeHabits.Set(float64(len(t.habits)))
	t.adapter.Save(ctx, t.habits)
}

func validate(name, description string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &ValidationError{Field: "name", Message: "too long"}
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return &ValidationError{Field: "description", Message: "too long"}
	}
	return nil
}
