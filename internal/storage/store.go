package storage

import (
	"errors"

	"github.com/brk3/habitcal/pkg/habit"
)

// ErrNoSnapshot is returned by LoadHabits when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no habit snapshot stored")

// Store persists the whole habit collection as one snapshot.
type Store interface {
	LoadHabits() ([]habit.Habit, error)
	SaveHabits(habits []habit.Habit) error
	Close() error
}
