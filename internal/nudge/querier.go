package nudge

import (
	"context"

	"github.com/brk3/habitcal/pkg/habit"
)

type Querier interface {
	ListHabits(ctx context.Context) ([]habit.Habit, error)
}

type Notifier interface {
	SendNudge(ctx context.Context, habits []string, hoursTillExpiry int) error
}
