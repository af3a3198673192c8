// Package nudge reminds the user about streaks that lapse at the end of the
// current UTC day.
package nudge

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/pkg/habit"
)

// GetHabitsExpiringIn returns the names of habits with a live streak that has
// not been extended today, when midnight UTC is at most window away.
func GetHabitsExpiringIn(ctx context.Context, q Querier, now time.Time, window time.Duration) ([]string, error) {
	hs, err := q.ListHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	now = now.UTC()
	if untilMidnight(now) > window {
		logger.Debug("Outside nudge window", "until_midnight", untilMidnight(now), "window", window)
		return nil, nil
	}

	today := habit.Day(now)
	yesterday := habit.AddDays(today, -1)
	var out []string
	for _, h := range hs {
		// CompletedOn covers imported histories whose last entry is not the latest day.
		if h.CurrentStreak == 0 || h.CompletedOn(today) {
			continue
		}
		if h.LastCompletionDate == yesterday {
			out = append(out, h.Name)
		}
	}
	return out, nil
}

// Run sends one nudge covering every expiring habit. It reports how many
// habits were included.
func Run(ctx context.Context, q Querier, n Notifier, now time.Time, window time.Duration) (int, error) {
	expiring, err := GetHabitsExpiringIn(ctx, q, now, window)
	if err != nil {
		return 0, err
	}
	if len(expiring) == 0 {
		logger.Info("No streaks expiring", "window", window)
		return 0, nil
	}

	hours := int(math.Ceil(untilMidnight(now.UTC()).Hours()))
	logger.Info("Sending nudge", "habits", expiring, "hours_till_expiry", hours)
	if err := n.SendNudge(ctx, expiring, hours); err != nil {
		return 0, fmt.Errorf("failed to send nudge: %w", err)
	}
	return len(expiring), nil
}

func untilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC).Sub(now)
}
