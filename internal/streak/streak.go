// Package streak computes completion toggling and streak counters for habits.
// Everything here is a pure function of a habit and a calendar day; callers
// own persistence.
package streak

import (
	"fmt"

	"github.com/brk3/habitcal/pkg/habit"
)

// Policy selects how the current streak is recomputed when today's
// completion is undone.
type Policy int

const (
	// Approximate only looks at yesterday: keep the streak minus one if
	// yesterday is done, otherwise reset. It can drift from the real run when
	// history is non-contiguous.
	Approximate Policy = iota
	// Recompute rescans the remaining completions and counts the run of
	// consecutive days ending at the latest one.
	Recompute
)

func (p Policy) String() string {
	switch p {
	case Approximate:
		return "approximate"
	case Recompute:
		return "recompute"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "approximate":
		return Approximate, nil
	case "recompute":
		return Recompute, nil
	default:
		return Approximate, fmt.Errorf("unknown streak policy %q", s)
	}
}

// Toggle flips the completion state of h for today (YYYY-MM-DD) and returns
// the updated habit. h itself is left untouched.
func Toggle(h habit.Habit, today string, p Policy) habit.Habit {
	out := h.Clone()
	yesterday := habit.AddDays(today, -1)

	if h.CompletedOn(today) {
		kept := out.Completions[:0]
		for _, c := range out.Completions {
			if c.Date != today {
				kept = append(kept, c)
			}
		}
		out.Completions = kept

		switch p {
		case Recompute:
			out.CurrentStreak = trailingRun(kept)
			// A rescan can find a run longer than the drifted counters recorded.
			out.LongestStreak = max(out.LongestStreak, out.CurrentStreak)
		default:
			out.CurrentStreak = 0
			if yesterday != "" && completedOn(kept, yesterday) {
				out.CurrentStreak = max(h.CurrentStreak-1, 0)
			}
		}

		out.LastCompletionDate = ""
		if n := len(kept); n > 0 {
			out.LastCompletionDate = kept[n-1].Date
		}
		return out
	}

	out.Completions = append(out.Completions, habit.Completion{Date: today})
	if yesterday != "" && h.LastCompletionDate == yesterday {
		out.CurrentStreak = h.CurrentStreak + 1
	} else {
		out.CurrentStreak = 1
	}
	out.LongestStreak = max(h.LongestStreak, out.CurrentStreak)
	out.LastCompletionDate = today
	return out
}

func completedOn(cs []habit.Completion, day string) bool {
	for _, c := range cs {
		if c.Date == day {
			return true
		}
	}
	return false
}

// trailingRun counts consecutive days ending at the latest completion.
func trailingRun(cs []habit.Completion) int {
	days := uniqueDays(cs)
	if len(days) == 0 {
		return 0
	}
	run := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i]-days[i-1] != 1 {
			break
		}
		run++
	}
	return run
}
