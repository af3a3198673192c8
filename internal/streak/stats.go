package streak

import (
	"slices"
	"time"

	"github.com/brk3/habitcal/pkg/habit"
)

const daySec int64 = 24 * 60 * 60

// uniqueDays returns the distinct completion days as day numbers since the
// epoch, ascending. Malformed dates are skipped.
func uniqueDays(cs []habit.Completion) []int64 {
	uniq := make(map[int64]struct{}, len(cs))
	for i := range cs {
		t, err := habit.ParseDay(cs[i].Date)
		if err != nil {
			continue
		}
		uniq[t.Unix()/daySec] = struct{}{}
	}

	days := make([]int64, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

func dayNumber(t time.Time) int64 {
	return t.UTC().Truncate(24*time.Hour).Unix() / daySec
}

// Stats derives a summary purely from the completion history. Unlike the
// counters stored on the habit, the current streak here is only non-zero
// while it is still alive, i.e. the latest completion is today or yesterday.
func Stats(h habit.Habit, now time.Time) habit.HabitSummary {
	summary := habit.HabitSummary{
		Name:      h.Name,
		LastWrite: now.Unix(),
	}

	days := uniqueDays(h.Completions)
	if len(days) == 0 {
		return summary
	}

	today := dayNumber(now)
	summary.TotalDaysDone = len(days)
	summary.FirstLogged = time.Unix(days[0]*daySec, 0).UTC().Format(habit.DayLayout)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	summary.LongestStreak = longest

	latest := days[len(days)-1]
	if latest == today || latest == today-1 {
		summary.CurrentStreak = run
	}

	perMonth := map[string]int{}
	thisMonth := now.UTC().Format("2006-01")
	for _, d := range days {
		perMonth[time.Unix(d*daySec, 0).UTC().Format("2006-01")]++
	}
	for _, n := range perMonth {
		summary.BestMonth = max(summary.BestMonth, n)
	}
	summary.ThisMonth = perMonth[thisMonth]

	return summary
}
