package habit

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used for completion dates.
const DayLayout = "2006-01-02"

type Completion struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

// Habit is stored in the same shape the browser front-end keeps in local
// storage, so snapshots can be moved between the two.
type Habit struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	Completions        []Completion `json:"completions"`
	CurrentStreak      int          `json:"currentStreak"`
	LongestStreak      int          `json:"longestStreak"`
	LastCompletionDate string       `json:"lastCompletionDate,omitempty"`
}

// CompletedOn reports whether the habit has a completion for day.
func (h Habit) CompletedOn(day string) bool {
	for _, c := range h.Completions {
		if c.Date == day {
			return true
		}
	}
	return false
}

// Clone returns a copy of h that shares no slice storage with it.
func (h Habit) Clone() Habit {
	out := h
	out.Completions = append([]Completion(nil), h.Completions...)
	return out
}

type SuggestedHabit struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type HabitSummary struct {
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	FirstLogged   string `json:"first_logged,omitempty"`
	TotalDaysDone int    `json:"total_days_done"`
	BestMonth     int    `json:"best_month"`
	ThisMonth     int    `json:"this_month"`
	LastWrite     int64  `json:"last_write"`
}

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad day %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// Day formats t as a calendar day in UTC.
func Day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// AddDays shifts a YYYY-MM-DD day by n days. Malformed input yields "".
func AddDays(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(DayLayout)
}
