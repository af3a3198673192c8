package server

import (
	"github.com/brk3/habitcal/pkg/habit"
	"github.com/brk3/habitcal/pkg/leave"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	HabitsReady bool   `json:"habits_ready"`
}

type HabitListResponse struct {
	Habits []habit.Habit `json:"habits"`
}

type AddHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type HabitSummaryResponse struct {
	HabitID      string             `json:"habit_id"`
	HabitSummary habit.HabitSummary `json:"habit_summary"`
}

type LeaveListResponse struct {
	Requests []leave.Request `json:"requests"`
}

type AddLeaveRequest struct {
	Date string     `json:"date"`
	Type leave.Type `json:"type"`
	// Comment is only kept for the comment type.
	Comment string `json:"comment,omitempty"`
	// EmployeeName is used when the caller has no identity cookie or header.
	EmployeeName string `json:"employeeName,omitempty"`
}

type DeleteLeaveResponse struct {
	ID string `json:"id"`
}

type LeaveType struct {
	Type  leave.Type `json:"type"`
	Label string     `json:"label"`
}

type IdentityResponse struct {
	EmployeeName string `json:"employeeName"`
}

type TextResponse struct {
	Text string `json:"text"`
}

type IdeasResponse struct {
	Ideas []habit.SuggestedHabit `json:"ideas"`
}
