package calendar

import (
	"time"

	"github.com/brk3/habitcal/pkg/habit"
	"github.com/brk3/habitcal/pkg/leave"
)

func seedRequests(now time.Time) []leave.Request {
	day := func(offset int) string {
		return habit.Day(now.AddDate(0, 0, offset))
	}
	absence := func(t leave.Type) leave.Entry {
		e, _ := leave.Absence(t)
		return e
	}
	note, _ := leave.Note("Remote work")

	return []leave.Request{
		{ID: "1", Date: day(2), EmployeeName: "Sato", Entry: absence(leave.TypePaidLeave)},
		{ID: "2", Date: day(2), EmployeeName: "Suzuki", Entry: absence(leave.TypeAMOff)},
		{ID: "3", Date: day(5), EmployeeName: "Takahashi", Entry: absence(leave.TypeDayOff)},
		{ID: "4", Date: day(10), EmployeeName: "Tanaka", Entry: absence(leave.TypePMPaidLeave)},
		{ID: "5", Date: day(10), EmployeeName: "Ito", Entry: note},
		{ID: "6", Date: day(-1), EmployeeName: "Watanabe", Entry: absence(leave.TypePaidLeave)},
	}
}
