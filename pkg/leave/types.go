package leave

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Type string

const (
	TypeDayOff      Type = "day_off"
	TypeAMOff       Type = "am_off"
	TypePMOff       Type = "pm_off"
	TypePaidLeave   Type = "paid_leave"
	TypeAMPaidLeave Type = "am_paid_leave"
	TypePMPaidLeave Type = "pm_paid_leave"
	TypeComment     Type = "comment"
)

// Types lists every leave category in display order.
var Types = []Type{
	TypeDayOff,
	TypeAMOff,
	TypePMOff,
	TypePaidLeave,
	TypeAMPaidLeave,
	TypePMPaidLeave,
	TypeComment,
}

var labels = map[Type]string{
	TypeDayOff:      "Day off",
	TypeAMOff:       "AM off",
	TypePMOff:       "PM off",
	TypePaidLeave:   "Paid leave",
	TypeAMPaidLeave: "AM paid leave",
	TypePMPaidLeave: "PM paid leave",
	TypeComment:     "Comment",
}

func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

func (t Type) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

var (
	ErrUnknownType  = errors.New("unknown leave type")
	ErrEmptyComment = errors.New("comment text is required")
)

// Entry is what a leave request records for its day. Only the comment
// category carries text; the zero Entry is invalid.
type Entry struct {
	typ     Type
	comment string
}

// Absence builds an entry for any non-comment category.
func Absence(t Type) (Entry, error) {
	if !t.Valid() || t == TypeComment {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return Entry{typ: t}, nil
}

// Note builds a shared-comment entry. Blank text is rejected.
func Note(text string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, ErrEmptyComment
	}
	return Entry{typ: TypeComment, comment: text}, nil
}

// NewEntry picks Note for the comment category and Absence otherwise;
// comment is ignored for absences.
func NewEntry(t Type, comment string) (Entry, error) {
	if t == TypeComment {
		return Note(comment)
	}
	return Absence(t)
}

func (e Entry) Type() Type { return e.typ }

// Comment returns the note text and whether the entry is a comment.
func (e Entry) Comment() (string, bool) {
	return e.comment, e.typ == TypeComment
}

// Request is one row of the shared leave calendar.
type Request struct {
	ID           string
	Date         string
	EmployeeName string
	Entry        Entry
}

type wireRequest struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	EmployeeName string `json:"employeeName"`
	Type         Type   `json:"type"`
	Comment      string `json:"comment,omitempty"`
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRequest{
		ID:           r.ID,
		Date:         r.Date,
		EmployeeName: r.EmployeeName,
		Type:         r.Entry.typ,
		Comment:      r.Entry.comment,
	})
}

func (r *Request) UnmarshalJSON(data []byte) error {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e, err := NewEntry(w.Type, w.Comment)
	if err != nil {
		return err
	}
	*r = Request{ID: w.ID, Date: w.Date, EmployeeName: w.EmployeeName, Entry: e}
	return nil
}
