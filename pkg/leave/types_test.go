package leave

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewEntry_CommentRequiresText(t *testing.T) {
	if _, err := NewEntry(TypeComment, "   "); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("got %v want ErrEmptyComment", err)
	}
	e, err := NewEntry(TypeComment, "remote today")
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}
	if text, ok := e.Comment(); !ok || text != "remote today" {
		t.Fatalf("got (%q, %v) want (remote today, true)", text, ok)
	}
}

func TestNewEntry_AbsenceDropsComment(t *testing.T) {
	e, err := NewEntry(TypePaidLeave, "ignored")
	if err != nil {
		t.Fatalf("NewEntry failed: %v", err)
	}
	if text, ok := e.Comment(); ok || text != "" {
		t.Fatalf("absence should carry no comment, got (%q, %v)", text, ok)
	}
}

func TestAbsence_RejectsUnknownAndComment(t *testing.T) {
	for _, typ := range []Type{"holiday", "", TypeComment} {
		if _, err := Absence(typ); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Absence(%q) = %v, want ErrUnknownType", typ, err)
		}
	}
}

func TestRequestJSON_OmitsCommentForAbsence(t *testing.T) {
	e, _ := Absence(TypeAMOff)
	data, err := json.Marshal(Request{ID: "1", Date: "2024-06-01", EmployeeName: "sato", Entry: e})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":"1","date":"2024-06-01","employeeName":"sato","type":"am_off"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

func TestRequestJSON_RejectsBlankComment(t *testing.T) {
	var r Request
	err := json.Unmarshal([]byte(`{"id":"1","date":"2024-06-01","employeeName":"ito","type":"comment"}`), &r)
	if !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("got %v want ErrEmptyComment", err)
	}
}
