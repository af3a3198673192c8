package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brk3/habitcal/pkg/leave"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(opts ...Option) *Service {
	return New(append([]Option{WithDelays(0, 0)}, opts...)...)
}

func absence(t *testing.T, typ leave.Type) leave.Entry {
	t.Helper()
	e, err := leave.Absence(typ)
	if err != nil {
		t.Fatalf("Absence(%q) failed: %v", typ, err)
	}
	return e
}

func requestDates(rs []leave.Request) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Date)
	}
	return out
}

func TestAdd_KeepsDateOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithRequests([]leave.Request{
		{ID: "5", Date: "2024-01-05", EmployeeName: "sato", Entry: absence(t, leave.TypeDayOff)},
	}))

	if _, err := svc.Add(ctx, "2024-01-01", "suzuki", leave.TypeAMOff, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2024-01-01", "2024-01-05"}, requestDates(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAdd_StableOnTies(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		r, err := svc.Add(ctx, "2024-02-01", name, leave.TypePaidLeave, "")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids = append(ids, r.ID)
	}
	if _, err := svc.Add(ctx, "2024-01-01", "d", leave.TypePaidLeave, ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, _ := svc.List(ctx)
	for i, id := range ids {
		if got[i+1].ID != id {
			t.Fatalf("position %d: got %s want %s", i+1, got[i+1].ID, id)
		}
	}
}

func TestAdd_BlankNameRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithSeed())
	before, _ := svc.List(ctx)

	for _, name := range []string{"", "   "} {
		_, err := svc.Add(ctx, "2024-01-01", name, leave.TypeDayOff, "")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Add(%q): got %v want ValidationError", name, err)
		}
		if verr.Field != "employeeName" {
			t.Errorf("field: got %q want employeeName", verr.Field)
		}
	}

	after, _ := svc.List(ctx)
	if diff := cmp.Diff(requestDates(before), requestDates(after)); diff != "" {
		t.Fatalf("collection mutated (-before +after):\n%s", diff)
	}
}

func TestAdd_OtherValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name    string
		date    string
		typ     leave.Type
		comment string
		field   string
	}{
		{"bad date", "2024/01/01", leave.TypeDayOff, "", "date"},
		{"unknown type", "2024-01-01", "vacation", "", "type"},
		{"empty comment", "2024-01-01", leave.TypeComment, "  ", "comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.date, "sato", tt.typ, tt.comment)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("got %v want ValidationError on %s", err, tt.field)
			}
		})
	}
	if got, _ := svc.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
}

func TestAdd_CommentOnlyForCommentType(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	note, err := svc.Add(ctx, "2024-01-01", "ito", leave.TypeComment, "parcel at 3pm")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if text, ok := note.Entry.Comment(); !ok || text != "parcel at 3pm" {
		t.Fatalf("comment: got (%q, %v)", text, ok)
	}

	off, err := svc.Add(ctx, "2024-01-01", "ito", leave.TypeDayOff, "dropped")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, ok := off.Entry.Comment(); ok {
		t.Fatal("absence entry must not carry a comment")
	}
}

func TestDelete_ThenNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithRequests([]leave.Request{
		{ID: "1", Date: "2024-06-01", EmployeeName: "sato", Entry: absence(t, leave.TypePaidLeave)},
	}))

	id, err := svc.Delete(ctx, "1")
	if err != nil || id != "1" {
		t.Fatalf("Delete: got (%q, %v) want (1, nil)", id, err)
	}
	if got, _ := svc.List(ctx); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}

	_, err = svc.Delete(ctx, "1")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("second Delete: got %v want NotFoundError", err)
	}
}

func TestDelete_UnknownKeepsSize(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithSeed())
	before, _ := svc.List(ctx)

	var nf *NotFoundError
	if _, err := svc.Delete(ctx, "missing"); !errors.As(err, &nf) {
		t.Fatalf("got %v want NotFoundError", err)
	}
	after, _ := svc.List(ctx)
	if len(after) != len(before) {
		t.Fatalf("size changed from %d to %d", len(before), len(after))
	}
}

func TestDeleteAs_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithRequests([]leave.Request{
		{ID: "1", Date: "2024-06-01", EmployeeName: "Sato", Entry: absence(t, leave.TypePaidLeave)},
	}))

	for _, who := range []string{"sato", "Sato ", "Suzuki", ""} {
		if _, err := svc.DeleteAs(ctx, "1", who); !errors.Is(err, ErrNotOwner) {
			t.Fatalf("DeleteAs(%q): got %v want ErrNotOwner", who, err)
		}
	}
	if got, _ := svc.List(ctx); len(got) != 1 {
		t.Fatalf("forbidden delete mutated the collection")
	}
	if _, err := svc.DeleteAs(ctx, "1", "Sato"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestList_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(WithSeed())

	got, _ := svc.List(ctx)
	got[0].EmployeeName = "changed"

	again, _ := svc.List(ctx)
	if len(again) != 6 || again[0].EmployeeName == "changed" {
		t.Fatalf("internal state leaked: %+v", again)
	}
}

func TestSeed_SortedRelativeToClock(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(WithSeed(), WithClock(func() time.Time { return now }))

	got, _ := svc.List(context.Background())
	want := []string{"2024-06-09", "2024-06-12", "2024-06-12", "2024-06-15", "2024-06-20", "2024-06-20"}
	if diff := cmp.Diff(want, requestDates(got)); diff != "" {
		t.Fatalf("seed dates mismatch (-want +got):\n%s", diff)
	}
}

func TestRecent_LatestFirstAndLimited(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		if _, err := svc.Add(ctx, d, "sato", leave.TypeDayOff, ""); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2024-01-03", "2024-01-02"}, requestDates(got)); diff != "" {
		t.Fatalf("recent mismatch (-want +got):\n%s", diff)
	}
}

func TestMonth(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, d := range []string{"2024-05-31", "2024-06-01", "2024-06-30", "2024-07-01"} {
		if _, err := svc.Add(ctx, d, "sato", leave.TypeDayOff, ""); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := svc.Month(ctx, 2024, time.June)
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2024-06-01", "2024-06-30"}, requestDates(got)); diff != "" {
		t.Fatalf("month mismatch (-want +got):\n%s", diff)
	}
}

func TestLatency_CancelledBeforeMutation(t *testing.T) {
	svc := New(WithDelays(time.Hour, time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Add(ctx, "2024-01-01", "sato", leave.TypeDayOff, "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v want DeadlineExceeded", err)
	}

	svc.listDelay = 0
	got, _ := svc.List(context.Background())
	if len(got) != 0 {
		t.Fatalf("cancelled add must not mutate, got %d requests", len(got))
	}
}

func TestLatency_Applied(t *testing.T) {
	svc := New(WithDelays(20*time.Millisecond, 0))
	start := time.Now()
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected simulated latency, returned after %v", elapsed)
	}
}

func TestIDs_UniqueAndTimeOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 50; i++ {
		r, err := svc.Add(ctx, "2024-01-01", "sato", leave.TypeDayOff, "")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		if r.ID <= prev {
			t.Fatalf("ids not increasing: %s after %s", r.ID, prev)
		}
		seen[r.ID] = true
		prev = r.ID
	}
}
