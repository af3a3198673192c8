// Package calendar is an in-process stand-in for the remote store behind the
// team leave calendar. It validates input, keeps requests sorted by date and
// simulates network latency on every call.
package calendar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/pkg/habit"
	"github.com/brk3/habitcal/pkg/leave"
	"github.com/google/uuid"
)

const (
	DefaultListDelay   = 500 * time.Millisecond
	DefaultMutateDelay = 300 * time.Millisecond
	DefaultRecentLimit = 30
)

type Service struct {
	mu       sync.Mutex
	requests []leave.Request

	listDelay   time.Duration
	mutateDelay time.Duration
	seed        bool
	now         func() time.Time
	newID       func() string
}

type Option func(*Service)

func WithDelays(list, mutate time.Duration) Option {
	return func(s *Service) {
		s.listDelay = list
		s.mutateDelay = mutate
	}
}

// WithSeed preloads demo requests dated relative to the clock.
func WithSeed() Option {
	return func(s *Service) { s.seed = true }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRequests(rs []leave.Request) Option {
	return func(s *Service) { s.requests = append(s.requests, rs...) }
}

func New(opts ...Option) *Service {
	s := &Service{
		requests:    []leave.Request{},
		listDelay:   DefaultListDelay,
		mutateDelay: DefaultMutateDelay,
		now:         time.Now,
		newID:       newTimeID,
	}
	for _, o := range opts {
		o(s)
	}
	if s.seed {
		s.requests = append(s.requests, seedRequests(s.now())...)
	}
	s.sortLocked()
	requestCount.Set(float64(len(s.requests)))
	return s
}

// List returns a snapshot of every request, date ascending.
func (s *Service) List(ctx context.Context) ([]leave.Request, error) {
	logger.DebugContext(ctx, "Fetching leave requests")
	if err := s.wait(ctx, s.listDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests), nil
}

// Add validates and stores a new request, then re-sorts the collection.
func (s *Service) Add(ctx context.Context, date, employeeName string, typ leave.Type, comment string) (leave.Request, error) {
	logger.InfoContext(ctx, "Adding leave request", "employee", employeeName, "date", date, "type", typ)
	if err := s.wait(ctx, s.mutateDelay); err != nil {
		return leave.Request{}, err
	}

	if strings.TrimSpace(employeeName) == "" {
		opsTotal.WithLabelValues("add", "invalid").Inc()
		return leave.Request{}, &ValidationError{Field: "employeeName", Message: "must not be empty"}
	}
	if _, err := habit.ParseDay(date); err != nil {
		opsTotal.WithLabelValues("add", "invalid").Inc()
		return leave.Request{}, &ValidationError{Field: "date", Message: err.Error()}
	}
	entry, err := leave.NewEntry(typ, comment)
	if err != nil {
		opsTotal.WithLabelValues("add", "invalid").Inc()
		field := "type"
		if typ == leave.TypeComment {
			field = "comment"
		}
		return leave.Request{}, &ValidationError{Field: field, Message: err.Error()}
	}

	req := leave.Request{
		ID:           s.newID(),
		Date:         date,
		EmployeeName: employeeName,
		Entry:        entry,
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.sortLocked()
	n := len(s.requests)
	s.mu.Unlock()

	requestCount.Set(float64(n))
	opsTotal.WithLabelValues("add", "ok").Inc()
	logger.InfoContext(ctx, "Added leave request", "id", req.ID, "count", n)
	return req, nil
}

// Delete removes the request with id and returns the id.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	return s.remove(ctx, id, nil)
}

// DeleteAs is Delete restricted to the employee named on the request. Names
// are compared exactly.
func (s *Service) DeleteAs(ctx context.Context, id, requester string) (string, error) {
	return s.remove(ctx, id, func(r leave.Request) error {
		if r.EmployeeName != requester {
			return ErrNotOwner
		}
		return nil
	})
}

func (s *Service) remove(ctx context.Context, id string, allow func(leave.Request) error) (string, error) {
	logger.InfoContext(ctx, "Deleting leave request", "id", id)
	if err := s.wait(ctx, s.mutateDelay); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.requests, func(r leave.Request) bool { return r.ID == id })
	if i < 0 {
		opsTotal.WithLabelValues("delete", "not_found").Inc()
		return "", &NotFoundError{ID: id}
	}
	if allow != nil {
		if err := allow(s.requests[i]); err != nil {
			opsTotal.WithLabelValues("delete", "forbidden").Inc()
			return "", err
		}
	}
	s.requests = slices.Delete(s.requests, i, i+1)

	requestCount.Set(float64(len(s.requests)))
	opsTotal.WithLabelValues("delete", "ok").Inc()
	logger.InfoContext(ctx, "Deleted leave request", "id", id, "remaining", len(s.requests))
	return id, nil
}

// Recent returns up to n requests, latest date first. n <= 0 means the
// default limit.
func (s *Service) Recent(ctx context.Context, n int) ([]leave.Request, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(all, func(a, b leave.Request) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Month returns the requests dated within the given month, date ascending.
func (s *Service) Month(ctx context.Context, year int, month time.Month) ([]leave.Request, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := all[:0]
	for _, r := range all {
		if strings.HasPrefix(r.Date, prefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

// wait simulates the round trip to the remote store. A cancelled context
// aborts it before anything is changed.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sortLocked orders requests by date; YYYY-MM-DD sorts lexically. Ties keep
// insertion order.
func (s *Service) sortLocked() {
	slices.SortStableFunc(s.requests, func(a, b leave.Request) int {
		return strings.Compare(a.Date, b.Date)
	})
}

// newTimeID returns a time-ordered UUIDv7.
func newTimeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
