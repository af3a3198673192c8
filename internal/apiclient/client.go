package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/habitcal/internal/server"
	"github.com/brk3/habitcal/pkg/habit"
	"github.com/brk3/habitcal/pkg/leave"
	"github.com/brk3/habitcal/pkg/versioninfo"
)

const employeeHeader = "X-Employee-Name"

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Employee identifies the caller to the leave calendar.
	Employee string
}

func New(base string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: time.Minute},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, want int) error {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Employee != "" {
		req.Header.Set(employeeHeader, c.Employee)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != want {
		var er server.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&er)
		return &APIError{Op: op, Status: res.StatusCode, Message: er.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) ServerVersion(ctx context.Context) (versioninfo.VersionInfo, error) {
	var v versioninfo.VersionInfo
	err := c.do(ctx, "server version", http.MethodGet, "/version", nil, &v, http.StatusOK)
	return v, err
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var response server.HabitListResponse
	if err := c.do(ctx, "list habits", http.MethodGet, "/habits/", nil, &response, http.StatusOK); err != nil {
		return nil, err
	}
	return response.Habits, nil
}

// FindHabit resolves ref as a habit id, then as a case-insensitive name.
func (c *Client) FindHabit(ctx context.Context, ref string) (habit.Habit, error) {
	hs, err := c.ListHabits(ctx)
	if err != nil {
		return habit.Habit{}, err
	}
	for _, h := range hs {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range hs {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return habit.Habit{}, &APIError{Op: "find habit", Status: http.StatusNotFound, Message: fmt.Sprintf("no habit named %q", ref)}
}

func (c *Client) AddHabit(ctx context.Context, name, description string) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, "add habit", http.MethodPost, "/habits/",
		server.AddHabitRequest{Name: name, Description: description}, &out, http.StatusCreated)
	return out, err
}

func (c *Client) ToggleHabit(ctx context.Context, id string) (habit.Habit, error) {
	var out habit.Habit
	err := c.do(ctx, "toggle habit", http.MethodPost, "/habits/"+url.PathEscape(id)+"/toggle", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, "delete habit", http.MethodDelete, "/habits/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (c *Client) GetHabitSummary(ctx context.Context, id string) (*habit.HabitSummary, error) {
	var out server.HabitSummaryResponse
	if err := c.do(ctx, "summary "+id, http.MethodGet, "/habits/"+url.PathEscape(id)+"/summary", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.HabitSummary, nil
}

// ListLeave returns every request, or those in month (YYYY-MM) when set.
func (c *Client) ListLeave(ctx context.Context, month string) ([]leave.Request, error) {
	path := "/leave/"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var out server.LeaveListResponse
	if err := c.do(ctx, "list leave", http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

func (c *Client) RecentLeave(ctx context.Context, limit int) ([]leave.Request, error) {
	path := "/leave/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out server.LeaveListResponse
	if err := c.do(ctx, "recent leave", http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

func (c *Client) AddLeave(ctx context.Context, date string, typ leave.Type, comment string) (leave.Request, error) {
	var out leave.Request
	err := c.do(ctx, "add leave", http.MethodPost, "/leave/", server.AddLeaveRequest{
		Date:         date,
		Type:         typ,
		Comment:      comment,
		EmployeeName: c.Employee,
	}, &out, http.StatusCreated)
	return out, err
}

func (c *Client) DeleteLeave(ctx context.Context, id string) (string, error) {
	var out server.DeleteLeaveResponse
	if err := c.do(ctx, "delete leave", http.MethodDelete, "/leave/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) Quote(ctx context.Context) (string, error) {
	var out server.TextResponse
	err := c.do(ctx, "quote", http.MethodGet, "/inspire/quote", nil, &out, http.StatusOK)
	return out.Text, err
}

func (c *Client) Reflection(ctx context.Context) (string, error) {
	var out server.TextResponse
	err := c.do(ctx, "reflection", http.MethodGet, "/inspire/reflection", nil, &out, http.StatusOK)
	return out.Text, err
}

func (c *Client) Ideas(ctx context.Context) ([]habit.SuggestedHabit, error) {
	var out server.IdeasResponse
	if err := c.do(ctx, "ideas", http.MethodGet, "/inspire/ideas", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Ideas, nil
}
