package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/habitcal/internal/calendar"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/pkg/leave"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listLeave(w http.ResponseWriter, r *http.Request) {
	var (
		requests []leave.Request
		err      error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		m, perr := time.Parse("2006-01", month)
		if perr != nil {
			writeError(w, r, &calendar.ValidationError{Field: "month", Message: "expected YYYY-MM"})
			return
		}
		requests, err = s.calendar.Month(r.Context(), m.Year(), m.Month())
	} else {
		requests, err = s.calendar.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, LeaveListResponse{Requests: requests}); err != nil {
		logger.Error("Failed to serialize leave list response", "error", err)
	}
}

func (s *Server) recentLeave(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Leave.RecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, &calendar.ValidationError{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}
	requests, err := s.calendar.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, LeaveListResponse{Requests: requests}); err != nil {
		logger.Error("Failed to serialize recent leave response", "error", err)
	}
}

func (s *Server) listLeaveTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]LeaveType, 0, len(leave.Types))
	for _, t := range leave.Types {
		out = append(out, LeaveType{Type: t, Label: t.Label()})
	}
	if err := writeJSON(w, http.StatusOK, out); err != nil {
		logger.Error("Failed to serialize leave types response", "error", err)
	}
}

func (s *Server) addLeave(w http.ResponseWriter, r *http.Request) {
	var req AddLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in add leave request", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
		return
	}
	name := employeeFromContext(r)
	if name == "" {
		name = strings.TrimSpace(req.EmployeeName)
	}
	created, err := s.calendar.Add(r.Context(), req.Date, name, req.Type, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, created); err != nil {
		logger.Error("Failed to serialize add leave response", "id", created.ID, "error", err)
	}
}

func (s *Server) deleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leave_id")
	id, err := s.calendar.DeleteAs(r.Context(), id, employeeFromContext(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, DeleteLeaveResponse{ID: id}); err != nil {
		logger.Error("Failed to serialize delete leave response", "id", id, "error", err)
	}
}

func (s *Server) getIdentity(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, IdentityResponse{EmployeeName: employeeFromContext(r)}); err != nil {
		logger.Error("Failed to serialize identity response", "error", err)
	}
}

func (s *Server) putIdentity(w http.ResponseWriter, r *http.Request) {
	var req IdentityResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
		return
	}
	name := strings.TrimSpace(req.EmployeeName)
	if name == "" {
		writeError(w, r, &calendar.ValidationError{Field: "employeeName", Message: "must not be empty"})
		return
	}
	if err := s.setIdentityCookie(w, r, name); err != nil {
		writeError(w, r, err)
		return
	}
	logger.Info("Employee identity set", "employee", name)
	if err := writeJSON(w, http.StatusOK, IdentityResponse{EmployeeName: name}); err != nil {
		logger.Error("Failed to serialize identity response", "error", err)
	}
}

func (s *Server) clearIdentity(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: identityCookieName, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}
