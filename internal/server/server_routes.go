package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brk3/habitcal/internal/habits"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/streak"
	"github.com/brk3/habitcal/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	_, err := s.tracker.List()
	resp := HealthResponse{Status: "ok", HabitsReady: !errors.Is(err, habits.ErrNotLoaded)}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize health response", "error", err)
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	hs, err := s.tracker.List()
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.Debug("Listed habits successfully", "count", len(hs))
	if err := writeJSON(w, http.StatusOK, HabitListResponse{Habits: hs}); err != nil {
		logger.Error("Failed to serialize habit list response", "error", err)
	}
}

func (s *Server) addHabit(w http.ResponseWriter, r *http.Request) {
	var req AddHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in add habit request", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
		return
	}
	h, err := s.tracker.Add(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, h); err != nil {
		logger.Error("Failed to serialize add habit response", "habit_id", h.ID, "error", err)
	}
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.tracker.Get(habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize get habit response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Info("Deleting habit", "habit_id", habitID)
	if err := s.tracker.Delete(r.Context(), habitID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	h, err := s.tracker.Toggle(r.Context(), habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h); err != nil {
		logger.Error("Failed to serialize toggle response", "habit_id", habitID, "error", err)
	}
}

func (s *Server) getHabitSummary(w http.ResponseWriter, r *http.Request) {
	habitID := chi.URLParam(r, "habit_id")
	logger.Debug("Getting habit summary", "habit_id", habitID)
	h, err := s.tracker.Get(habitID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summaryResponse := HabitSummaryResponse{
		HabitID:      habitID,
		HabitSummary: streak.Stats(h, s.tracker.Now()),
	}
	if err := writeJSON(w, http.StatusOK, summaryResponse); err != nil {
		logger.Error("Failed to serialize habit summary response", "habit_id", habitID, "error", err)
	}
}
