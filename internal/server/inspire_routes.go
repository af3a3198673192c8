package server

import (
	"errors"
	"net/http"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/textgen"
)

func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	text, err := s.inspirer.MotivationalQuote(r.Context())
	s.writeText(w, r, textgen.OpQuote, text, err)
}

func (s *Server) getReflection(w http.ResponseWriter, r *http.Request) {
	text, err := s.inspirer.ReflectionPrompt(r.Context())
	s.writeText(w, r, textgen.OpReflection, text, err)
}

func (s *Server) getIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := s.inspirer.HabitSuggestions(r.Context())
	if err != nil {
		s.writeInspireError(w, r, textgen.OpIdeas, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, IdeasResponse{Ideas: ideas}); err != nil {
		logger.Error("Failed to serialize ideas response", "error", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, r *http.Request, op textgen.Op, text string, err error) {
	if err != nil {
		s.writeInspireError(w, r, op, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, TextResponse{Text: text}); err != nil {
		logger.Error("Failed to serialize text response", "op", op, "error", err)
	}
}

// writeInspireError replaces the upstream failure with the user-facing
// fallback message for op.
func (s *Server) writeInspireError(w http.ResponseWriter, r *http.Request, op textgen.Op, err error) {
	var terr *textgen.TransportError
	if !errors.As(err, &terr) {
		writeError(w, r, err)
		return
	}
	logger.Warn("Text generation unavailable", "op", op, "error", err)
	if err := writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: s.inspirer.Fallback(op)}); err != nil {
		logger.Error("Failed to serialize fallback response", "op", op, "error", err)
	}
}
