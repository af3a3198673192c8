package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/brk3/habitcal/internal/calendar"
	"github.com/brk3/habitcal/internal/habits"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/textgen"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		habitInvalid  *habits.ValidationError
		habitNotFound *habits.NotFoundError
		leaveInvalid  *calendar.ValidationError
		leaveNotFound *calendar.NotFoundError
		transport     *textgen.TransportError
	)
	switch {
	case errors.As(err, &habitInvalid), errors.As(err, &leaveInvalid):
		return http.StatusBadRequest
	case errors.Is(err, calendar.ErrNotOwner):
		return http.StatusForbidden
	case errors.As(err, &habitNotFound), errors.As(err, &leaveNotFound):
		return http.StatusNotFound
	case errors.Is(err, habits.ErrNotLoaded):
		return http.StatusConflict
	case errors.As(err, &transport):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	} else {
		logger.DebugContext(r.Context(), "Request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	}
	if werr := writeJSON(w, code, ErrorResponse{Error: msg}); werr != nil {
		logger.Error("Failed to serialize error response", "error", werr)
	}
}
