package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"things_future/scenario"
	"things_future/session"
	"things_future/words"
)

// writeJSON writes a JSON response with the given status code. The status is
// already sent when encoding fails, so the failure is only logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Errorw("Failed to encode response", "error", errors.Wrap(err, "encode json"))
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnknownCategory), errors.Is(err, errBadInput):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotLoaded), errors.Is(err, words.ErrLoad), errors.Is(err, scenario.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

var errBadInput = errors.New("bad input")

func badInput(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), errBadInput)
}
