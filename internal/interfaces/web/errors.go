package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
)

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, departure.ErrInvalidInput),
		errors.Is(err, trip.ErrInvalidBooking),
		errors.Is(err, trip.ErrInvalidFlight):
		return http.StatusBadRequest
	case errors.Is(err, internaltypes.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, internaltypes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, trip.ErrInvalidTransition), errors.Is(err, internaltypes.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeErr hides internal errors from the client and logs them instead.
func writeErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		msg = "internal error"
	}
	writeJSON(w, code, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
