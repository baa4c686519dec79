package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pagegate/pagegate/internal/api/middleware"
	"github.com/pagegate/pagegate/internal/service"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	Reason        string `json:"reason,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	JSON(w, r, ErrorResponse{
		Error:         msg,
		CorrelationID: middleware.CorrelationCtx(r.Context()),
	}, status)
}

// Denial writes a policy denial with its reason code. Denials are a distinct
// shape from fetch errors so callers can tell "denied" from "broken" apart.
func Denial(w http.ResponseWriter, r *http.Request, msg, reason string, status int) {
	JSON(w, r, ErrorResponse{
		Error:         msg,
		Reason:        reason,
		CorrelationID: middleware.CorrelationCtx(r.Context()),
	}, status)
}

// Err maps a service error onto a response, honoring an attached HTTP status.
func Err(w http.ResponseWriter, r *http.Request, err error, short string) {
	status := http.StatusBadRequest // generic default status
	var httpErr service.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode
	}
	Error(w, r, short+": "+err.Error(), status)
}
