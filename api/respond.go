package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwell-app/backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// Envelope is the uniform response wrapper. Success bodies set success true
// and carry payload fields; error bodies set it false with a client-safe
// message.
type Envelope map[string]any

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteSuccess writes a 200 envelope with the payload fields merged in.
func (r Responder) WriteSuccess(w http.ResponseWriter, payload Envelope) {
	r.WriteSuccessStatus(w, http.StatusOK, payload)
}

func (r Responder) WriteSuccessStatus(w http.ResponseWriter, status int, payload Envelope) {
	body := Envelope{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	r.WriteJSON(w, status, body)
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// Unexpected errors are logged in full and returned generic.
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, Envelope{
			"success": false,
			"message": "An unexpected error occurred",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("internal error")
	}

	response := Envelope{
		"success": false,
		"message": apiErr.Message(),
	}
	if apiErr.Details != "" {
		response["error"] = apiErr.Details
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}

	r.WriteJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
