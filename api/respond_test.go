package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/backend/errs"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccessEnvelope(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteSuccess(rec, Envelope{"message": "ok", "total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, float64(3), body["total"])
}

func TestWriteErrorApiErr(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errs.NewValidationError("username", "username must be 3-30 characters"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, "username must be 3-30 characters", body["error"])
	assert.Equal(t, "username", body["field"])
}

func TestWriteErrorUnexpectedIsGeneric(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	// Internal detail never reaches the client.
	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestWriteErrorNotFoundBeforeForbidden(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errs.NewNotFound("blog"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	responder.WriteError(rec, errs.NewForbiddenError("not the resource owner"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPaginationDefaultsAndCap(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/blogs", nil)
	page, limit := pagination(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	r = httptest.NewRequest(http.MethodGet, "/blogs?page=3&limit=25", nil)
	page, limit = pagination(r)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	r = httptest.NewRequest(http.MethodGet, "/blogs?page=-1&limit=10000", nil)
	page, limit = pagination(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, maxPageLimit, limit)
}
