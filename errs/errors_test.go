package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDatabaseErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name  string
		cause error
		want  int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "users_username_key"`), http.StatusConflict},
		{"foreign key", errors.New("violates foreign key constraint"), http.StatusBadRequest},
		{"connection refused", errors.New("connection refused"), http.StatusServiceUnavailable},
		{"unknown", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("query", "user", tc.cause)
			assert.Equal(t, tc.want, err.StatusCode)
			assert.ErrorIs(t, err.Cause, tc.cause)
		})
	}
}

func TestApiErrUnwrapsToSentinel(t *testing.T) {
	err := NewSelfFollowError()
	assert.True(t, errors.Is(err, ErrSelfFollow))
	assert.True(t, IsSelfFollow(err))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	conflict := NewAlreadyFollowingError()
	assert.True(t, IsAlreadyFollowing(conflict))
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("email", "a valid email is required")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "email", err.Field)
	assert.True(t, IsBadRequest(err))
}

func TestGetFullErrorIncludesCauseChain(t *testing.T) {
	inner := errors.New("disk full")
	err := NewInternalErrorWithCause("writing snapshot", inner)

	full := err.GetFullError()
	require.Contains(t, full, "writing snapshot")
	require.Contains(t, full, "disk full")
}

func TestTokenErrorCheckers(t *testing.T) {
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))
	assert.True(t, IsExpiredTokenError(NewExpiredTokenError()))
	assert.True(t, IsInvalidTokenError(NewInvalidTokenError()))
	assert.True(t, IsInvalidTokenError(NewMalformedTokenError()))
	assert.True(t, IsInvalidTokenError(NewInvalidSignatureError()))
	assert.False(t, IsInvalidTokenError(NewExpiredTokenError()))
}
