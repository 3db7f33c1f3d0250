package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/backend/errs"
)

const testSecret = "test-secret-at-least-16-chars"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return ts
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	ts := newTestTokenService(t)
	userID := uuid.New()

	token, err := ts.Issue(userID)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	got, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyEmptyToken(t *testing.T) {
	ts := newTestTokenService(t)

	_, err := ts.Verify("")
	require.Error(t, err)
	assert.True(t, errs.IsMissingTokenError(err))
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.IssueWithDuration(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsExpiredTokenError(err))
}

func TestVerifyTamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue(uuid.New())
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = ts.Verify(tampered)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("another-secret-16-chars-long", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestVerifyMalformedToken(t *testing.T) {
	ts := newTestTokenService(t)

	_, err := ts.Verify("not.a.jwt")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	ts := newTestTokenService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	ts := newTestTokenService(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := foreign.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	ts := newTestTokenService(t)

	bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := bad.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
}
