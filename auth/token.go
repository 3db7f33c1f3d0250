package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkwell-app/backend/errs"
)

const issuer = "inkwell"

// TokenService issues and verifies the signed bearer tokens that carry a user
// identity claim. Tokens are stateless HS256 JWTs; the user id travels in the
// "sub" claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed, time-bounded token for the given user.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	return s.IssueWithDuration(userID, s.ttl)
}

// IssueWithDuration issues a token with a custom lifetime. Negative durations
// produce already-expired tokens, which the tests rely on.
func (s *TokenService) IssueWithDuration(userID uuid.UUID, d time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("signing token", err)
	}
	return signed, nil
}

// Verify parses and checks a token string and returns the embedded user id.
// Verification fails closed: expiry, signature mismatch, and malformed input
// each map to their own 401 error; anything unexpected surfaces as a 500.
func (s *TokenService) Verify(tokenStr string) (uuid.UUID, error) {
	if tokenStr == "" {
		return uuid.Nil, errs.NewMissingTokenError()
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, errs.NewExpiredTokenError()
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, errs.NewInvalidSignatureError()
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, errs.NewMalformedTokenError()
		case errors.Is(err, jwt.ErrTokenInvalidClaims):
			return uuid.Nil, errs.NewInvalidTokenError()
		default:
			return uuid.Nil, errs.NewInternalErrorWithCause("verifying token", err)
		}
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return uuid.Nil, errs.NewInvalidTokenError()
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errs.NewInvalidTokenError()
	}
	return userID, nil
}
