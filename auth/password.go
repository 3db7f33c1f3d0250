package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const defaultCost = 12

// PasswordService wraps bcrypt hashing so the cost can be lowered in tests.
type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost is intended for tests; bcrypt.MinCost keeps
// hashing fast without changing the logic under test.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. bcrypt silently truncates input beyond 72
// bytes, so longer passwords are rejected outright.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", errors.New("auth: password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches reports whether plaintext matches the stored hash. A mismatch is not
// an error; only unexpected bcrypt failures are returned.
func (p *PasswordService) Matches(hash, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
