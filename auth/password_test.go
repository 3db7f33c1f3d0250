package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndMatch(t *testing.T) {
	p := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := p.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	ok, err := p.Matches(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMismatchIsNotAnError(t *testing.T) {
	p := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := p.Hash("right password")
	require.NoError(t, err)

	ok, err := p.Matches(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	p := NewPasswordServiceWithCost(bcrypt.MinCost)

	_, err := p.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}

func TestHashesAreSalted(t *testing.T) {
	p := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := p.Hash("same password")
	require.NoError(t, err)
	second, err := p.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestMatchesGarbageHash(t *testing.T) {
	p := NewPasswordServiceWithCost(bcrypt.MinCost)

	ok, err := p.Matches("not-a-bcrypt-hash", "anything")
	require.Error(t, err)
	assert.False(t, ok)
}
