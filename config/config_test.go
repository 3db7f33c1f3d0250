package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "TIMEOUT", 60))
	assert.Equal(t, 60, GetInt(c, "BAD", 60))
	assert.Equal(t, 60, GetInt(c, "MISSING", 60))
}

func TestGetBool(t *testing.T) {
	c := map[string]string{"ON": "true", "OFF": "0", "BAD": "yes please"}

	assert.True(t, GetBool(c, "ON", false))
	assert.False(t, GetBool(c, "OFF", true))
	assert.True(t, GetBool(c, "BAD", true))
}

func TestGetDuration(t *testing.T) {
	c := map[string]string{"TTL": "36h", "BAD": "soon"}

	assert.Equal(t, 36*time.Hour, GetDuration(c, "TTL", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(c, "BAD", time.Hour))
	assert.Equal(t, time.Hour, GetDuration(c, "MISSING", time.Hour))
}
