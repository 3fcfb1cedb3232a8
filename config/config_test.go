package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(cfg, "PORT", "8080"))
	assert.Equal(t, "", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(cfg, "MISSING", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(cfg, "TIMEOUT", 10))
	assert.Equal(t, 10, GetInt(cfg, "BAD", 10))
	assert.Equal(t, 10, GetInt(cfg, "MISSING", 10))
	assert.Equal(t, 10, GetInt(nil, "TIMEOUT", 10))
}

func TestGetStrings(t *testing.T) {
	cfg := map[string]string{
		"ORIGINS": "https://a.example.com, https://b.example.com ,,",
	}

	assert.Equal(t,
		[]string{"https://a.example.com", "https://b.example.com"},
		GetStrings(cfg, "ORIGINS"))
	assert.Nil(t, GetStrings(cfg, "MISSING"))
	assert.Nil(t, GetStrings(nil, "ORIGINS"))
}
