//go:build !integration

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	cases := map[string]map[string]string{
		"defaults":                 {},
		"debug level":              {"LOG_LEVEL": "debug"},
		"pretty console output":    {"LOG_LEVEL": "info", "LOG_PRETTY": "true"},
		"structured json output":   {"LOG_LEVEL": "warn", "LOG_PRETTY": "false"},
		"unknown level falls back": {"LOG_LEVEL": "bogus"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for key, value := range env {
				t.Setenv(key, value)
			}
			assert.NotPanics(t, InitializeLogger)
		})
	}
}