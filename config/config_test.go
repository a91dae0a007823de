package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, 3, cfg.Reservation.MaxRetries)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
		assert.Equal(t, "fulfillment_service", cfg.Database.DatabaseName)
		assert.False(t, cfg.Database.Enabled)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("REQUEST_TIMEOUT", "5s")
		_ = os.Setenv("RESERVATION_MAX_RETRIES", "7")
		_ = os.Setenv("MONGODB_URI", "mongodb://mongo:27017")
		_ = os.Setenv("MONGODB_DATABASE", "fulfillment_test")
		_ = os.Setenv("MONGODB_ENABLED", "true")
		_ = os.Setenv("MONGODB_LOGS_TTL", "72h")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, 7, cfg.Reservation.MaxRetries)
		assert.Equal(t, "mongodb://mongo:27017", cfg.Database.URI)
		assert.Equal(t, "fulfillment_test", cfg.Database.DatabaseName)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, 72*time.Hour, cfg.Database.LogsTTL)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		_ = os.Setenv("RESERVATION_MAX_RETRIES", "invalid")
		_ = os.Setenv("MONGODB_ENABLED", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 3, cfg.Reservation.MaxRetries)
		assert.False(t, cfg.Database.Enabled)
	})

	t.Run("loads circuit breaker settings", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("CIRCUIT_BREAKER_FAILURE_THRESHOLD", "10")
		_ = os.Setenv("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", "4")
		_ = os.Setenv("CIRCUIT_BREAKER_TIMEOUT", "1m")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 10, cfg.Database.CircuitBreakerFailureThreshold)
		assert.Equal(t, 4, cfg.Database.CircuitBreakerSuccessThreshold)
		assert.Equal(t, time.Minute, cfg.Database.CircuitBreakerTimeout)
	})
}

func TestParseCORSOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "empty keeps local defaults",
			input: "",
			expected: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		{
			name:  "appends configured origins after defaults",
			input: "https://fulfillment.example.com, https://admin.example.com",
			expected: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"https://fulfillment.example.com",
				"https://admin.example.com",
			},
		},
		{
			name:  "skips blank entries",
			input: " , https://fulfillment.example.com ,, ",
			expected: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"https://fulfillment.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCORSOrigins(tt.input))
		})
	}
}
