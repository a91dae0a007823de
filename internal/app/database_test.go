//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/stretchr/testify/assert"
)

func TestInitializeDatabase(t *testing.T) {
	t.Run("returns nil when disabled", func(t *testing.T) {
		components := InitializeDatabase(config.DatabaseConfig{Enabled: false})

		assert.Nil(t, components)
	})

	t.Run("returns nil when connection fails", func(t *testing.T) {
		components := InitializeDatabase(config.DatabaseConfig{
			URI:          "mongodb://127.0.0.1:1",
			DatabaseName: "fulfillment_service",
			Enabled:      true,
			LogsTTL:      24 * time.Hour,
		})

		assert.Nil(t, components)
	})
}
