// Package app wires configuration, storage, services and the HTTP router
// into a runnable fulfillment service.
package app

import (
	"os"

	"github.com/guttosm/fulfillment-service/internal/logger"
)

// InitializeLogger configures the global logger from LOG_LEVEL and
// LOG_PRETTY. Runs before anything that logs.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.Init(level, os.Getenv("LOG_PRETTY") == "true")
}
