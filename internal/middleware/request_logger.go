package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// RequestLogger logs every API request after it completes and, when a
// logging service is configured, persists the same entry to MongoDB so
// reservation traffic can be queried later. The item code route
// parameter is carried into the persisted entry, which makes it possible
// to pull the request history of a single stock pool.
func RequestLogger(logs service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      getLogLevel(c.Writer.Status()),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		logToConsole(c, entry)

		if logs == nil {
			return
		}
		if al := GetAsyncLogger(); al != nil {
			al.Log(entry)
			return
		}
		// No worker pool running; write from a short-lived goroutine so
		// the response is not held up by the audit write.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = logs.CreateLog(ctx, entry)
		}()
	}
}

func logToConsole(c *gin.Context, entry *model.LogEntry) {
	event := logger.Logger().With().
		Str("request_id", entry.RequestID).
		Str("method", entry.Method).
		Str("path", entry.Path).
		Int("status_code", entry.StatusCode).
		Int64("duration_ms", entry.Duration).
		Str("ip", entry.IP).
		Str("user_agent", entry.UserAgent)
	if itemCode := c.Param("item_code"); itemCode != "" {
		event = event.Str("item_code", itemCode)
	}
	log := event.Logger()

	switch entry.Level {
	case "error":
		log.Error().Msg(entry.Message)
	case "warn":
		log.Warn().Msg(entry.Message)
	default:
		log.Info().Msg(entry.Message)
	}
}

// getLogLevel maps a response status to the persisted log level.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
