package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
)

// TimeoutConfig holds the per-request deadline settings.
type TimeoutConfig struct {
	// Timeout is the wall-clock budget for one request, including any
	// waiting on a contended item code lock.
	Timeout time.Duration
	// ErrorMessage is the fallback text when no translator is installed.
	ErrorMessage string
}

// DefaultTimeoutConfig returns the deadline used for API routes.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "Request timeout",
	}
}

// Timeout enforces a deadline on the whole handler chain. A reservation
// stuck behind a slow store gets a 504 instead of holding the connection,
// and its context is cancelled so downstream calls stop too.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// The handler chain runs in its own goroutine; the mutex keeps
		// the timeout branch from writing while the handler still is.
		var (
			mu       sync.Mutex
			finished bool
			done     = make(chan struct{})
		)
		go func() {
			defer func() {
				recover() //nolint:errcheck
				close(done)
			}()
			c.Next()
			mu.Lock()
			finished = true
			mu.Unlock()
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
		}

		mu.Lock()
		defer mu.Unlock()
		if finished || c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, timeoutResponse(c, cfg))
	}
}

func timeoutResponse(c *gin.Context, cfg TimeoutConfig) dto.ErrorResponse {
	message := cfg.ErrorMessage
	if translator := i18n.GetTranslator(); translator != nil {
		message = translator.Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
	}
	return dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c))
}

// TimeoutWithDuration builds the middleware with a specific deadline.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = timeout
	return Timeout(cfg)
}
