package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID between client and service.
const RequestIDHeader = "X-Request-ID"

// ContextKey avoids collisions with other context values.
type ContextKey string

// RequestIDKey is where the correlation ID lives in the gin context.
const RequestIDKey ContextKey = "request_id"

// RequestID assigns every request a correlation ID, reusing the client's
// X-Request-ID when present. The ID ties a reservation response to its
// log lines and audit entries, and is echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request's correlation ID, or "" outside the
// middleware chain.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(string(RequestIDKey)); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
