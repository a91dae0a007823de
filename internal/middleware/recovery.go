package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/logger"
)

// Recovery converts a handler panic into a 500 response. The panic value
// is logged with the request ID; the client only sees a generic error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log := logger.Logger()
			log.Error().
				Str("request_id", GetRequestID(c)).
				Interface("panic", r).
				Msg("PANIC recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   dto.ErrCodeInternal,
				Message: "An unexpected error occurred",
			})
		}()
		c.Next()
	}
}
