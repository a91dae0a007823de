package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/logger"
)

// ErrorHandler logs errors the handlers attached to the context. Handlers
// normally write their own error responses; if one attached an error
// without writing, the client still gets a 500 instead of an empty reply.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)
		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
		resp := dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID)
		c.JSON(http.StatusInternalServerError, resp)
	}
}
