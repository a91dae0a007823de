package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func auditTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
	return c, w
}

func TestAuditLog(t *testing.T) {
	t.Run("records the action", func(t *testing.T) {
		svc := new(mocks.MockLoggingService)
		done := make(chan struct{})
		svc.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
			return e.ActionType == "reserve_stock" &&
				e.Level == "info" &&
				e.Method == http.MethodPost &&
				e.Path == "/api/reservations"
		})).Run(func(mock.Arguments) { close(done) }).Return(nil)

		c, _ := auditTestContext()
		AuditLog(svc, c, "reserve_stock", "stock reserved", map[string]interface{}{
			"item_code": "X-100",
			"quantity":  5,
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("audit entry was not written")
		}
		svc.AssertExpectations(t)
	})

	t.Run("nil logging service is a no-op", func(t *testing.T) {
		c, _ := auditTestContext()
		AuditLog(nil, c, "reserve_stock", "stock reserved", nil)
	})
}

func TestAuditLogError(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	done := make(chan struct{})
	svc.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.ActionType == "credit_stock" &&
			e.Level == "error" &&
			e.Error == "ledger unavailable"
	})).Run(func(mock.Arguments) { close(done) }).Return(nil)

	c, _ := auditTestContext()
	AuditLogError(svc, c, "credit_stock", "credit failed", errors.New("ledger unavailable"), nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("audit entry was not written")
	}
	assert.True(t, svc.AssertExpectations(t))
}
