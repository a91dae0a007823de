package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// AuditLog records a stock-mutating action (a reservation or a surplus
// credit) in the audit trail, with the action's domain fields attached.
func AuditLog(logs service.LoggingService, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	writeAudit(logs, auditEntry(c, actionType, message, fields))
}

// AuditLogError records a failed stock-mutating action with its cause.
func AuditLogError(logs service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	entry := auditEntry(c, actionType, message, fields)
	entry.Level = "error"
	entry.Error = err.Error()
	writeAudit(logs, entry)
}

func auditEntry(c *gin.Context, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}
}

// writeAudit hands the entry to the worker pool when one is running;
// otherwise it writes from a short-lived goroutine. Either way the
// request path never waits on the audit store.
func writeAudit(logs service.LoggingService, entry *model.LogEntry) {
	if logs == nil {
		return
	}
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = logs.CreateLog(ctx, entry)
	}()
}
