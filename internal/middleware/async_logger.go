package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// AsyncLoggerConfig tunes the audit trail writer.
type AsyncLoggerConfig struct {
	// BufferSize bounds the queue of pending entries. A full queue drops
	// entries rather than stalling reservation requests.
	BufferSize int
	// NumWorkers is the number of goroutines writing entries to MongoDB.
	NumWorkers int
	// WriteTimeout bounds a single write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the settings used at startup.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

type counter struct{ v atomic.Int64 }

func (c *counter) inc()       { c.v.Add(1) }
func (c *counter) get() int64 { return c.v.Load() }

// AsyncLogger persists audit entries for reservation and credit actions
// through a bounded worker pool. Writes never block the request path: a
// full buffer drops the entry and counts the drop.
type AsyncLogger struct {
	logs         service.LoggingService
	queue        chan *model.LogEntry
	writeTimeout time.Duration

	mu      sync.RWMutex
	stopped bool
	workers sync.WaitGroup

	enqueued counter
	dropped  counter
	written  counter
	errors   counter
}

// NewAsyncLogger starts the worker pool. A nil logging service disables
// audit persistence and yields a nil logger, which Log handles.
func NewAsyncLogger(logs service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if logs == nil {
		return nil
	}

	al := &AsyncLogger{
		logs:         logs,
		queue:        make(chan *model.LogEntry, cfg.BufferSize),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.workers.Add(1)
		go al.drain()
	}
	return al
}

// drain writes queued entries until the queue is closed, then flushes
// whatever remains buffered.
func (al *AsyncLogger) drain() {
	defer al.workers.Done()

	for entry := range al.queue {
		al.persist(entry)
	}
}

func (al *AsyncLogger) persist(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.logs.CreateLog(ctx, entry); err != nil {
		al.errors.inc()
		log := logger.Logger()
		log.Warn().Err(err).Msg("Failed to persist audit entry")
		return
	}
	al.written.inc()
}

// Log enqueues an entry. It reports false when the entry was dropped,
// either because the buffer is full or the logger is stopping.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	al.mu.RLock()
	defer al.mu.RUnlock()

	if al.stopped {
		al.dropped.inc()
		return false
	}

	select {
	case al.queue <- entry:
		al.enqueued.inc()
		return true
	default:
		al.dropped.inc()
		return false
	}
}

// Stop closes the queue and waits for the workers to flush it.
func (al *AsyncLogger) Stop() {
	al.mu.Lock()
	if al.stopped {
		al.mu.Unlock()
		return
	}
	al.stopped = true
	close(al.queue)
	al.mu.Unlock()

	al.workers.Wait()
}

// Stats reports the lifetime counters.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return al.enqueued.get(), al.dropped.get(), al.written.get(), al.errors.get()
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the process-wide audit writer. Called once from
// application startup after the logging service exists.
func InitAsyncLogger(logs service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(logs, cfg)
}

// GetAsyncLogger returns the process-wide audit writer, or nil when audit
// persistence is disabled.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and removes the process-wide audit writer.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
