// Package middleware provides the HTTP middleware chain for the
// fulfillment service API.
package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader lets a client retry a reservation or credit
	// without executing it twice.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a completed response stays replayable.
	IdempotencyKeyTTL = 5 * time.Minute
)

// cachedResponse is a completed mutation response held for replay.
type cachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds the replay cache settings.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns the settings used for API routes.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency replays the cached response for a repeated mutation carrying
// the same Idempotency-Key. A retried reserve call therefore reports the
// original fulfillment instead of debiting the pool again. The fingerprint
// covers method, path and body, so reusing a key for a different request
// executes normally rather than replaying the wrong response.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !mutating(c.Request.Method) {
			c.Next()
			return
		}
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		fp := fingerprint(key, c.Request)

		if prior, ok := cfg.Cache.Get(fp); ok {
			replay(c, prior)
			return
		}

		rec := newResponseRecorder(c.Writer)
		c.Writer = rec

		c.Next()

		// Only completed mutations are replayable. An error response is
		// not cached so the client's retry gets a real attempt.
		if rec.statusCode >= 200 && rec.statusCode < 300 {
			cfg.Cache.Set(fp, &cachedResponse{
				StatusCode: rec.statusCode,
				Headers:    rec.headers,
				Body:       rec.body.Bytes(),
			})
		}
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func replay(c *gin.Context, prior *cachedResponse) {
	for k, v := range prior.Headers {
		c.Header(k, v)
	}
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(prior.StatusCode, "application/json", prior.Body)
	c.Abort()
}

// fingerprint hashes the idempotency key together with the request shape.
// The body is restored so binding still sees it.
func fingerprint(key string, req *http.Request) string {
	h := sha256.New()
	h.Write([]byte(key))
	h.Write([]byte(req.Method))
	h.Write([]byte(req.URL.Path))

	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// responseRecorder tees the response so it can be cached after the
// handler chain finishes.
type responseRecorder struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	headers    map[string]string
}

func newResponseRecorder(w gin.ResponseWriter) *responseRecorder {
	return &responseRecorder{
		ResponseWriter: w,
		body:           &bytes.Buffer{},
		statusCode:     http.StatusOK,
		headers:        make(map[string]string),
	}
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseRecorder) Header() http.Header {
	headers := w.ResponseWriter.Header()
	for k, v := range headers {
		if len(v) > 0 {
			w.headers[k] = v[0]
		}
	}
	return headers
}
