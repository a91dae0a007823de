package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdempotencyCache(t *testing.T) {
	t.Run("get returns stored response", func(t *testing.T) {
		cache := newIdempotencyCache(time.Minute)
		cache.Set("reserve-fp", &cachedResponse{StatusCode: 200, Body: []byte(`{"ok":true}`)})

		resp, ok := cache.Get("reserve-fp")

		assert.True(t, ok)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("get misses unknown key", func(t *testing.T) {
		cache := newIdempotencyCache(time.Minute)

		_, ok := cache.Get("reserve-fp")

		assert.False(t, ok)
	})

	t.Run("expired entries are not returned", func(t *testing.T) {
		cache := newIdempotencyCache(10 * time.Millisecond)
		cache.Set("reserve-fp", &cachedResponse{StatusCode: 200})

		time.Sleep(20 * time.Millisecond)

		_, ok := cache.Get("reserve-fp")
		assert.False(t, ok)
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		cache := newIdempotencyCache(10 * time.Millisecond)
		cache.Set("reserve-fp", &cachedResponse{StatusCode: 200})
		cache.Set("credit-fp", &cachedResponse{StatusCode: 201})

		time.Sleep(20 * time.Millisecond)
		cache.cleanup()

		assert.Empty(t, cache.items)
	})
}
