package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
)

// defaultNumShards spreads client state over enough shards that bursts of
// reservation traffic from many clients do not serialize on one lock.
const defaultNumShards = 16

// bucket is one client's remaining allowance in the current window.
type bucket struct {
	remaining int
	windowAt  time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	clients map[string]*bucket
}

// ShardedRateLimiter applies a fixed-window request quota per client IP,
// sharded by FNV hash of the identifier.
type ShardedRateLimiter struct {
	shards    []*limiterShard
	numShards int
	rate      int
	window    time.Duration
	stopCh    chan struct{}
}

// RateLimiter is the name the router configuration uses.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with an explicit shard count.
// Non-positive counts fall back to the default.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	rl := &ShardedRateLimiter{
		shards:    make([]*limiterShard, numShards),
		numShards: numShards,
		rate:      rate,
		window:    window,
		stopCh:    make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{clients: make(map[string]*bucket)}
	}

	go rl.expireLoop()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(identifier string) *limiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// checkRateLimit consumes one unit of the identifier's allowance. A
// request past the window start gets a fresh allowance.
func (rl *ShardedRateLimiter) checkRateLimit(identifier string) (allowed bool, remaining int) {
	shard := rl.shardFor(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := time.Now()
	b, ok := shard.clients[identifier]
	if !ok || now.Sub(b.windowAt) > rl.window {
		shard.clients[identifier] = &bucket{remaining: rl.rate - 1, windowAt: now}
		return true, rl.rate - 1
	}

	if b.remaining <= 0 {
		return false, 0
	}
	b.remaining--
	return true, b.remaining
}

// RateLimit is the middleware entry point; it rejects over-quota clients
// with 429 and a Retry-After hint.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.checkRateLimit(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", rl.window.String())
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			resp := dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}

		c.Next()
	}
}

func (rl *ShardedRateLimiter) expireLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.expire()
		case <-rl.stopCh:
			return
		}
	}
}

// expire drops clients idle for two full windows.
func (rl *ShardedRateLimiter) expire() {
	now := time.Now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, b := range shard.clients {
			if now.Sub(b.windowAt) > threshold {
				delete(shard.clients, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the background expiry.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats reports tracked clients, total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.clients)
		total += perShard[i]
		shard.mu.Unlock()
	}
	return total, perShard
}
