package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisSlidingWindowScript cuenta requests dentro de una ventana deslizante.
// Devuelve {allowed, used, reset_at_ms}.
const redisSlidingWindowScript = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", KEYS[1], 0, now - window)
local used = redis.call("ZCARD", KEYS[1])
if used < limit then
  redis.call("ZADD", KEYS[1], now, ARGV[4])
  redis.call("PEXPIRE", KEYS[1], window)
  return {1, used + 1, now + window}
end
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
return {0, used, tonumber(oldest[2]) + window}
`

// Decision resume el resultado de una consulta al rate limiter.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	FailOpen   bool
}

// RateLimiter decide si un identificador puede ejecutar otro request.
type RateLimiter interface {
	Allow(ctx context.Context, identifier string) Decision
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRateLimiter struct {
	client redisEvaler
	window time.Duration
	limit  int
	prefix string
	now    func() time.Time
}

// NewRedisRateLimiter crea un limiter de ventana deslizante respaldado en redis.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, limit int) RateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = 10 * time.Second
	}
	if limit <= 0 {
		limit = 5
	}
	return &redisRateLimiter{
		client: client,
		window: window,
		limit:  limit,
		prefix: "chat:rl:",
		now:    time.Now,
	}
}

// Allow evalúa el script de ventana deslizante; cualquier error de redis abre el paso.
func (l *redisRateLimiter) Allow(ctx context.Context, identifier string) Decision {
	if l == nil || l.client == nil {
		return Decision{Allowed: true, FailOpen: true}
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Decision{Allowed: true, FailOpen: true}
	}

	evalCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	now := l.now().UTC()
	vals, err := l.client.Eval(
		evalCtx,
		redisSlidingWindowScript,
		[]string{l.prefix + identifier},
		now.UnixMilli(),
		l.window.Milliseconds(),
		l.limit,
		uuid.NewString(),
	).Int64Slice()
	if err != nil || len(vals) != 3 {
		return Decision{Allowed: true, FailOpen: true}
	}

	allowed := vals[0] == 1
	used := int(vals[1])
	resetAt := time.UnixMilli(vals[2]).UTC()

	remaining := l.limit - used
	if remaining < 0 {
		remaining = 0
	}

	decision := Decision{
		Allowed:   allowed,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !allowed {
		retry := resetAt.Sub(now)
		if retry < 0 {
			retry = 0
		}
		decision.RetryAfter = retry
	}
	return decision
}
