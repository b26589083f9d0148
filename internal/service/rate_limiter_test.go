package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     []interface{}
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func testRateLimiter(mock *mockRedisEvaler) *redisRateLimiter {
	return &redisRateLimiter{
		client: mock,
		window: 10 * time.Second,
		limit:  5,
		prefix: "chat:rl:",
		now:    fixedNow,
	}
}

func TestRedisRateLimiterAllow(t *testing.T) {
	t.Run("nil limiter fail-open", func(t *testing.T) {
		var l *redisRateLimiter
		d := l.Allow(context.Background(), "1.2.3.4:/api/chat")
		if !d.Allowed || !d.FailOpen {
			t.Fatalf("expected fail-open for nil limiter, got %+v", d)
		}
	})

	t.Run("permite dentro del límite", func(t *testing.T) {
		now := fixedNow()
		reset := now.Add(10 * time.Second)
		mock := &mockRedisEvaler{result: []interface{}{int64(1), int64(3), now.UnixMilli() + 10000}}
		l := testRateLimiter(mock)

		d := l.Allow(context.Background(), "1.2.3.4:/api/chat")
		if !d.Allowed || d.FailOpen {
			t.Fatalf("expected allow, got %+v", d)
		}
		if d.Limit != 5 || d.Remaining != 2 {
			t.Fatalf("unexpected limit/remaining: %+v", d)
		}
		if !d.ResetAt.Equal(reset) {
			t.Fatalf("unexpected reset: %v", d.ResetAt)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "chat:rl:1.2.3.4:/api/chat" {
			t.Fatalf("unexpected key: %v", mock.lastKeys)
		}
		if mock.lastScript != redisSlidingWindowScript {
			t.Fatalf("expected sliding window script")
		}
		if len(mock.lastArgs) != 4 {
			t.Fatalf("unexpected args: %v", mock.lastArgs)
		}
		if mock.lastArgs[0] != now.UnixMilli() || mock.lastArgs[1] != int64(10000) || mock.lastArgs[2] != 5 {
			t.Fatalf("unexpected script args: %v", mock.lastArgs)
		}
	})

	t.Run("rechaza al superar el límite con retry-after", func(t *testing.T) {
		now := fixedNow()
		// La entrada más vieja de la ventana expira en 4 segundos.
		mock := &mockRedisEvaler{result: []interface{}{int64(0), int64(5), now.UnixMilli() + 4000}}
		l := testRateLimiter(mock)

		d := l.Allow(context.Background(), "1.2.3.4:/api/chat")
		if d.Allowed || d.FailOpen {
			t.Fatalf("expected deny, got %+v", d)
		}
		if d.Remaining != 0 {
			t.Fatalf("expected remaining 0, got %d", d.Remaining)
		}
		if d.RetryAfter != 4*time.Second {
			t.Fatalf("expected retry-after 4s, got %v", d.RetryAfter)
		}
	})

	t.Run("error de redis fail-open", func(t *testing.T) {
		mock := &mockRedisEvaler{err: errors.New("redis down")}
		l := testRateLimiter(mock)

		d := l.Allow(context.Background(), "1.2.3.4:/api/chat")
		if !d.Allowed || !d.FailOpen {
			t.Fatalf("expected fail-open on redis error, got %+v", d)
		}
	})

	t.Run("identificador vacío fail-open", func(t *testing.T) {
		l := testRateLimiter(&mockRedisEvaler{result: []interface{}{int64(1), int64(1), int64(0)}})
		d := l.Allow(context.Background(), "   ")
		if !d.Allowed || !d.FailOpen {
			t.Fatalf("expected fail-open for empty identifier, got %+v", d)
		}
	})
}
