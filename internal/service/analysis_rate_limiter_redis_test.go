package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastKeys []string
	lastArgs []interface{}
	ctxErr   error
	hasDL    bool
	result   []interface{}
	err      error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastKeys = keys
	m.lastArgs = args
	m.ctxErr = ctx.Err()
	_, m.hasDL = ctx.Deadline()
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func fixedLimiter(mock *mockRedisEvaler, window time.Duration, limit int) *slidingWindowLimiter {
	l := newSlidingWindowLimiter(mock, window, limit)
	l.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return l
}

func TestSlidingWindowLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *slidingWindowLimiter
		if !l.Allow(context.Background(), "203.0.113.9").Allowed {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("nil client constructor", func(t *testing.T) {
		if NewRedisAnalysisRateLimiter(nil, time.Hour, 5) != nil {
			t.Fatalf("expected nil limiter without redis client")
		}
	})

	t.Run("allowed passes window arguments", func(t *testing.T) {
		mock := &mockRedisEvaler{result: []interface{}{int64(1), int64(2), int64(0)}}
		l := fixedLimiter(mock, 2*time.Minute, 3)

		d := l.Allow(context.Background(), " 203.0.113.9 ")
		if !d.Allowed || d.Count != 2 {
			t.Fatalf("unexpected decision %+v", d)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "analyze:rl:203.0.113.9" {
			t.Fatalf("unexpected key, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 4 || mock.lastArgs[0] != int64(1_700_000_000_000) ||
			mock.lastArgs[1] != int64(120_000) || mock.lastArgs[2] != 3 {
			t.Fatalf("unexpected args %+v", mock.lastArgs)
		}
		if member, _ := mock.lastArgs[3].(string); member == "" {
			t.Fatalf("expected unique member id")
		}
		if !mock.hasDL {
			t.Fatalf("expected eval to run under a deadline")
		}
	})

	t.Run("denied reports retry after", func(t *testing.T) {
		mock := &mockRedisEvaler{result: []interface{}{int64(0), int64(3), int64(42_000)}}
		d := fixedLimiter(mock, time.Minute, 3).Allow(context.Background(), "203.0.113.9")
		if d.Allowed || d.RetryAfter != 42*time.Second {
			t.Fatalf("unexpected decision %+v", d)
		}
	})

	t.Run("request context is propagated", func(t *testing.T) {
		mock := &mockRedisEvaler{err: context.Canceled}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := fixedLimiter(mock, time.Minute, 3).Allow(ctx, "203.0.113.9")
		if !errors.Is(mock.ctxErr, context.Canceled) {
			t.Fatalf("expected canceled request context to reach redis, got %v", mock.ctxErr)
		}
		if !d.Allowed {
			t.Fatalf("expected fail-open on redis errors")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		mock := &mockRedisEvaler{err: errors.New("redis down")}
		if !fixedLimiter(mock, time.Minute, 3).Allow(context.Background(), "203.0.113.9").Allowed {
			t.Fatalf("expected fail-open on redis errors")
		}
	})

	t.Run("malformed reply fail-open", func(t *testing.T) {
		mock := &mockRedisEvaler{result: []interface{}{int64(0)}}
		if !fixedLimiter(mock, time.Minute, 3).Allow(context.Background(), "203.0.113.9").Allowed {
			t.Fatalf("expected fail-open on malformed reply")
		}
	})
}

func TestRateLimitErrorUnwraps(t *testing.T) {
	var err error = &RateLimitError{RetryAfter: 30 * time.Second}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected RateLimitError to match ErrRateLimited")
	}
}
