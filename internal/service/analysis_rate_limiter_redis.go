package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateDecision es el resultado de consultar el límite para un cliente.
type RateDecision struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

// AnalysisRateLimiter decide si un cliente puede lanzar otro análisis.
type AnalysisRateLimiter interface {
	Allow(ctx context.Context, key string) RateDecision
}

// RateLimitError envuelve ErrRateLimited con el tiempo de espera sugerido.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Ventana deslizante sobre un sorted set: score = instante en ms, un miembro por análisis.
// Devuelve {permitido, cantidad en ventana, ms hasta liberar un hueco}.
const slidingWindowScript = `
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now - window)
local count = redis.call("ZCARD", KEYS[1])
if count >= limit then
  local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
  local retry = window
  if oldest[2] then
    retry = tonumber(oldest[2]) + window - now
  end
  return {0, count, retry}
end
redis.call("ZADD", KEYS[1], now, ARGV[4])
redis.call("PEXPIRE", KEYS[1], window)
return {1, count + 1, 0}
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type slidingWindowLimiter struct {
	client  redisEvaler
	window  time.Duration
	limit   int
	prefix  string
	timeout time.Duration
	now     func() time.Time
}

// NewRedisAnalysisRateLimiter devuelve nil si no hay cliente; el servicio trata nil como sin límite.
func NewRedisAnalysisRateLimiter(client *redis.Client, window time.Duration, limit int) AnalysisRateLimiter {
	if client == nil {
		return nil
	}
	return newSlidingWindowLimiter(client, window, limit)
}

func newSlidingWindowLimiter(client redisEvaler, window time.Duration, limit int) *slidingWindowLimiter {
	if window <= 0 {
		window = time.Hour
	}
	if limit <= 0 {
		limit = 1
	}
	return &slidingWindowLimiter{
		client:  client,
		window:  window,
		limit:   limit,
		prefix:  "analyze:rl:",
		timeout: 500 * time.Millisecond,
		now:     time.Now,
	}
}

// Allow registra el intento si hay hueco. Ante errores de Redis deja pasar.
func (l *slidingWindowLimiter) Allow(ctx context.Context, key string) RateDecision {
	open := RateDecision{Allowed: true}
	if l == nil || l.client == nil {
		return open
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return open
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	nowMs := l.now().UnixMilli()
	res, err := l.client.Eval(ctx, slidingWindowScript, []string{l.prefix + key},
		nowMs, l.window.Milliseconds(), l.limit, uuid.NewString(),
	).Int64Slice()
	if err != nil || len(res) != 3 {
		return open
	}
	return RateDecision{
		Allowed:    res[0] == 1,
		Count:      int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}
}
