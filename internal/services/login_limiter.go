package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per key. The count expires Window after
// the most recent failure.
type LoginLimiter interface {
	Locked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

type LimiterConfig struct {
	MaxAttempts int64
	Window      time.Duration
}

func (c LimiterConfig) normalized() LimiterConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.Window <= 0 {
		c.Window = 15 * time.Minute
	}
	return c
}

// LimiterKey derives a stable key from the username and client address.
// Raw usernames never reach the backing store.
func LimiterKey(username, clientIP string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(username)) + "|" + strings.TrimSpace(clientIP)))
	return "login_attempts:" + hex.EncodeToString(sum[:16])
}

type redisLoginLimiter struct {
	rdb *redis.Client
	cfg LimiterConfig
}

func NewRedisLoginLimiter(rdb *redis.Client, cfg LimiterConfig) LoginLimiter {
	return &redisLoginLimiter{rdb: rdb, cfg: cfg.normalized()}
}

func (l *redisLoginLimiter) Locked(ctx context.Context, key string) (bool, error) {
	n, err := l.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= l.cfg.MaxAttempts, nil
}

func (l *redisLoginLimiter) RecordFailure(ctx context.Context, key string) (int64, error) {
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (l *redisLoginLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, key).Err()
}

type memoryAttempt struct {
	count   int64
	expires time.Time
}

type memoryLoginLimiter struct {
	mu       sync.Mutex
	cfg      LimiterConfig
	now      func() time.Time
	attempts map[string]memoryAttempt
}

// NewMemoryLoginLimiter is the single-process fallback used when no Redis
// address is configured.
func NewMemoryLoginLimiter(cfg LimiterConfig, now func() time.Time) LoginLimiter {
	if now == nil {
		now = time.Now
	}
	return &memoryLoginLimiter{cfg: cfg.normalized(), now: now, attempts: map[string]memoryAttempt{}}
}

func (l *memoryLoginLimiter) current(key string) memoryAttempt {
	a, ok := l.attempts[key]
	if ok && !l.now().Before(a.expires) {
		delete(l.attempts, key)
		return memoryAttempt{}
	}
	return a
}

func (l *memoryLoginLimiter) Locked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current(key).count >= l.cfg.MaxAttempts, nil
}

func (l *memoryLoginLimiter) RecordFailure(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.current(key)
	a.expires = l.now().Add(l.cfg.Window)
	a.count++
	l.attempts[key] = a
	return a.count, nil
}

func (l *memoryLoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}
