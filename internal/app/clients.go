package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/services"
)

type Clients struct {
	Redis *redis.Client
}

// wireClients connects optional external clients. An unset REDIS_ADDR is not
// an error; an unreachable one is.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return Clients{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	log.Info("Redis connected", "addr", addr)
	return Clients{Redis: rdb}, nil
}

func (c *Clients) loginLimiter(log *logger.Logger, cfg Config) services.LoginLimiter {
	limiterCfg := services.LimiterConfig{MaxAttempts: cfg.LoginMaxAttempts, Window: cfg.LoginWindow}
	if c == nil || c.Redis == nil {
		log.Info("Login limiter using process memory", "max_attempts", limiterCfg.MaxAttempts, "window", limiterCfg.Window)
		return services.NewMemoryLoginLimiter(limiterCfg, nil)
	}
	log.Info("Login limiter using redis", "max_attempts", limiterCfg.MaxAttempts, "window", limiterCfg.Window)
	return services.NewRedisLoginLimiter(c.Redis, limiterCfg)
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
