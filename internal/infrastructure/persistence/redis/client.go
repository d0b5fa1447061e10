package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

const defaultPingTimeout = 5 * time.Second

// NewClient 创建Redis客户端并检查连接
// Ping超时取dial_timeout,未配置时为5秒
func NewClient(cfg *config.Config) (*redis.Client, error) {
	rc := cfg.Redis
	client := redis.NewClient(options(rc))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout(rc))
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", rc.Addr(), err)
	}

	slog.Info("redis connected",
		slog.String("addr", rc.Addr()),
		slog.Int("db", rc.DB),
		slog.Int("pool_size", rc.PoolSize),
	)
	return client, nil
}

// options 连接池空闲连接数不超过池大小
func options(rc config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	}
	if opts.PoolSize > 0 && opts.MinIdleConns > opts.PoolSize {
		opts.MinIdleConns = opts.PoolSize
	}
	return opts
}

func pingTimeout(rc config.RedisConfig) time.Duration {
	if rc.DialTimeout > 0 {
		return rc.DialTimeout
	}
	return defaultPingTimeout
}
