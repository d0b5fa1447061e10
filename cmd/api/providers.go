package main

import (
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/onlinebookstore/internal/application"
	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	appuser "github.com/xiebiao/onlinebookstore/internal/application/user"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/onlinebookstore/pkg/circuitbreaker"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
	"github.com/xiebiao/onlinebookstore/pkg/mq"
)

// 有些构造函数的参数需要从Config中提取,或者需要返回cleanup,
// Wire无法直接推导,这里手写Provider

func provideRepositories(cfg *config.Config) (*persistence.Repositories, func(), error) {
	repos, err := persistence.NewRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := repos.Close(); err != nil {
			slog.Error("close database failed", slog.Any("error", err))
		}
	}
	return repos, cleanup, nil
}

func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func providePasswordService(cfg *config.Config) user.PasswordService {
	return user.NewPasswordService(cfg.Auth.BcryptCost)
}

// provideBookCache redis.cache_ttl为0时不缓存
func provideBookCache(cfg *config.Config, client *goredis.Client) appbook.Cache {
	if cfg.Redis.CacheTTL <= 0 {
		return appbook.NoopCache{}
	}
	return redis.NewBookCache(client, cfg.Redis.CacheTTL)
}

// provideEventPublisher mq.enabled为false时不发布订单事件
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return apporder.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.Config{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			slog.Error("close message publisher failed", slog.Any("error", err))
		}
	}
	return messaging.NewOrderEventPublisher(publisher, breaker), cleanup, nil
}

func provideRegisterUseCase(
	cfg *config.Config,
	tx application.Transactor,
	userRepo user.Repository,
	cartRepo cart.Repository,
	passwords user.PasswordService,
) *appuser.RegisterUseCase {
	return appuser.NewRegisterUseCase(tx, userRepo, cartRepo, passwords, cfg.Auth.AdminEmails)
}
