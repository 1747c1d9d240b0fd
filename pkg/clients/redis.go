package clients

import (
	"context"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
)

// RedisClient оборачивает клиент Redis, обслуживающий корзины, сессии
// и кэш каталога.
type RedisClient struct {
	Client *r.Client
}

func NewRedisClient(redisCfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(&r.Options{
			Addr:         redisCfg.Addr,
			Username:     redisCfg.User,
			Password:     redisCfg.Password,
			DB:           redisCfg.DB,
			MaxRetries:   redisCfg.MaxRetries,
			DialTimeout:  redisCfg.DialTimeout,
			ReadTimeout:  redisCfg.Timeout,
			WriteTimeout: redisCfg.Timeout,
		}),
	}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
