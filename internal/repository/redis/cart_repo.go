package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/sainaman-tech/storefront-backend/pkg/clients"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	r "github.com/redis/go-redis/v9"
)

// CartRepo хранит снимок корзины в Redis под ключом cart:<token>.
// Хранилище трактуется как best-effort кэш: любой сбой чтения даёт пустую
// корзину, сбои записи проглатываются с логированием. Ошибки наружу не
// выходят — авторитетным остаётся состояние корзины в памяти запроса.
type CartRepo struct {
	client *clients.RedisClient
	conv   converter.CartConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, conv converter.CartConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CartRepo {
	return &CartRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Load возвращает сохранённую корзину или пустую при любом сбое.
func (r *CartRepo) Load(ctx context.Context, token string) *domain.Cart {
	data, err := r.client.Client.Get(ctx, r.cartKey(token)).Bytes()
	if err != nil {
		if !isCacheMiss(err) {
			r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return domain.NewCart()
	}

	var model converter.CartRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Cart unmarshal failed, dropping snapshot: %v", e.Wrap(whereami.WhereAmI(), err))
		r.Delete(ctx, token)
		return domain.NewCart()
	}

	return r.conv.ToEntity(&model)
}

// Save сериализует корзину и пишет её с TTL, продлевая жизнь снимка.
func (r *CartRepo) Save(ctx context.Context, token string, cart *domain.Cart) {
	data, err := json.Marshal(r.conv.ToRedisModel(cart))
	if err != nil {
		r.logger.Warnf("Cart marshal failed (token: %s): %v", token, e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := r.client.Client.Set(ctx, r.cartKey(token), data, r.cfg.CartTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// Delete удаляет снимок корзины.
func (r *CartRepo) Delete(ctx context.Context, token string) {
	if err := r.client.Client.Del(ctx, r.cartKey(token)).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// cartKey возвращает Redis-ключ корзины для токена устройства.
func (r *CartRepo) cartKey(token string) string {
	return fmt.Sprintf("cart:%s", token)
}

// isCacheMiss сообщает, является ли ошибка обычным промахом кэша.
func isCacheMiss(err error) bool {
	return errors.Is(err, r.Nil)
}
