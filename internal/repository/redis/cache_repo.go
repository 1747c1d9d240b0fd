package redis

import (
	"context"
	"encoding/json"

	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/sainaman-tech/storefront-backend/pkg/clients"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

// catalogKey — ключ полного снимка каталога в Redis.
const catalogKey = "catalog:products"

// CacheRepo кэширует снимок каталога целиком: витрина фильтрует весь список
// в памяти, поэтому кэшировать отдельные товары нет смысла.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный снимок каталога.
// Промах кэша — не ошибка: возвращается пустой список.
func (c *CacheRepo) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if isCacheMiss(err) {
			return []domain.Product{}, nil
		}

		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Catalog unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}

// SetCatalog кэширует снимок каталога с настроенным TTL.
// Ошибки сериализации и записи логируются и не считаются фатальными.
func (c *CacheRepo) SetCatalog(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		c.logger.Warnf("Failed to marshal catalog for caching: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, catalogKey, data, c.cfg.CatalogTTL).Err(); err != nil {
		c.logger.Warnf("Cache SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// InvalidateCatalog сбрасывает снимок каталога после админ-записи.
func (c *CacheRepo) InvalidateCatalog(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}
