package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/pkg/clients"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
)

// SessionRepo хранит bearer-сессии в Redis под ключом session:<token>.
// Значение — идентификатор пользователя; TTL продлевается при каждом чтении.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.AuthCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.AuthCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

// Save открывает сессию с настроенным TTL.
func (s *SessionRepo) Save(ctx context.Context, token string, userID int64) error {
	key := s.sessionKey(token)
	if err := s.client.Client.Set(ctx, key, userID, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает идентификатор пользователя сессии, скользяще продлевая TTL.
func (s *SessionRepo) Get(ctx context.Context, token string) (int64, error) {
	key := s.sessionKey(token)

	value, err := s.client.Client.GetEx(ctx, key, s.cfg.SessionTTL).Result()
	if err != nil {
		if isCacheMiss(err) {
			return 0, e.Wrap(whereami.WhereAmI(), e.ErrUnauthorized)
		}

		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return userID, nil
}

// Delete закрывает сессию.
func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, s.sessionKey(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// sessionKey возвращает Redis-ключ сессии для токена.
func (s *SessionRepo) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
