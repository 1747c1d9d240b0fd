package http

import (
	"context"
	"net/http"

	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

type ctxKey string

const userCtxKey ctxKey = "user"

// authMiddleware проверяет bearer-токен и кладёт пользователя в контекст.
// Без валидного токена запрос отклоняется с 401.
func authMiddleware(authUC usecase.AuthUC, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, e.ErrUnauthorized)
				return
			}

			user, err := authUC.Verify(r.Context(), token)
			if err != nil {
				logger.Debugf("auth rejected: %v", err)
				WriteError(w, e.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// optionalAuthMiddleware кладёт пользователя в контекст, если токен валиден,
// но анонимные запросы пропускает дальше. Используется на оформлении заказа.
func optionalAuthMiddleware(authUC usecase.AuthUC) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if user, err := authUC.Verify(r.Context(), token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userCtxKey, user))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// adminMiddleware пропускает только администратора. Ставится после authMiddleware.
func adminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromCtx(r.Context())
			if user == nil || !user.IsAdmin {
				WriteError(w, e.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userFromCtx возвращает пользователя запроса или nil.
func userFromCtx(ctx context.Context) *usecase.UserInfo {
	user, _ := ctx.Value(userCtxKey).(*usecase.UserInfo)
	return user
}
