// Package tr передаёт активную транзакцию pgx через контекст, чтобы
// репозитории могли писать в рамках транзакции usecase-слоя.
package tr

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
)

type ctxKey struct{}

// WithTx кладёт транзакцию в контекст для нижележащих репозиториев.
// Значение принимается нетипизированным: менеджер транзакций отдаёт
// обёрнутый объект, проверка типа выполняется при извлечении.
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// TxFromCtx возвращает транзакцию из контекста или e.ErrTransactionNotFound,
// если вызов пришёл вне транзакции.
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(ctxKey{}).(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}

	return tx, nil
}
