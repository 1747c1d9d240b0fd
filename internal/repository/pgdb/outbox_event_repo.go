package pgdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/tr"
)

// OutboxEventRepo хранит события заказов для транзакционной публикации в Kafka.
type OutboxEventRepo struct {
	pool *pgxpool.Pool
	conv converter.OutboxEventConverter
}

func NewOutboxEventRepo(pool *pgxpool.Pool, conv converter.OutboxEventConverter) *OutboxEventRepo {
	return &OutboxEventRepo{
		pool: pool,
		conv: conv,
	}
}

// Create пишет событие в outbox внутри транзакции оформления заказа и будит
// воркер через NOTIFY. Уведомление уходит только при коммите транзакции.
func (o *OutboxEventRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(event)

	const query = `
		INSERT INTO outbox_events (event_id, event_type, order_id, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	err = tx.QueryRow(ctx, query,
		model.EventID,
		model.EventType,
		model.OrderID,
		model.Payload,
		model.Status,
		model.CreatedAt,
	).Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("duplicate event %s", event.EventID))
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, "NOTIFY outbox_pending;"); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// staleProcessingAfter — срок, после которого «обрабатываемое» событие
// считается брошенным (упавший воркер или неудачная публикация) и снова
// попадает в выборку.
const staleProcessingAfter = 5 * time.Minute

// GetAndMarkAsProcessing забирает пачку ожидающих событий, помечая их как
// обрабатываемые. FOR UPDATE SKIP LOCKED позволяет нескольким воркерам
// разбирать очередь без взаимной блокировки; зависшие в processing события
// возвращаются в выборку по истечении staleProcessingAfter.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	tx, err := o.pool.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const query = `
		UPDATE outbox_events
		SET status = $1, processing_started_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2
			   OR (status = $1 AND processing_started_at < NOW() - $3::interval)
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_id, event_type, order_id, payload, status, created_at, processed_at;
	`

	rows, err := tx.Query(ctx, query, usecase.Processing, usecase.Pending, staleProcessingAfter, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.OutboxEventModel
	for rows.Next() {
		var (
			model       converter.OutboxEventModel
			processedAt sql.NullTime
		)

		if err = rows.Scan(
			&model.ID,
			&model.EventID,
			&model.EventType,
			&model.OrderID,
			&model.Payload,
			&model.Status,
			&model.CreatedAt,
			&processedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if processedAt.Valid {
			model.ProcessedAt = &processedAt.Time
		}

		models = append(models, &model)
	}

	if err = rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToArrEntity(models), nil
}

// MarkAsProcessed переводит событие в финальный статус. Нулевое число
// затронутых строк означает, что событие уже закрыл другой воркер.
func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	const query = `
		UPDATE outbox_events
		SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3;
	`

	if _, err := o.pool.Exec(ctx, query, usecase.Processed, id, usecase.Processing); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
