package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

const orderColumns = `id, public_id, user_id, customer_name, email, phone, address, total, status, created_at, updated_at`

// Create вставляет заказ и его позиции. Должен вызываться внутри транзакции
// оформления: пишется вместе с outbox-событием и коммитится атомарно.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (public_id, user_id, customer_name, email, phone, address, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.PublicID, model.UserID, model.CustomerName, model.Email,
		model.Phone, model.Address, model.Total, model.Status,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, slug, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	items := make([]converter.OrderItemModel, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		itemModel := converter.OrderItemModel{
			OrderID:   model.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}

		if err := tx.QueryRow(ctx, itemQuery,
			itemModel.OrderID, itemModel.ProductID, itemModel.Name,
			itemModel.Slug, itemModel.UnitPrice, itemModel.Quantity,
		).Scan(&itemModel.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		items = append(items, itemModel)
	}

	return o.conv.ToEntity(model, items), nil
}

// GetByPublicID возвращает заказ с позициями по публичному идентификатору.
func (o *OrderRepo) GetByPublicID(ctx context.Context, publicID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE public_id = $1;
	`

	var model converter.OrderModel
	if err := scanOrder(o.pool.QueryRow(ctx, query, publicID), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, model.ID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model, items), nil
}

// ListByUser возвращает заказы пользователя, новые первыми.
func (o *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`

	rows, err := o.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := scanOrder(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orders := make([]domain.Order, 0, len(models))
	for i := range models {
		items, err := o.loadItems(ctx, models[i].ID)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		orders = append(orders, *o.conv.ToEntity(&models[i], items))
	}

	return orders, nil
}

func (o *OrderRepo) loadItems(ctx context.Context, orderID int64) ([]converter.OrderItemModel, error) {
	query := `
		SELECT id, order_id, product_id, name, slug, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id;
	`

	rows, err := o.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]converter.OrderItemModel, 0)
	for rows.Next() {
		var item converter.OrderItemModel
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Slug, &item.UnitPrice, &item.Quantity,
		); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func scanOrder(row pgx.Row, model *converter.OrderModel) error {
	return row.Scan(
		&model.ID, &model.PublicID, &model.UserID, &model.CustomerName, &model.Email,
		&model.Phone, &model.Address, &model.Total, &model.Status,
		&model.CreatedAt, &model.UpdatedAt,
	)
}
