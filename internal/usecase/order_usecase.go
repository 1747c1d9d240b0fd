package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
	"github.com/sainaman-tech/storefront-backend/pkg/tr"
)

// OrderUseCase реализует оформление и чтение заказов.
// Заказ, его позиции и outbox-событие пишутся в одной транзакции;
// корзина очищается только после успешного коммита.
type OrderUseCase struct {
	orderRepo  OrderRepository
	cartRepo   CartRepository
	outboxRepo OutboxRepository
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		outboxRepo: outboxRepo,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// orderEventPayload — JSON-представление события order.created для брокера.
type orderEventPayload struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	OrderID   string `json:"order_id"`
	Email     string `json:"email"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"item_count"`
	CreatedAt int64  `json:"created_at"`
}

// Checkout оформляет заказ из корзины. Позиции корзины разворачиваются в
// плоскую последовательность единичных записей (строка с количеством N даёт
// N записей с количеством 1). Верхняя граница развёртки не задана.
func (o *OrderUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*CheckoutRes, error) {
	const op = "OrderUseCase.Checkout"

	var err error
	if err = o.validateCheckout(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	cart := o.cartRepo.Load(ctx, req.CartToken)
	if len(cart.Lines) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}

	items := expandCartLines(cart)
	order := domain.NewOrder(
		uuid.NewString(),
		req.UserID,
		req.CustomerName,
		req.Email,
		req.Phone,
		req.Address,
		cart.TotalPrice(),
		items,
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.WithTx(ctx, tx.Transaction())

	created, err := o.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.enqueueOrderEvent(ctx, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Очистка корзины после успешного оформления (best-effort)
	o.cartRepo.Delete(ctx, req.CartToken)

	return &CheckoutRes{
		OrderID: created.PublicID,
		Total:   created.Total,
	}, nil
}

// GetOrder возвращает заказ по публичному идентификатору.
func (o *OrderUseCase) GetOrder(ctx context.Context, publicID string) (*OrderInfo, error) {
	const op = "OrderUseCase.GetOrder"

	if publicID == "" {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	order, err := o.orderRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewOrderInfo(order), nil
}

// ListUserOrders возвращает заказы пользователя в порядке убывания даты.
func (o *OrderUseCase) ListUserOrders(ctx context.Context, userID int64) ([]OrderInfo, error) {
	const op = "OrderUseCase.ListUserOrders"

	orders, err := o.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		result = append(result, *NewOrderInfo(&orders[i]))
	}

	return result, nil
}

// enqueueOrderEvent кладёт событие order.created в транзакционный outbox.
func (o *OrderUseCase) enqueueOrderEvent(ctx context.Context, order *domain.Order) error {
	eventID := uuid.NewString()
	payload, err := json.Marshal(orderEventPayload{
		EventID:   eventID,
		EventType: string(OrderCreatedEvent),
		OrderID:   order.PublicID,
		Email:     order.Email,
		Total:     order.Total,
		ItemCount: len(order.Items),
		CreatedAt: time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, &OutboxEvent{
		EventID:   eventID,
		EventType: OrderCreatedEvent,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	})

	return err
}

func (o *OrderUseCase) validateCheckout(req *CheckoutReq) error {
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address) == "" {
		return e.ErrShippingRequired
	}

	return nil
}

// expandCartLines разворачивает корзину в единичные позиции заказа.
func expandCartLines(cart *domain.Cart) []domain.OrderItem {
	expanded := cart.Expand()
	items := make([]domain.OrderItem, 0, len(expanded))
	for i := range expanded {
		line := &expanded[i]
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Slug:      line.Slug,
			UnitPrice: line.EffectivePrice(),
			Quantity:  1,
		})
	}

	return items
}
