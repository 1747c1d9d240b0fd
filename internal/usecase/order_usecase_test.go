package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutReq(cartToken string) *CheckoutReq {
	return &CheckoutReq{
		CartToken:    cartToken,
		CustomerName: "Анна Смирнова",
		Email:        "anna@example.com",
		Phone:        "+7 900 000-00-00",
		Address:      "Москва, ул. Пушкина, д. 1",
	}
}

func TestOrderUseCase_Checkout_ShippingRequired(t *testing.T) {
	uc := NewOrderUC(&stubOrderRepo{}, newStubCartRepo(), &stubOutboxRepo{}, nil, nopLogger{})

	req := checkoutReq("device-1")
	req.Address = "   "

	_, err := uc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, e.ErrShippingRequired)
}

func TestOrderUseCase_Checkout_EmptyCart(t *testing.T) {
	uc := NewOrderUC(&stubOrderRepo{}, newStubCartRepo(), &stubOutboxRepo{}, nil, nopLogger{})

	_, err := uc.Checkout(context.Background(), checkoutReq("device-1"))
	assert.ErrorIs(t, err, e.ErrEmptyCart)
}

func TestOrderUseCase_Checkout_CommitsAndClearsCart(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	outbox := &stubOutboxRepo{}
	tx := &stubTx{}
	uc := NewOrderUC(orders, carts, outbox, &stubTxBeginner{tx: tx}, nopLogger{})

	carts.Save(context.Background(), "device-1", cartWithLine())

	res, err := uc.Checkout(context.Background(), checkoutReq("device-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, int64(59999), res.Total)

	// Заказ и outbox-событие пишутся в одной транзакции
	assert.True(t, orders.sawTx, "репозиторий заказов должен получить транзакцию из контекста")
	require.Len(t, orders.orders, 1)
	require.Len(t, outbox.created, 1)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	// Корзина очищается только после коммита
	assert.Empty(t, carts.Load(context.Background(), "device-1").Lines)
}

func TestOrderUseCase_Checkout_RollsBackOnOutboxFailure(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := newStubCartRepo()
	outbox := &stubOutboxRepo{createErr: errors.New("outbox unavailable")}
	tx := &stubTx{}
	uc := NewOrderUC(orders, carts, outbox, &stubTxBeginner{tx: tx}, nopLogger{})

	carts.Save(context.Background(), "device-1", cartWithLine())

	_, err := uc.Checkout(context.Background(), checkoutReq("device-1"))
	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)

	// Корзина переживает неудачное оформление
	assert.Len(t, carts.Load(context.Background(), "device-1").Lines, 1)
}

func TestOrderUseCase_GetOrder(t *testing.T) {
	publicID := uuid.NewString()
	orders := &stubOrderRepo{orders: []domain.Order{{
		ID:           1,
		PublicID:     publicID,
		CustomerName: "Анна Смирнова",
		Total:        59999,
		Status:       domain.OrderCreated,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Жемчужное ожерелье", Slug: "pearl-necklace", UnitPrice: 59999, Quantity: 1},
		},
	}}}
	uc := NewOrderUC(orders, newStubCartRepo(), &stubOutboxRepo{}, nil, nopLogger{})

	info, err := uc.GetOrder(context.Background(), publicID)
	require.NoError(t, err)
	assert.Equal(t, publicID, info.OrderID)
	assert.Equal(t, int64(59999), info.Total)
	require.Len(t, info.Items, 1)
	assert.Equal(t, int64(1), info.Items[0].Quantity)

	_, err = uc.GetOrder(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, e.ErrOrderNotFound)

	_, err = uc.GetOrder(context.Background(), "")
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestOrderUseCase_ListUserOrders(t *testing.T) {
	orders := &stubOrderRepo{orders: []domain.Order{
		{ID: 1, PublicID: uuid.NewString(), UserID: 7, Total: 1000},
		{ID: 2, PublicID: uuid.NewString(), UserID: 8, Total: 2000},
		{ID: 3, PublicID: uuid.NewString(), UserID: 7, Total: 3000},
	}}
	uc := NewOrderUC(orders, newStubCartRepo(), &stubOutboxRepo{}, nil, nopLogger{})

	result, err := uc.ListUserOrders(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestExpandCartLines(t *testing.T) {
	cart := domain.NewCart()
	cart.Lines = append(cart.Lines,
		domain.CartLine{ProductID: 1, Name: "Ожерелье", Slug: "necklace", Price: 100, DiscountPrice: int64Ptr(80), Quantity: 3},
		domain.CartLine{ProductID: 2, Name: "Кольцо", Slug: "ring", Price: 50, Quantity: 1},
	)

	items := expandCartLines(cart)
	require.Len(t, items, 4)

	// Каждая строка с количеством N превращается в N единичных позиций
	for i := 0; i < 3; i++ {
		assert.Equal(t, int64(1), items[i].ProductID)
		assert.Equal(t, int64(80), items[i].UnitPrice) // эффективная цена со скидкой
		assert.Equal(t, int64(1), items[i].Quantity)
	}
	assert.Equal(t, int64(2), items[3].ProductID)
	assert.Equal(t, int64(50), items[3].UnitPrice)
}

func TestOrderUseCase_EnqueueOrderEvent(t *testing.T) {
	outbox := &stubOutboxRepo{}
	uc := NewOrderUC(&stubOrderRepo{}, newStubCartRepo(), outbox, nil, nopLogger{})

	order := &domain.Order{
		ID:       42,
		PublicID: uuid.NewString(),
		Email:    "anna@example.com",
		Total:    59999,
		Items:    []domain.OrderItem{{ProductID: 1, Quantity: 1}},
	}

	require.NoError(t, uc.enqueueOrderEvent(context.Background(), order))
	require.Len(t, outbox.created, 1)

	event := outbox.created[0]
	assert.Equal(t, OrderCreatedEvent, event.EventType)
	assert.Equal(t, int64(42), event.OrderID)
	assert.Equal(t, Pending, event.Status)

	var payload orderEventPayload
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, event.EventID, payload.EventID)
	assert.Equal(t, string(OrderCreatedEvent), payload.EventType)
	assert.Equal(t, order.PublicID, payload.OrderID)
	assert.Equal(t, int64(59999), payload.Total)
	assert.Equal(t, 1, payload.ItemCount)
}
