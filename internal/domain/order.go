package domain

import "time"

// OrderStatus — статус жизненного цикла заказа.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "created"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem описывает одну единичную позицию заказа.
// Позиции приходят уже развёрнутыми из корзины (quantity == 1 на строку).
type OrderItem struct {
	ID        int64
	ProductID int64
	Name      string
	Slug      string
	UnitPrice int64 // зафиксированная эффективная цена на момент заказа
	Quantity  int64
}

// Order описывает заказ покупателя
type Order struct {
	ID           int64
	PublicID     string // uuid, используется в ссылке подтверждения заказа
	UserID       int64
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Total        int64 // сумма в центах
	Status       OrderStatus
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewOrder(publicID string, userID int64, customerName, email, phone, address string, total int64, items []OrderItem) *Order {
	return &Order{
		PublicID:     publicID,
		UserID:       userID,
		CustomerName: customerName,
		Email:        email,
		Phone:        phone,
		Address:      address,
		Total:        total,
		Status:       OrderCreated,
		Items:        items,
	}
}
