package usecase

import (
	"time"

	"github.com/sainaman-tech/storefront-backend/internal/domain"
)

// CATALOG

// ListProductsReq — запрос списка товаров каталога с состоянием фильтра.
type ListProductsReq struct {
	Category      string // slug категории или "all"
	Query         string
	Sort          string
	ShowAll       bool
	ViewportWidth int // ширина вьюпорта клиента в px, 0 = неизвестно
}

// ListProductsRes — ответ каталога после всех стадий фильтра.
type ListProductsRes struct {
	Products     []ProductInfo
	TotalMatched int  // сколько товаров прошло фильтр до усечения
	HasMore      bool // остались ли товары за порогом показа
}

// ProductInfo — DTO товара для внешнего использования.
type ProductInfo struct {
	ID             int64
	Name           string
	Slug           string
	Description    string
	Price          int64
	DiscountPrice  *int64
	EffectivePrice int64
	Images         []string
	InStock        bool
	IsFeatured     bool
	Category       string
}

// CategoryInfo — DTO категории для внешнего использования.
type CategoryInfo struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

// CART

// CartLineInfo — DTO позиции корзины.
type CartLineInfo struct {
	ProductID      int64
	Name           string
	Slug           string
	Image          string
	Price          int64
	DiscountPrice  *int64
	EffectivePrice int64
	Quantity       int64
	LineTotal      int64
}

// CartRes — текущее состояние корзины с производными суммами.
type CartRes struct {
	Token      string
	Lines      []CartLineInfo
	TotalCount int64
	TotalPrice int64
}

// ORDERS

// CheckoutReq — запрос на оформление заказа из корзины.
type CheckoutReq struct {
	CartToken    string
	UserID       int64
	CustomerName string
	Email        string
	Phone        string
	Address      string
}

// CheckoutRes — результат оформления заказа.
type CheckoutRes struct {
	OrderID string // публичный идентификатор для страницы подтверждения
	Total   int64
}

// OrderItemInfo — DTO единичной позиции заказа.
type OrderItemInfo struct {
	ProductID int64
	Name      string
	Slug      string
	UnitPrice int64
	Quantity  int64
}

// OrderInfo — DTO заказа для внешнего использования.
type OrderInfo struct {
	OrderID      string
	CustomerName string
	Email        string
	Address      string
	Total        int64
	Status       string
	Items        []OrderItemInfo
	CreatedAt    time.Time
}

// AUTH

// SignupReq — запрос на регистрацию покупателя.
type SignupReq struct {
	Name     string
	Email    string
	Password string
}

// LoginReq — запрос на вход.
type LoginReq struct {
	Email    string
	Password string
}

// UserInfo — DTO пользователя; IsAdmin вычисляется по настроенному адресу администратора.
type UserInfo struct {
	ID      int64
	Name    string
	Email   string
	IsAdmin bool
}

// AuthRes — результат входа или регистрации.
type AuthRes struct {
	Token string
	User  UserInfo
}

// ADMIN

// SaveProductReq — запрос на создание или обновление товара.
type SaveProductReq struct {
	ID            int64 // 0 при создании
	Name          string
	Slug          string
	Description   string
	Price         int64
	DiscountPrice *int64
	Images        []string
	InStock       bool
	IsFeatured    bool
	CategoryID    *int64
}

// SaveCategoryReq — запрос на создание или обновление категории.
type SaveCategoryReq struct {
	ID          int64 // 0 при создании
	Name        string
	Slug        string
	Description string
	ImageURL    string
}

// UploadImage — одно изображение, принятое из multipart-формы.
type UploadImage struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// UploadImagesReq — запрос на загрузку изображений через бэкенд.
// Prefix задаёт каталог в бакете (обычно slug товара).
type UploadImagesReq struct {
	Prefix string
	Images []UploadImage
}

// UploadImagesRes — ключи объектов, под которыми сохранены изображения.
type UploadImagesRes struct {
	Keys []string
}

// PresignUploadReq — запрос на подпись загрузки изображения.
type PresignUploadReq struct {
	Filename    string
	ContentType string
}

// PresignUploadRes — подписанная ссылка для прямой загрузки в хранилище.
type PresignUploadRes struct {
	URL       string
	ObjectKey string
	ExpiresIn int64 // секунды
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const OrderCreatedEvent OutboxEventType = "order.created"

// OutboxEvent — запись транзакционного outbox для событий заказов.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// WriteRawMessageReq — запрос на отправку готового payload в брокер.
type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewProductInfo(p *domain.Product) ProductInfo {
	return ProductInfo{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice(),
		Images:         p.Images,
		InStock:        p.InStock,
		IsFeatured:     p.IsFeatured,
		Category:       p.CategorySlug,
	}
}

func NewArrProductInfo(products []domain.Product) []ProductInfo {
	result := make([]ProductInfo, 0, len(products))
	for i := range products {
		result = append(result, NewProductInfo(&products[i]))
	}

	return result
}

func NewCategoryInfo(c *domain.Category) CategoryInfo {
	return CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func NewCartRes(token string, cart *domain.Cart) *CartRes {
	lines := make([]CartLineInfo, 0, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		lines = append(lines, CartLineInfo{
			ProductID:      line.ProductID,
			Name:           line.Name,
			Slug:           line.Slug,
			Image:          line.Image,
			Price:          line.Price,
			DiscountPrice:  line.DiscountPrice,
			EffectivePrice: line.EffectivePrice(),
			Quantity:       line.Quantity,
			LineTotal:      line.Quantity * line.EffectivePrice(),
		})
	}

	return &CartRes{
		Token:      token,
		Lines:      lines,
		TotalCount: cart.TotalCount(),
		TotalPrice: cart.TotalPrice(),
	}
}

func NewOrderInfo(order *domain.Order) *OrderInfo {
	items := make([]OrderItemInfo, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemInfo{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return &OrderInfo{
		OrderID:      order.PublicID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Address:      order.Address,
		Total:        order.Total,
		Status:       string(order.Status),
		Items:        items,
		CreatedAt:    order.CreatedAt,
	}
}

func NewUploadImagesRes(keys []string) *UploadImagesRes {
	return &UploadImagesRes{Keys: keys}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}
