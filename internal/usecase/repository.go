package usecase

import (
	"context"

	"github.com/sainaman-tech/storefront-backend/internal/domain"
)

type ProductRepository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Archive(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Deactivate(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CartRepository персистирует корзину как best-effort кэш.
// Load возвращает пустую корзину при любом сбое (отсутствие ключа, ошибка
// разбора, недоступность хранилища) и никогда не отдаёт ошибку наружу.
// Save и Delete проглатывают ошибки записи: состояние в памяти остаётся
// авторитетным для текущей сессии.
type CartRepository interface {
	Load(ctx context.Context, token string) *domain.Cart
	Save(ctx context.Context, token string, cart *domain.Cart)
	Delete(ctx context.Context, token string)
}

type SessionRepository interface {
	Save(ctx context.Context, token string, userID int64) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type CacheRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	InvalidateCatalog(ctx context.Context) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
	PresignPut(ctx context.Context, objectKey string, contentType string) (string, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
