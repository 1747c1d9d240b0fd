package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

// CartUseCase реализует операции над корзиной покупателя.
// Корзина идентифицируется токеном; после каждой мутации полное состояние
// синхронно сохраняется в Redis (best-effort: ошибка записи не прерывает
// операцию, состояние в памяти остаётся авторитетным).
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	logger      logger.Logger
}

func NewCartUC(cartRepo CartRepository, productRepo ProductRepository, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart возвращает текущее состояние корзины с производными суммами.
func (c *CartUseCase) GetCart(ctx context.Context, token string) (*CartRes, error) {
	if token == "" {
		token = uuid.NewString()
	}

	cart := c.cartRepo.Load(ctx, token)
	return NewCartRes(token, cart), nil
}

// AddToCart добавляет товар в корзину: существующая позиция получает +1 к
// количеству и свежий снимок цен, новая добавляется в конец с количеством 1.
func (c *CartUseCase) AddToCart(ctx context.Context, token string, productID int64) (*CartRes, error) {
	const op = "CartUseCase.AddToCart"

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if token == "" {
		token = uuid.NewString()
	}

	cart := c.cartRepo.Load(ctx, token)
	cart.Add(product)
	c.cartRepo.Save(ctx, token, cart)

	return NewCartRes(token, cart), nil
}

// UpdateQuantity выставляет количество позиции. Ноль удаляет позицию;
// отрицательные значения до этого слоя не доходят (обрезаются на границе HTTP).
func (c *CartUseCase) UpdateQuantity(ctx context.Context, token string, productID, quantity int64) (*CartRes, error) {
	const op = "CartUseCase.UpdateQuantity"

	if quantity < 0 {
		return nil, e.Wrap(op, e.ErrInvalidQuantity)
	}

	if token == "" {
		token = uuid.NewString()
	}

	cart := c.cartRepo.Load(ctx, token)
	cart.SetQuantity(productID, quantity)
	c.cartRepo.Save(ctx, token, cart)

	return NewCartRes(token, cart), nil
}

// RemoveItem удаляет позицию из корзины; отсутствующая позиция — no-op.
func (c *CartUseCase) RemoveItem(ctx context.Context, token string, productID int64) (*CartRes, error) {
	if token == "" {
		token = uuid.NewString()
	}

	cart := c.cartRepo.Load(ctx, token)
	cart.Remove(productID)
	c.cartRepo.Save(ctx, token, cart)

	return NewCartRes(token, cart), nil
}

// ClearCart опустошает корзину и удаляет её сохранённую запись.
func (c *CartUseCase) ClearCart(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	c.cartRepo.Delete(ctx, token)
	return nil
}
