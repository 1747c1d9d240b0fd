package usecase

import (
	"context"
	"testing"

	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:     1,
			Name:   "Жемчужное ожерелье",
			Slug:   "pearl-necklace",
			Price:  59999,
			Images: []string{"necklaces/pearl-1.jpg"},
		},
		{
			ID:            2,
			Name:          "Серьги с жемчугом",
			Slug:          "pearl-earrings",
			Price:         29999,
			DiscountPrice: int64Ptr(19999),
		},
	}
}

func TestCartUseCase_GetCart_MintsToken(t *testing.T) {
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(), nopLogger{})

	res, err := uc.GetCart(context.Background(), "")
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Empty(t, res.Lines)
	assert.Zero(t, res.TotalCount)
	assert.Zero(t, res.TotalPrice)
}

func TestCartUseCase_AddToCart_MergesAndRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo(testProducts()...)
	uc := NewCartUC(newStubCartRepo(), products, nopLogger{})

	res, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(1), res.Lines[0].Quantity)
	assert.Equal(t, int64(59999), res.Lines[0].Price)

	// Цена изменилась между добавлениями — повторное добавление обновляет снимок
	updated := products.products[1]
	updated.Price = 64999
	products.products[1] = updated

	res, err = uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(2), res.Lines[0].Quantity)
	assert.Equal(t, int64(64999), res.Lines[0].Price)
	assert.Equal(t, int64(2*64999), res.TotalPrice)
}

func TestCartUseCase_AddToCart_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.AddToCart(ctx, "device-1", 2)
	require.NoError(t, err)
	res, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)

	require.Len(t, res.Lines, 2)
	assert.Equal(t, int64(2), res.Lines[0].ProductID)
	assert.Equal(t, int64(1), res.Lines[1].ProductID)
}

func TestCartUseCase_AddToCart_UnknownProduct(t *testing.T) {
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(), nopLogger{})

	_, err := uc.AddToCart(context.Background(), "device-1", 42)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCartUseCase_AddToCart_UsesDiscountInTotals(t *testing.T) {
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	res, err := uc.AddToCart(context.Background(), "device-1", 2)
	require.NoError(t, err)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(19999), res.Lines[0].EffectivePrice)
	assert.Equal(t, int64(19999), res.TotalPrice)
}

func TestCartUseCase_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)

	res, err := uc.UpdateQuantity(ctx, "device-1", 1, 5)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(5), res.Lines[0].Quantity)
	assert.Equal(t, int64(5), res.TotalCount)

	// Ноль удаляет позицию
	res, err = uc.UpdateQuantity(ctx, "device-1", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
}

func TestCartUseCase_UpdateQuantity_Negative(t *testing.T) {
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.UpdateQuantity(context.Background(), "device-1", 1, -1)
	assert.ErrorIs(t, err, e.ErrInvalidQuantity)
}

func TestCartUseCase_UpdateQuantity_UnknownProductIsNoop(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)

	res, err := uc.UpdateQuantity(ctx, "device-1", 99, 3)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(1), res.Lines[0].Quantity)
}

func TestCartUseCase_RemoveItem(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUC(newStubCartRepo(), newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, "device-1", 2)
	require.NoError(t, err)

	res, err := uc.RemoveItem(ctx, "device-1", 1)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(2), res.Lines[0].ProductID)
}

func TestCartUseCase_ClearCart(t *testing.T) {
	ctx := context.Background()
	cartRepo := newStubCartRepo()
	uc := NewCartUC(cartRepo, newStubProductRepo(testProducts()...), nopLogger{})

	_, err := uc.AddToCart(ctx, "device-1", 1)
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(ctx, "device-1"))
	assert.NotContains(t, cartRepo.carts, "device-1")

	// Пустой токен — no-op
	require.NoError(t, uc.ClearCart(ctx, ""))
}
