package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminUC() (*AdminUseCase, *stubProductRepo, *stubCategoryRepo, *stubCacheRepo, *stubImageRepo) {
	products := newStubProductRepo()
	categories := &stubCategoryRepo{}
	cache := &stubCacheRepo{}
	images := &stubImageRepo{}
	minioCfg := &cfg.MinIOCfg{PresignExpiry: 15 * time.Minute}
	uc := NewAdminUC(products, categories, cache, images, minioCfg, nopLogger{})
	return uc, products, categories, cache, images
}

func TestAdminUseCase_CreateProduct(t *testing.T) {
	uc, _, _, cache, _ := newTestAdminUC()

	info, err := uc.CreateProduct(context.Background(), &SaveProductReq{
		Name:    "  Жемчужное ожерелье Akoya  ",
		Price:   59999,
		InStock: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Жемчужное ожерелье Akoya", info.Name)
	assert.Equal(t, "жемчужное-ожерелье-akoya", info.Slug) // слаг строится из названия
	assert.Equal(t, int64(59999), info.EffectivePrice)
	assert.Equal(t, 1, cache.invalidations())
}

func TestAdminUseCase_CreateProduct_Validation(t *testing.T) {
	uc, _, _, cache, _ := newTestAdminUC()

	_, err := uc.CreateProduct(context.Background(), &SaveProductReq{Name: " ", Price: 100})
	assert.ErrorIs(t, err, e.ErrProductNameRequired)

	_, err = uc.CreateProduct(context.Background(), &SaveProductReq{Name: "Кольцо", Price: 0})
	assert.ErrorIs(t, err, e.ErrPriceMustBePositive)

	_, err = uc.CreateProduct(context.Background(), &SaveProductReq{
		Name:          "Кольцо",
		Price:         100,
		DiscountPrice: int64Ptr(-5),
	})
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	// Невалидные запросы не трогают кэш
	assert.Zero(t, cache.invalidations())
}

func TestAdminUseCase_UpdateProduct(t *testing.T) {
	uc, products, _, cache, _ := newTestAdminUC()

	created, err := uc.CreateProduct(context.Background(), &SaveProductReq{Name: "Кольцо", Price: 100})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), &SaveProductReq{
		ID:    created.ID,
		Name:  "Кольцо с жемчугом",
		Slug:  "Pearl-Ring",
		Price: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "Кольцо с жемчугом", updated.Name)
	assert.Equal(t, "pearl-ring", updated.Slug) // переданный слаг приводится к нижнему регистру
	assert.Equal(t, 2, cache.invalidations())

	_, err = uc.UpdateProduct(context.Background(), &SaveProductReq{Name: "Без ID", Price: 100})
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, ok := products.products[created.ID]
	assert.True(t, ok)
}

func TestAdminUseCase_DeleteProduct(t *testing.T) {
	uc, _, _, cache, _ := newTestAdminUC()

	created, err := uc.CreateProduct(context.Background(), &SaveProductReq{Name: "Кольцо", Price: 100})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), created.ID))
	assert.Equal(t, 2, cache.invalidations())

	assert.ErrorIs(t, uc.DeleteProduct(context.Background(), 999), e.ErrProductNotFound)
}

func TestAdminUseCase_CategoryCRUD(t *testing.T) {
	uc, _, _, cache, _ := newTestAdminUC()

	created, err := uc.CreateCategory(context.Background(), &SaveCategoryReq{Name: "Ожерелья"})
	require.NoError(t, err)
	assert.Equal(t, "ожерелья", created.Slug)

	_, err = uc.CreateCategory(context.Background(), &SaveCategoryReq{Name: "  "})
	assert.ErrorIs(t, err, e.ErrCategoryRequired)

	updated, err := uc.UpdateCategory(context.Background(), &SaveCategoryReq{
		ID:   created.ID,
		Name: "Ожерелья и подвески",
		Slug: "necklaces",
	})
	require.NoError(t, err)
	assert.Equal(t, "necklaces", updated.Slug)

	require.NoError(t, uc.DeleteCategory(context.Background(), created.ID))
	assert.ErrorIs(t, uc.DeleteCategory(context.Background(), 999), e.ErrCategoryNotFound)

	assert.Equal(t, 3, cache.invalidations())
}

func TestAdminUseCase_PresignUpload(t *testing.T) {
	uc, _, _, _, images := newTestAdminUC()

	res, err := uc.PresignUpload(context.Background(), &PresignUploadReq{
		Filename:    "necklace",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.ObjectKey, "uploads/necklace-"))
	assert.True(t, strings.HasSuffix(res.ObjectKey, ".jpg"))
	assert.NotEmpty(t, res.URL)
	assert.Equal(t, int64(900), res.ExpiresIn)
	require.Len(t, images.presigned, 1)
	assert.Equal(t, res.ObjectKey, images.presigned[0])
}

func TestAdminUseCase_PresignUpload_UnsupportedType(t *testing.T) {
	uc, _, _, _, _ := newTestAdminUC()

	_, err := uc.PresignUpload(context.Background(), &PresignUploadReq{
		Filename:    "doc",
		ContentType: "application/pdf",
	})
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}
