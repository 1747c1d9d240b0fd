package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogCfg() *cfg.CatalogCfg {
	return &cfg.CatalogCfg{
		RevealNarrow:   4,
		RevealWide:     6,
		NarrowMaxWidth: 640,
	}
}

func catalogOf(n int) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, domain.Product{
			ID:           int64(i),
			Name:         fmt.Sprintf("Товар %d", i),
			Slug:         fmt.Sprintf("product-%d", i),
			Price:        int64(i * 1000),
			CategorySlug: "necklaces",
		})
	}
	return products
}

func TestCatalogUseCase_ListProducts_RevealTruncation(t *testing.T) {
	cache := &stubCacheRepo{catalog: catalogOf(8)}
	uc := NewCatalogUC(newStubProductRepo(), &stubCategoryRepo{}, cache, testCatalogCfg(), nopLogger{})

	// Широкий экран: виден порог в 6 товаров
	res, err := uc.ListProducts(context.Background(), &ListProductsReq{Category: "all", ViewportWidth: 1280})
	require.NoError(t, err)
	assert.Len(t, res.Products, 6)
	assert.Equal(t, 8, res.TotalMatched)
	assert.True(t, res.HasMore)

	// Узкий экран: порог в 4 товара
	res, err = uc.ListProducts(context.Background(), &ListProductsReq{Category: "all", ViewportWidth: 480})
	require.NoError(t, err)
	assert.Len(t, res.Products, 4)
	assert.True(t, res.HasMore)

	// Раскрытие полного списка
	res, err = uc.ListProducts(context.Background(), &ListProductsReq{Category: "all", ShowAll: true})
	require.NoError(t, err)
	assert.Len(t, res.Products, 8)
	assert.False(t, res.HasMore)
}

func TestCatalogUseCase_ListProducts_FilterPipeline(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Ожерелье Akoya", Slug: "akoya-necklace", Price: 90000, CategorySlug: "necklaces"},
		{ID: 2, Name: "Кольцо Akoya", Slug: "akoya-ring", Price: 30000, CategorySlug: "rings"},
		{ID: 3, Name: "Серьги Tahiti", Slug: "tahiti-earrings", Price: 50000, CategorySlug: "earrings"},
		{ID: 4, Name: "Браслет Akoya", Slug: "akoya-bracelet", Price: 60000, DiscountPrice: int64Ptr(25000), CategorySlug: "bracelets"},
	}
	cache := &stubCacheRepo{catalog: products}
	uc := NewCatalogUC(newStubProductRepo(), &stubCategoryRepo{}, cache, testCatalogCfg(), nopLogger{})

	// Категория фильтруется без учёта регистра
	res, err := uc.ListProducts(context.Background(), &ListProductsReq{Category: "RINGS"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "akoya-ring", res.Products[0].Slug)

	// Поиск + сортировка по эффективной цене по возрастанию
	res, err = uc.ListProducts(context.Background(), &ListProductsReq{
		Category: "all",
		Query:    "akoya",
		Sort:     "low-high",
	})
	require.NoError(t, err)
	require.Len(t, res.Products, 3)
	assert.Equal(t, "akoya-bracelet", res.Products[0].Slug) // скидка 25000 ниже базовых цен
	assert.Equal(t, "akoya-ring", res.Products[1].Slug)
	assert.Equal(t, "akoya-necklace", res.Products[2].Slug)
	assert.Equal(t, 3, res.TotalMatched)
}

func TestCatalogUseCase_ListProducts_DBFallbackWhenCacheEmpty(t *testing.T) {
	products := newStubProductRepo(catalogOf(3)...)
	cache := &stubCacheRepo{}
	uc := NewCatalogUC(products, &stubCategoryRepo{}, cache, testCatalogCfg(), nopLogger{})

	res, err := uc.ListProducts(context.Background(), &ListProductsReq{Category: "all", ShowAll: true})
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)
}

func TestCatalogUseCase_ListProducts_DegradesToEmpty(t *testing.T) {
	products := newStubProductRepo()
	products.listErr = errors.New("db is down")
	cache := &stubCacheRepo{getErr: errors.New("cache is down")}
	uc := NewCatalogUC(products, &stubCategoryRepo{}, cache, testCatalogCfg(), nopLogger{})

	res, err := uc.ListProducts(context.Background(), &ListProductsReq{Category: "all"})
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Zero(t, res.TotalMatched)
	assert.False(t, res.HasMore)
}

func TestCatalogUseCase_GetProductBySlug(t *testing.T) {
	uc := NewCatalogUC(newStubProductRepo(testProducts()...), &stubCategoryRepo{}, &stubCacheRepo{}, testCatalogCfg(), nopLogger{})

	info, err := uc.GetProductBySlug(context.Background(), "pearl-necklace")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.ID)
	assert.Equal(t, int64(59999), info.EffectivePrice)

	_, err = uc.GetProductBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProductBySlug(context.Background(), "")
	assert.ErrorIs(t, err, e.ErrSlugRequired)
}

func TestCatalogUseCase_ListCategories(t *testing.T) {
	categories := &stubCategoryRepo{categories: []domain.Category{
		{ID: 1, Name: "Ожерелья", Slug: "necklaces", IsActive: true},
		{ID: 2, Name: "Кольца", Slug: "rings", IsActive: true},
	}}
	uc := NewCatalogUC(newStubProductRepo(), categories, &stubCacheRepo{}, testCatalogCfg(), nopLogger{})

	result, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "necklaces", result[0].Slug)
}

func TestCatalogUseCase_ListCategories_FallsBackToEmpty(t *testing.T) {
	categories := &stubCategoryRepo{listErr: errors.New("db is down")}
	uc := NewCatalogUC(newStubProductRepo(), categories, &stubCacheRepo{}, testCatalogCfg(), nopLogger{})

	result, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}
