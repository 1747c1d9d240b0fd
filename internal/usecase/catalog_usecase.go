package usecase

import (
	"context"
	"time"

	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

// CatalogUseCase отдаёт витрину: список товаров после фильтра и категории.
// Чтение идёт через кэш каталога; при недоступности кэша и БД список
// деградирует до пустого — ошибки чтения витрины никогда не блокируют страницу.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	catalogCfg   *cfg.CatalogCfg
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	catalogCfg *cfg.CatalogCfg,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		catalogCfg:   catalogCfg,
		logger:       logger,
	}
}

// ListProducts применяет четырёхстадийный фильтр каталога к полному списку
// товаров. Порог показа вычисляется по ширине вьюпорта один раз на запрос.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	products := c.fetchCatalog(ctx, op)

	filter := domain.CatalogFilter{
		Category: req.Category,
		Query:    req.Query,
		Sort:     domain.ParseSortMode(req.Sort),
		ShowAll:  req.ShowAll,
	}

	// Сколько товаров проходит фильтр без усечения
	matched := domain.ApplyCatalogFilter(products, domain.CatalogFilter{
		Category: filter.Category,
		Query:    filter.Query,
		ShowAll:  true,
	}, 0)

	revealLimit := c.catalogCfg.RevealLimit(req.ViewportWidth)
	visible := domain.ApplyCatalogFilter(products, filter, revealLimit)

	return &ListProductsRes{
		Products:     NewArrProductInfo(visible),
		TotalMatched: len(matched),
		HasMore:      len(visible) < len(matched),
	}, nil
}

// GetProductBySlug возвращает карточку товара.
func (c *CatalogUseCase) GetProductBySlug(ctx context.Context, slug string) (*ProductInfo, error) {
	const op = "CatalogUseCase.GetProductBySlug"

	if slug == "" {
		return nil, e.Wrap(op, e.ErrSlugRequired)
	}

	product, err := c.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewProductInfo(product)
	return &info, nil
}

// ListCategories возвращает активные категории; при сбое чтения — пустой список.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.ListActive(ctx)
	if err != nil {
		c.logger.Warnf("%s: falling back to empty category list: %v", op, err)
		return []CategoryInfo{}, nil
	}

	result := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		result = append(result, NewCategoryInfo(&categories[i]))
	}

	return result, nil
}

// fetchCatalog читает полный список товаров: сперва кэш, затем БД.
// Попадание из БД фоново прогревает кэш. Любой сбой даёт пустой список.
func (c *CatalogUseCase) fetchCatalog(ctx context.Context, op string) []domain.Product {
	products, err := c.cacheRepo.GetCatalog(ctx)
	if err == nil && len(products) > 0 {
		return products
	}

	products, err = c.productRepo.ListActive(ctx)
	if err != nil {
		c.logger.Warnf("%s: falling back to empty catalog: %v", op, err)
		return []domain.Product{}
	}

	// Фоновый прогрев кэша каталога
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, products); err != nil {
			c.logger.Warnf("%s: failed to cache catalog in background: %v", op, err)
		}
	}()

	return products
}
