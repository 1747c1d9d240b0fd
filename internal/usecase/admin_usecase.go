package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sainaman-tech/storefront-backend/internal/cfg"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/infrastructure"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
	"github.com/sainaman-tech/storefront-backend/pkg/logger"
)

// AdminUseCase реализует админ-операции витрины: CRUD товаров и категорий
// и подпись прямой загрузки изображений в S3. Любая запись инвалидирует
// кэш каталога.
type AdminUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	imageRepo    ImageRepository
	minioCfg     *cfg.MinIOCfg
	logger       logger.Logger
}

func NewAdminUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	imageRepo ImageRepository,
	minioCfg *cfg.MinIOCfg,
	logger logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		imageRepo:    imageRepo,
		minioCfg:     minioCfg,
		logger:       logger,
	}
}

// CreateProduct создаёт товар. Валидация завершается до любого обращения к БД.
func (a *AdminUseCase) CreateProduct(ctx context.Context, req *SaveProductReq) (*ProductInfo, error) {
	const op = "AdminUseCase.CreateProduct"

	if err := validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(
		strings.TrimSpace(req.Name),
		resolveSlug(req.Slug, req.Name),
		req.Description,
		req.Price,
		req.DiscountPrice,
		req.Images,
		req.InStock,
		req.IsFeatured,
		req.CategoryID,
	)

	created, err := a.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)

	info := NewProductInfo(created)
	return &info, nil
}

// UpdateProduct обновляет товар по идентификатору.
func (a *AdminUseCase) UpdateProduct(ctx context.Context, req *SaveProductReq) (*ProductInfo, error) {
	const op = "AdminUseCase.UpdateProduct"

	if req.ID == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}
	if err := validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(
		strings.TrimSpace(req.Name),
		resolveSlug(req.Slug, req.Name),
		req.Description,
		req.Price,
		req.DiscountPrice,
		req.Images,
		req.InStock,
		req.IsFeatured,
		req.CategoryID,
	)
	product.ID = req.ID

	updated, err := a.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)

	info := NewProductInfo(updated)
	return &info, nil
}

// DeleteProduct архивирует товар; из выдачи каталога он исчезает.
func (a *AdminUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "AdminUseCase.DeleteProduct"

	if err := a.productRepo.Archive(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)
	return nil
}

// CreateCategory создаёт категорию.
func (a *AdminUseCase) CreateCategory(ctx context.Context, req *SaveCategoryReq) (*CategoryInfo, error) {
	const op = "AdminUseCase.CreateCategory"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryRequired)
	}

	created, err := a.categoryRepo.Create(ctx, domain.NewCategory(
		strings.TrimSpace(req.Name),
		resolveSlug(req.Slug, req.Name),
		req.Description,
		req.ImageURL,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)

	info := NewCategoryInfo(created)
	return &info, nil
}

// UpdateCategory обновляет категорию по идентификатору.
func (a *AdminUseCase) UpdateCategory(ctx context.Context, req *SaveCategoryReq) (*CategoryInfo, error) {
	const op = "AdminUseCase.UpdateCategory"

	if req.ID == 0 {
		return nil, e.Wrap(op, e.ErrCategoryNotFound)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryRequired)
	}

	category := domain.NewCategory(
		strings.TrimSpace(req.Name),
		resolveSlug(req.Slug, req.Name),
		req.Description,
		req.ImageURL,
	)
	category.ID = req.ID

	updated, err := a.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)

	info := NewCategoryInfo(updated)
	return &info, nil
}

// DeleteCategory деактивирует категорию; товары остаются без категории.
func (a *AdminUseCase) DeleteCategory(ctx context.Context, id int64) error {
	const op = "AdminUseCase.DeleteCategory"

	if err := a.categoryRepo.Deactivate(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	a.invalidateCatalog(ctx, op)
	return nil
}

// PresignUpload выдаёт подписанную ссылку для прямой загрузки изображения.
func (a *AdminUseCase) PresignUpload(ctx context.Context, req *PresignUploadReq) (*PresignUploadRes, error) {
	const op = "AdminUseCase.PresignUpload"

	ext, err := infrastructure.GetExtensionFromMIME(req.ContentType)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	name := strings.TrimSpace(req.Filename)
	if name == "" {
		name = "image"
	}

	objectKey := fmt.Sprintf("uploads/%s-%s.%s", name, uuid.NewString(), ext)
	url, err := a.imageRepo.PresignPut(ctx, objectKey, req.ContentType)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &PresignUploadRes{
		URL:       url,
		ObjectKey: objectKey,
		ExpiresIn: int64(a.minioCfg.PresignExpiry.Seconds()),
	}, nil
}

// invalidateCatalog сбрасывает кэш каталога после админ-записи.
func (a *AdminUseCase) invalidateCatalog(ctx context.Context, op string) {
	if err := a.cacheRepo.InvalidateCatalog(ctx); err != nil {
		a.logger.Warnf("%s: failed to invalidate catalog cache: %v", op, err)
	}
}

// validateProduct проверяет корректность входных данных товара.
func validateProduct(req *SaveProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.DiscountPrice != nil && *req.DiscountPrice <= 0 {
		return e.ErrInvalidPrice
	}

	return nil
}

// resolveSlug возвращает слаг из запроса или строит его из названия.
func resolveSlug(slug, name string) string {
	slug = strings.TrimSpace(slug)
	if slug != "" {
		return strings.ToLower(slug)
	}

	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	return s
}
