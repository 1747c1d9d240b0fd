package converter

import "github.com/sainaman-tech/storefront-backend/internal/domain"

// CartConverter преобразует корзину между domain и JSON-моделью Redis.
type CartConverter struct{}

func (CartConverter) ToRedisModel(entity *domain.Cart) *CartRedisModel {
	lines := make([]CartLineRedisModel, 0, len(entity.Lines))
	for i := range entity.Lines {
		line := &entity.Lines[i]
		lines = append(lines, CartLineRedisModel{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Slug:          line.Slug,
			Image:         line.Image,
			Price:         line.Price,
			DiscountPrice: line.DiscountPrice,
			Quantity:      line.Quantity,
		})
	}

	return &CartRedisModel{Lines: lines}
}

func (CartConverter) ToEntity(model *CartRedisModel) *domain.Cart {
	cart := domain.NewCart()
	for i := range model.Lines {
		line := &model.Lines[i]
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Slug:          line.Slug,
			Image:         line.Image,
			Price:         line.Price,
			DiscountPrice: line.DiscountPrice,
			Quantity:      line.Quantity,
		})
	}

	return cart
}

// ProductConverter преобразует товары между domain и JSON-моделью кэша каталога.
type ProductConverter struct{}

func (ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:            entity.ID,
		Name:          entity.Name,
		Slug:          entity.Slug,
		Description:   entity.Description,
		Price:         entity.Price,
		DiscountPrice: entity.DiscountPrice,
		Images:        entity.Images,
		InStock:       entity.InStock,
		IsFeatured:    entity.IsFeatured,
		CategoryID:    entity.CategoryID,
		CategorySlug:  entity.CategorySlug,
	}
}

func (ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		Slug:          model.Slug,
		Description:   model.Description,
		Price:         model.Price,
		DiscountPrice: model.DiscountPrice,
		Images:        model.Images,
		InStock:       model.InStock,
		IsFeatured:    model.IsFeatured,
		CategoryID:    model.CategoryID,
		CategorySlug:  model.CategorySlug,
	}
}

func (c ProductConverter) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}

func (c ProductConverter) ToArrEntity(models []ProductRedisModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}
