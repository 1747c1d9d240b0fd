package converter

import (
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
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
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
		IsArchived:    entity.IsArchived,
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
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
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		IsArchived:    model.IsArchived,
	}
}

func (c ProductConverter) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func (CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		Slug:        model.Slug,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		IsActive:    model.IsActive,
	}
}

func (c CategoryConverter) ToArrEntity(models []CategoryModel) []domain.Category {
	result := make([]domain.Category, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// OrderConverter преобразует сущности Order между domain и моделями PostgreSQL.
// Гостевой заказ (UserID == 0) хранится с NULL в user_id.
type OrderConverter struct{}

func (OrderConverter) ToModel(entity *domain.Order) *OrderModel {
	var userID *int64
	if entity.UserID != 0 {
		id := entity.UserID
		userID = &id
	}

	return &OrderModel{
		ID:           entity.ID,
		PublicID:     entity.PublicID,
		UserID:       userID,
		CustomerName: entity.CustomerName,
		Email:        entity.Email,
		Phone:        entity.Phone,
		Address:      entity.Address,
		Total:        entity.Total,
		Status:       string(entity.Status),
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (OrderConverter) ToEntity(model *OrderModel, items []OrderItemModel) *domain.Order {
	var userID int64
	if model.UserID != nil {
		userID = *model.UserID
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for i := range items {
		item := &items[i]
		orderItems = append(orderItems, domain.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return &domain.Order{
		ID:           model.ID,
		PublicID:     model.PublicID,
		UserID:       userID,
		CustomerName: model.CustomerName,
		Email:        model.Email,
		Phone:        model.Phone,
		Address:      model.Address,
		Total:        model.Total,
		Status:       domain.OrderStatus(model.Status),
		Items:        orderItems,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter struct{}

func (UserConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func (OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
