package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID            int64
	Name          string
	Slug          string
	Description   string
	Price         int64  // Цена хранится в центах
	DiscountPrice *int64 // Цена со скидкой, если назначена
	Images        []string
	InStock       bool
	IsFeatured    bool
	CategoryID    *int64
	CategorySlug  string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsArchived    bool
}

func NewProduct(name, slug, description string, price int64, discountPrice *int64, images []string, inStock, isFeatured bool, categoryID *int64) *Product {
	return &Product{
		Name:          name,
		Slug:          slug,
		Description:   description,
		Price:         price,
		DiscountPrice: discountPrice,
		Images:        images,
		InStock:       inStock,
		IsFeatured:    isFeatured,
		CategoryID:    categoryID,
	}
}

// EffectivePrice возвращает цену со скидкой, если она назначена и ниже базовой,
// иначе базовую цену.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}

	return p.Price
}
