package domain

import "time"

// Category описывает категорию товара
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsActive    bool
}

func NewCategory(name, slug, description, imageURL string) *Category {
	return &Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		ImageURL:    imageURL,
	}
}
