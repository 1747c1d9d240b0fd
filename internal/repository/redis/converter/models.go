package converter

// CartLineRedisModel представляет позицию корзины в JSON-снимке Redis.
type CartLineRedisModel struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Image         string `json:"image"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discount_price,omitempty"`
	Quantity      int64  `json:"quantity"`
}

// CartRedisModel представляет корзину целиком: порядок строк значим.
type CartRedisModel struct {
	Lines []CartLineRedisModel `json:"lines"`
}

// ProductRedisModel представляет товар в кэше каталога.
type ProductRedisModel struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	DiscountPrice *int64   `json:"discount_price,omitempty"`
	Images        []string `json:"images"`
	InStock       bool     `json:"in_stock"`
	IsFeatured    bool     `json:"is_featured"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	CategorySlug  string   `json:"category_slug"`
}
