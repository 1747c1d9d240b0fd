package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Slug          string     `db:"slug"`
	Description   string     `db:"description"`
	Price         int64      `db:"price"`
	DiscountPrice *int64     `db:"discount_price"`
	Images        []string   `db:"images"`
	InStock       bool       `db:"in_stock"`
	IsFeatured    bool       `db:"is_featured"`
	CategoryID    *int64     `db:"category_id"`
	CategorySlug  string     `db:"category_slug"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
	IsArchived    bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Slug        string     `db:"slug"`
	Description string     `db:"description"`
	ImageURL    string     `db:"image_url"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsActive    bool       `db:"is_active"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	UserID       *int64     `db:"user_id"`
	CustomerName string     `db:"customer_name"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	Address      string     `db:"address"`
	Total        int64      `db:"total"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID        int64  `db:"id"`
	OrderID   int64  `db:"order_id"`
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	UnitPrice int64  `db:"unit_price"`
	Quantity  int64  `db:"quantity"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
