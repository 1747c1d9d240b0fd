package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sainaman-tech/storefront-backend/internal/domain"
	"github.com/sainaman-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sainaman-tech/storefront-backend/pkg/e"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `
	p.id, p.name, p.slug, p.description, p.price, p.discount_price,
	p.images, p.in_stock, p.is_featured, p.category_id,
	COALESCE(c.slug, ''), p.created_at, p.updated_at, p.is_archived
`

// ListActive возвращает неархивные товары в порядке создания.
func (p *ProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE NOT p.is_archived
		ORDER BY p.id;
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByID возвращает товар по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND NOT p.is_archived;
	`

	var model converter.ProductModel
	if err := scanProduct(p.pool.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetBySlug возвращает товар по слагу.
func (p *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 AND NOT p.is_archived;
	`

	var model converter.ProductModel
	if err := scanProduct(p.pool.QueryRow(ctx, query, slug), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create вставляет новый товар. Дубликат слага возвращает e.ErrSlugTaken.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		WITH inserted AS (
			INSERT INTO products (name, slug, description, price, discount_price, images, in_stock, is_featured, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + productColumns + `
		FROM inserted p
		LEFT JOIN categories c ON c.id = p.category_id;
	`

	model := p.conv.ToModel(product)
	if err := scanProduct(p.pool.QueryRow(ctx, query,
		model.Name, model.Slug, model.Description, model.Price, model.DiscountPrice,
		model.Images, model.InStock, model.IsFeatured, model.CategoryID,
	), model); err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSlugTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Update обновляет товар по идентификатору.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		WITH updated AS (
			UPDATE products
			SET name = $2, slug = $3, description = $4, price = $5, discount_price = $6,
			    images = $7, in_stock = $8, is_featured = $9, category_id = $10,
			    updated_at = NOW()
			WHERE id = $1 AND NOT is_archived
			RETURNING *
		)
		SELECT ` + productColumns + `
		FROM updated p
		LEFT JOIN categories c ON c.id = p.category_id;
	`

	model := p.conv.ToModel(product)
	if err := scanProduct(p.pool.QueryRow(ctx, query,
		model.ID, model.Name, model.Slug, model.Description, model.Price, model.DiscountPrice,
		model.Images, model.InStock, model.IsFeatured, model.CategoryID,
	), model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSlugTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Archive мягко удаляет товар: запись остаётся для истории заказов.
func (p *ProductRepo) Archive(ctx context.Context, id int64) error {
	query := `
		UPDATE products
		SET is_archived = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT is_archived;
	`

	result, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Slug, &model.Description, &model.Price, &model.DiscountPrice,
		&model.Images, &model.InStock, &model.IsFeatured, &model.CategoryID,
		&model.CategorySlug, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
	)
}
