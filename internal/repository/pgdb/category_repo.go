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

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

const categoryColumns = `id, name, slug, description, image_url, created_at, updated_at, is_active`

// ListActive возвращает активные категории в алфавитном порядке.
func (c *CategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_active
		ORDER BY name;
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := scanCategory(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}

// Create вставляет новую категорию. Дубликат слага возвращает e.ErrSlugTaken.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (name, slug, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns + `;
	`

	var model converter.CategoryModel
	if err := scanCategory(c.pool.QueryRow(ctx, query,
		category.Name, category.Slug, category.Description, category.ImageURL,
	), &model); err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSlugTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Update обновляет категорию по идентификатору.
func (c *CategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, image_url = $5, updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING ` + categoryColumns + `;
	`

	var model converter.CategoryModel
	if err := scanCategory(c.pool.QueryRow(ctx, query,
		category.ID, category.Name, category.Slug, category.Description, category.ImageURL,
	), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSlugTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Deactivate скрывает категорию; товары остаются и показываются без категории.
func (c *CategoryRepo) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active;
	`

	result, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}

func scanCategory(row pgx.Row, model *converter.CategoryModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Slug, &model.Description, &model.ImageURL,
		&model.CreatedAt, &model.UpdatedAt, &model.IsActive,
	)
}
