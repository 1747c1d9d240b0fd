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

// UserRepo реализует репозиторий пользователей поверх PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
	conv converter.UserConverter
}

func NewUserRepo(pool *pgxpool.Pool, conv converter.UserConverter) *UserRepo {
	return &UserRepo{pool: pool, conv: conv}
}

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// Create регистрирует пользователя. Занятый email возвращает e.ErrEmailTaken.
func (u *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `;
	`

	var model converter.UserModel
	if err := scanUser(u.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash,
	), &model); err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmailTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// GetByEmail возвращает пользователя по email.
func (u *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;
	`

	var model converter.UserModel
	if err := scanUser(u.pool.QueryRow(ctx, query, email), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

// GetByID возвращает пользователя по идентификатору.
func (u *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;
	`

	var model converter.UserModel
	if err := scanUser(u.pool.QueryRow(ctx, query, id), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrUserNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return u.conv.ToEntity(&model), nil
}

func scanUser(row pgx.Row, model *converter.UserModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Email, &model.PasswordHash,
		&model.CreatedAt, &model.UpdatedAt,
	)
}
