package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/membership-service/internal/domain"
)

// UserRepository defines persistence access for administrator accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserAuth, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserAuth, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Upsert(ctx context.Context, user *domain.UserAuth) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, role, organization, last_login, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserAuth, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_auth WHERE id=$1`

	var user domain.UserAuth
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Organization,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAuth, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_auth WHERE email=$1`

	var user domain.UserAuth
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Organization,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE user_auth SET last_login=$1, updated_at=NOW() WHERE id=$2`

	_, err := r.pool.Exec(ctx, query, at, id)
	return err
}

// Upsert inserts an account, leaving an existing row with the same email
// untouched. Used by the seed binary.
func (r *userRepository) Upsert(ctx context.Context, user *domain.UserAuth) error {
	const query = `
        INSERT INTO user_auth (email, password_hash, name, role, organization)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (email) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.Organization,
	)
	return err
}
