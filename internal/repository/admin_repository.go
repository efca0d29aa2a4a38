package repository

import (
	"context"

	"github.com/complainthub/complaint-service/internal/domain"
)

// AdminRepository defines persistence access for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}

type adminRepository struct {
	pool PgxPool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool PgxPool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (id, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
	).Scan(&admin.CreatedAt)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT id, email, password_hash, created_at
        FROM admins WHERE email=$1`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
        SELECT id, email, password_hash, created_at
        FROM admins WHERE id=$1`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
