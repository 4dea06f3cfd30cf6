package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func (r *ApplicationRepo) GetTenantID(ctx context.Context, applicationID string) (string, error) {
	var tenantID string
	err := r.pool.QueryRow(ctx, `
		SELECT tenant_id FROM applications WHERE id = $1
	`, applicationID).Scan(&tenantID)

	if err == pgx.ErrNoRows {
		return "", ErrorNotFound
	}
	return tenantID, err
}
