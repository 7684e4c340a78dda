package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/savr_backend/internal/models"
	"github.com/SscSPs/savr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAdminRepository struct {
	BaseRepository
}

// newPgxAdminRepository creates a new repository for admin identities.
func newPgxAdminRepository(pool *pgxpool.Pool) portsrepo.AdminRepositoryFacade {
	return &PgxAdminRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdminRepositoryFacade = (*PgxAdminRepository)(nil)

const adminColumns = `admin_id, full_name, email, password_hash, created_at, updated_at`

func scanAdminRow(row rowScanner) (*domain.Admin, error) {
	var m models.Admin
	err := row.Scan(
		&m.AdminID,
		&m.FullName,
		&m.Email,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	admin := mapping.ToDomainAdmin(m)
	return &admin, nil
}

// FindAdminByID retrieves an admin by ID.
func (r *PgxAdminRepository) FindAdminByID(ctx context.Context, adminID string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE admin_id = $1;`

	admin, err := scanAdminRow(r.Pool.QueryRow(ctx, query, adminID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by ID %s: %w", adminID, err)
	}
	return admin, nil
}

// FindAdminByEmail retrieves an admin by their unique email.
func (r *PgxAdminRepository) FindAdminByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1;`

	admin, err := scanAdminRow(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by email: %w", err)
	}
	return admin, nil
}
