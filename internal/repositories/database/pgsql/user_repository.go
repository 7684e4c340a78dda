package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/savr_backend/internal/models"
	"github.com/SscSPs/savr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, full_name, email, password_hash, device_id, device_verified, balance, push_token, refresh_token_hash, refresh_token_expiry, created_at, updated_at`

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (*domain.User, error) {
	var m models.User
	var pushToken, refreshHash sql.NullString
	var refreshExpiry sql.NullTime

	err := row.Scan(
		&m.UserID,
		&m.FullName,
		&m.Email,
		&m.PasswordHash,
		&m.DeviceID,
		&m.DeviceVerified,
		&m.Balance,
		&pushToken,
		&refreshHash,
		&refreshExpiry,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pushToken.Valid {
		m.PushToken = pushToken.String
	}
	if refreshHash.Valid {
		m.RefreshTokenHash = refreshHash.String
	}
	if refreshExpiry.Valid {
		expiry := refreshExpiry.Time
		m.RefreshTokenExpiry = &expiry
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (user_id, full_name, email, password_hash, device_id, device_verified, balance, push_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	var pushToken sql.NullString
	if m.PushToken != "" {
		pushToken = sql.NullString{String: m.PushToken, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.FullName,
		m.Email,
		m.PasswordHash,
		m.DeviceID,
		m.DeviceVerified,
		m.Balance,
		pushToken,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", m.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	user, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by their unique email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	user, err := scanUserRow(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users, newest first, optionally
// filtered by a case-insensitive name/email search term.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int, search string) ([]domain.User, int64, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, user_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM users
		WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%');
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

// MarkDeviceVerified sets device_verified = true. Returns true when the flag
// actually changed; the operation is idempotent.
func (r *PgxUserRepository) MarkDeviceVerified(ctx context.Context, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE users
		SET device_verified = TRUE, updated_at = $2
		WHERE user_id = $1 AND device_verified = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, now)
	if err != nil {
		return false, fmt.Errorf("failed to mark device verified for user %s: %w", userID, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// No row changed: either the flag was already set or the user is missing.
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1);`, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence for %s: %w", userID, err)
	}
	if !exists {
		return false, apperrors.ErrNotFound
	}
	return false, nil
}

// UpdatePushToken stores the user's push notification token.
func (r *PgxUserRepository) UpdatePushToken(ctx context.Context, userID string, pushToken string, now time.Time) error {
	query := `UPDATE users SET push_token = $2, updated_at = $3 WHERE user_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, userID, pushToken, now)
	if err != nil {
		return fmt.Errorf("failed to update push token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of the user's refresh token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time, now time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry = $3, updated_at = $4 WHERE user_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, userID, tokenHash, expiry, now)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearRefreshToken removes the user's refresh token state.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string, now time.Time) error {
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry = NULL, updated_at = $2 WHERE user_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, userID, now)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindUserByIDForUpdate selects the user row and locks it for update within
// the given transaction. The row lock serializes concurrent balance mutations
// on the same account; callers must hold it for the whole write pair.
func (r *PgxUserRepository) FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE;`

	user, err := scanUserRow(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if kindErr := classifyPgError(err); kindErr != nil {
			return nil, fmt.Errorf("%w: failed to lock user %s: %v", kindErr, userID, err)
		}
		return nil, fmt.Errorf("failed to lock user %s for update: %w", userID, err)
	}
	return user, nil
}

// UpdateUserBalanceInTx sets the user's balance within the given transaction.
func (r *PgxUserRepository) UpdateUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, newBalance decimal.Decimal, now time.Time) error {
	query := `UPDATE users SET balance = $2, updated_at = $3 WHERE user_id = $1;`
	tag, err := tx.Exec(ctx, query, userID, newBalance, now)
	if err != nil {
		if kindErr := classifyPgError(err); kindErr != nil {
			return fmt.Errorf("%w: failed to update balance for user %s: %v", kindErr, userID, err)
		}
		return fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
