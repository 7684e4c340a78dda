package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users, newest first, optionally
	// filtered by a case-insensitive name/email search term. Returns the page
	// and the total count matching the filter.
	ListUsers(ctx context.Context, limit, offset int, search string) ([]domain.User, int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// MarkDeviceVerified sets device_verified = true. Idempotent: returns true
	// when the flag actually changed, false when it was already set.
	MarkDeviceVerified(ctx context.Context, userID string, now time.Time) (bool, error)

	// UpdatePushToken stores the user's push notification token.
	UpdatePushToken(ctx context.Context, userID string, pushToken string, now time.Time) error

	// UpdateRefreshToken stores the hash and expiry of the user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time, now time.Time) error

	// ClearRefreshToken removes the user's refresh token state.
	ClearRefreshToken(ctx context.Context, userID string, now time.Time) error
}

// UserLedgerSupport defines operations used inside the ledger's atomic write pair.
type UserLedgerSupport interface {
	// FindUserByIDForUpdate selects the user row and locks it for update within
	// the given transaction. This lock serializes concurrent balance mutations
	// on the same account.
	FindUserByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)

	// UpdateUserBalanceInTx sets the user's balance within the given transaction.
	UpdateUserBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, newBalance decimal.Decimal, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLedgerSupport
}
