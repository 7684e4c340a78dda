package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/savr_backend/internal/models"
	"github.com/SscSPs/savr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
	userRepo portsrepo.UserRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for the transaction ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool, userRepo portsrepo.UserRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveTransaction executes the atomic write pair: the balance update and the
// ledger append commit together or not at all. The user row is locked for the
// duration, so concurrent mutations on the same account serialize and the
// BalanceAfter snapshots form a consistent chain. Device trust and balance
// sufficiency are enforced under the lock; pre-checks in the service layer are
// advisory only.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	user, err := r.userRepo.FindUserByIDForUpdate(ctx, tx, txn.UserID)
	if err != nil {
		return nil, err
	}

	if !user.DeviceVerified {
		return nil, apperrors.ErrDeviceNotVerified
	}

	var newBalance = user.Balance
	switch txn.Type {
	case domain.Deposit:
		newBalance = user.Balance.Add(txn.Amount)
	case domain.Withdraw:
		if user.Balance.LessThan(txn.Amount) {
			return nil, apperrors.ErrInsufficientBalance
		}
		newBalance = user.Balance.Sub(txn.Amount)
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txn.Type)
	}

	if err := r.userRepo.UpdateUserBalanceInTx(ctx, tx, txn.UserID, newBalance, txn.CreatedAt); err != nil {
		return nil, err
	}

	txn.BalanceAfter = newBalance
	m := mapping.ToModelTransaction(txn)

	insertQuery := `
		INSERT INTO transactions (transaction_id, user_id, type, amount, balance_after, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Amount,
		m.BalanceAfter,
		m.Description,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if kindErr := classifyPgError(err); kindErr != nil {
			return nil, fmt.Errorf("%w: failed to append transaction %s: %v", kindErr, m.TransactionID, err)
		}
		return nil, fmt.Errorf("failed to append transaction %s: %w", m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &txn, nil
}

// FindTransactionsByUserID retrieves a reverse-chronological page of a user's
// transactions plus the user's total transaction count.
func (r *PgxLedgerRepository) FindTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, int64, error) {
	query := `
		SELECT transaction_id, user_id, type, amount, balance_after, description, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Type,
			&m.Amount,
			&m.BalanceAfter,
			&m.Description,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row for user %s: %w", userID, err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows for user %s: %w", userID, err)
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %s: %w", userID, err)
	}

	return transactions, total, nil
}

// ListTransactions retrieves a reverse-chronological page across all users,
// joined with user identity, optionally filtered by userID (empty = all).
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionWithUser, int64, error) {
	query := `
		SELECT t.transaction_id, t.user_id, t.type, t.amount, t.balance_after, t.description, t.created_at, t.updated_at,
		       u.full_name, u.email
		FROM transactions t
		JOIN users u ON u.user_id = t.user_id
		WHERE ($1 = '' OR t.user_id = $1)
		ORDER BY t.created_at DESC, t.transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transaction listing: %w", err)
	}
	defer rows.Close()

	transactions := []domain.TransactionWithUser{}
	for rows.Next() {
		var m models.Transaction
		var fullName, email string
		err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Type,
			&m.Amount,
			&m.BalanceAfter,
			&m.Description,
			&m.CreatedAt,
			&m.UpdatedAt,
			&fullName,
			&email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction listing row: %w", err)
		}
		transactions = append(transactions, domain.TransactionWithUser{
			Transaction:  mapping.ToDomainTransaction(m),
			UserFullName: fullName,
			UserEmail:    email,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transaction listing rows: %w", err)
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE ($1 = '' OR user_id = $1);`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transaction listing: %w", err)
	}

	return transactions, total, nil
}
