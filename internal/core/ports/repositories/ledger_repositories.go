package repositories

import (
	"context"

	"github.com/SscSPs/savr_backend/internal/core/domain"
)

// LedgerReader defines read operations over the transaction ledger.
type LedgerReader interface {
	// FindTransactionsByUserID retrieves a reverse-chronological page of a
	// user's transactions plus the user's total transaction count.
	FindTransactionsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, int64, error)

	// ListTransactions retrieves a reverse-chronological page across all users,
	// joined with user identity, optionally filtered by userID (empty = all).
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.TransactionWithUser, int64, error)
}

// LedgerWriter defines the single mutation the ledger supports.
type LedgerWriter interface {
	// SaveTransaction executes the atomic write pair: locks the user row,
	// re-validates device trust and (for withdrawals) balance sufficiency under
	// the lock, updates the stored balance and appends the ledger entry in one
	// database transaction. The returned transaction carries the computed
	// BalanceAfter snapshot. Either both writes commit or neither is visible.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends the facade with transaction management.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
