package services

import (
	"context"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingsReaderSvc defines the read-only projections over a user's account.
type SavingsReaderSvc interface {
	// GetBalance returns the current stored balance for the user.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// GetHistory returns a reverse-chronological page of the user's
	// transactions. page starts at 1; limit is clamped to [1,100]. A page past
	// the end yields an empty slice, not an error.
	GetHistory(ctx context.Context, userID string, page, limit int) (*domain.TransactionPage, error)
}

// SavingsMutatorSvc defines the balance-mutating operations. Both operations
// persist the balance update and the ledger entry as one atomic unit; the
// returned transaction carries the post-apply balance snapshot.
type SavingsMutatorSvc interface {
	// Deposit adds amount to the user's balance.
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error)

	// Withdraw subtracts amount from the user's balance; the balance never
	// goes negative.
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error)
}

// DeviceTrustSvc defines the administrative device-trust operation.
type DeviceTrustSvc interface {
	// VerifyDevice idempotently marks the user's device as verified. Only
	// reachable through an admin-authenticated path.
	VerifyDevice(ctx context.Context, userID string) (*domain.User, error)
}

// SavingsSvcFacade combines the savings account operations.
type SavingsSvcFacade interface {
	SavingsReaderSvc
	SavingsMutatorSvc
	DeviceTrustSvc
}
