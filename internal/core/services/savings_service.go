package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/middleware"
)

const (
	// maxWriteAttempts bounds the retry loop around the atomic write pair.
	// After this many conflicts the caller sees ErrConflict.
	maxWriteAttempts = 3

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// savingsService is the balance-mutation and transaction-ledger engine. It
// guarantees that a user's stored balance and their append-only history never
// diverge: every mutation goes through the ledger repository's atomic write
// pair, and every precondition is re-checked under the row lock.
type savingsService struct {
	userRepo   portsrepo.UserRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	notifier   portssvc.PushNotifierSvc
}

// SavingsServiceOption configures optional collaborators.
type SavingsServiceOption func(*savingsService)

// WithPushNotifier attaches a best-effort push notifier, invoked after a
// mutation commits.
func WithPushNotifier(n portssvc.PushNotifierSvc) SavingsServiceOption {
	return func(s *savingsService) {
		s.notifier = n
	}
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(userRepo portsrepo.UserRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, opts ...SavingsServiceOption) portssvc.SavingsSvcFacade {
	s := &savingsService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

// Deposit adds amount to the user's balance and appends the ledger entry
// atomically.
func (s *savingsService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	description := fmt.Sprintf("Deposit of $%s", amount.StringFixed(2))
	return s.applyMutation(ctx, userID, domain.Deposit, amount, description)
}

// Withdraw subtracts amount from the user's balance and appends the ledger
// entry atomically. The balance never goes negative.
func (s *savingsService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*domain.Transaction, error) {
	description := fmt.Sprintf("Withdrawal of $%s", amount.StringFixed(2))
	return s.applyMutation(ctx, userID, domain.Withdraw, amount, description)
}

// applyMutation validates preconditions, then drives the atomic write pair
// with a bounded retry on conflict. The pre-read checks give fast, clean
// errors; the repository re-validates everything under the row lock, so a
// stale pre-read can never corrupt the ledger.
func (s *savingsService) applyMutation(ctx context.Context, userID string, kind domain.TransactionType, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.DeviceVerified {
		return nil, apperrors.ErrDeviceNotVerified
	}
	if kind == domain.Withdraw && user.Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	var saved *domain.Transaction
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		now := time.Now().UTC()
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          kind,
			Amount:        amount,
			Description:   description,
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		saved, err = s.ledgerRepo.SaveTransaction(ctx, txn)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) || attempt == maxWriteAttempts {
			return nil, err
		}
		logger.Warn("Write conflict applying transaction, retrying",
			slog.String("user_id", userID),
			slog.String("type", string(kind)),
			slog.Int("attempt", attempt),
		)
	}

	logger.Info("Transaction applied",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("type", string(saved.Type)),
		slog.String("amount", saved.Amount.String()),
		slog.String("balance_after", saved.BalanceAfter.String()),
	)

	s.notifyMutation(ctx, user, saved)

	return saved, nil
}

// notifyMutation fires a best-effort push notification after the write pair
// has committed. Failures are the notifier's problem, never the caller's.
func (s *savingsService) notifyMutation(ctx context.Context, user *domain.User, txn *domain.Transaction) {
	if s.notifier == nil || user.PushToken == "" {
		return
	}

	var title, body string
	switch txn.Type {
	case domain.Deposit:
		title = "Deposit Successful"
		body = fmt.Sprintf("You have successfully deposited $%s. Your new balance is $%s.", txn.Amount.StringFixed(2), txn.BalanceAfter.StringFixed(2))
	case domain.Withdraw:
		title = "Withdrawal Successful"
		body = fmt.Sprintf("You have successfully withdrawn $%s. Your new balance is $%s.", txn.Amount.StringFixed(2), txn.BalanceAfter.StringFixed(2))
	}

	data := map[string]any{
		"type":    string(txn.Type),
		"amount":  txn.Amount,
		"balance": txn.BalanceAfter,
	}

	// Detached from the request lifecycle; the commit already happened.
	go s.notifier.Notify(context.WithoutCancel(ctx), user.PushToken, title, body, data)
}

// GetBalance returns the current stored balance for the user.
func (s *savingsService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// GetHistory returns a reverse-chronological page of the user's transactions.
func (s *savingsService) GetHistory(ctx context.Context, userID string, page, limit int) (*domain.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	transactions, total, err := s.ledgerRepo.FindTransactionsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionPage{
		Transactions: transactions,
		Total:        total,
		TotalPages:   totalPages(total, limit),
		CurrentPage:  page,
	}, nil
}

// VerifyDevice idempotently marks the user's device as verified. Only the
// admin route reaches this; the handler enforces the admin identity.
func (s *savingsService) VerifyDevice(ctx context.Context, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	changed, err := s.userRepo.MarkDeviceVerified(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		logger.Info("Device already verified", slog.String("user_id", userID))
	} else {
		logger.Info("Device verified", slog.String("user_id", userID))
	}

	return s.userRepo.FindUserByID(ctx, userID)
}

// totalPages computes ceil(total/limit) for pagination metadata.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
