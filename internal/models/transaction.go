package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a ledger entry is a deposit or a withdrawal.
type TransactionType string

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
)

// Transaction is one row of the append-only ledger.
// Rows are insert-only; there is no update path for this table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Type          TransactionType `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	Timestamps
}
