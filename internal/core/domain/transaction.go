package domain

import "github.com/shopspring/decimal"

// TransactionType indicates whether a ledger entry is a deposit or a withdrawal.
type TransactionType string

const (
	Deposit  TransactionType = "deposit"
	Withdraw TransactionType = "withdraw"
)

// Transaction is one immutable ledger entry for a user's savings account.
// BalanceAfter snapshots the balance immediately after this entry was applied;
// entries are never updated or deleted once written.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // FK -> users.user_id
	Type          TransactionType `json:"type"`          // deposit or withdraw
	Amount        decimal.Decimal `json:"amount"`        // Positive magnitude
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`  // Balance snapshot after applying this entry
	Description   string          `json:"description"`
	Timestamps
}

// TransactionWithUser is an admin-facing projection joining a ledger entry
// with the owning user's identity.
type TransactionWithUser struct {
	Transaction
	UserFullName string `json:"userFullName"`
	UserEmail    string `json:"userEmail"`
}

// TransactionPage is one page of a user's transaction history.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
}

// TransactionWithUserPage is one page of the admin-facing ledger listing.
type TransactionWithUserPage struct {
	Transactions []TransactionWithUser `json:"transactions"`
	Total        int64                 `json:"total"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
}
