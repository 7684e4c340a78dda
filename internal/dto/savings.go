package dto

import (
	"time"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the payload for deposits and withdrawals.
// Amount must be strictly positive; see the dgt0 binding in validation.go.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// HistoryParams defines query parameters for transaction history.
type HistoryParams struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse is the wire shape of one ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// BalanceResponse wraps the current balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// MutationResponse is returned from a successful deposit or withdrawal.
type MutationResponse struct {
	Balance     decimal.Decimal     `json:"balance"`
	Transaction TransactionResponse `json:"transaction"`
}

// HistoryResponse is one page of a user's transaction history.
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
}

// ToHistoryResponse converts a domain.TransactionPage to its response DTO.
func ToHistoryResponse(p *domain.TransactionPage) HistoryResponse {
	txns := make([]TransactionResponse, len(p.Transactions))
	for i := range p.Transactions {
		txns[i] = ToTransactionResponse(&p.Transactions[i])
	}
	return HistoryResponse{
		Transactions: txns,
		Total:        p.Total,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
	}
}
