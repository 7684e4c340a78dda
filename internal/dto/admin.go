package dto

import (
	"time"

	"github.com/SscSPs/savr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListUsersParams defines query parameters for the admin user listing.
type ListUsersParams struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

// ListTransactionsParams defines query parameters for the admin ledger listing.
type ListTransactionsParams struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	UserID string `form:"userId"`
}

// AdminResponse is the outward representation of an admin.
type AdminResponse struct {
	AdminID  string `json:"adminID"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AdminLoginResponse is returned from a successful admin login.
type AdminLoginResponse struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	Admin       AdminResponse `json:"admin"`
}

// ListUsersResponse is one page of the admin user listing.
type ListUsersResponse struct {
	Users       []UserResponse `json:"users"`
	Total       int64          `json:"total"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// ToListUsersResponse converts a domain.UserPage to its response DTO.
func ToListUsersResponse(p *domain.UserPage) ListUsersResponse {
	users := make([]UserResponse, len(p.Users))
	for i := range p.Users {
		users[i] = ToUserResponse(&p.Users[i])
	}
	return ListUsersResponse{
		Users:       users,
		Total:       p.Total,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
	}
}

// AdminTransactionResponse is one ledger entry joined with its owner.
type AdminTransactionResponse struct {
	TransactionResponse
	UserFullName string `json:"userFullName"`
	UserEmail    string `json:"userEmail"`
}

// ListTransactionsResponse is one page of the admin ledger listing.
type ListTransactionsResponse struct {
	Transactions []AdminTransactionResponse `json:"transactions"`
	Total        int64                      `json:"total"`
	TotalPages   int                        `json:"totalPages"`
	CurrentPage  int                        `json:"currentPage"`
}

// ToListTransactionsResponse converts a domain.TransactionWithUserPage to its response DTO.
func ToListTransactionsResponse(p *domain.TransactionWithUserPage) ListTransactionsResponse {
	txns := make([]AdminTransactionResponse, len(p.Transactions))
	for i := range p.Transactions {
		txns[i] = AdminTransactionResponse{
			TransactionResponse: ToTransactionResponse(&p.Transactions[i].Transaction),
			UserFullName:        p.Transactions[i].UserFullName,
			UserEmail:           p.Transactions[i].UserEmail,
		}
	}
	return ListTransactionsResponse{
		Transactions: txns,
		Total:        p.Total,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
	}
}

// StatsResponse is the admin dashboard aggregate payload.
type StatsResponse struct {
	TotalUsers        int64           `json:"totalUsers"`
	VerifiedUsers     int64           `json:"verifiedUsers"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalTransactions int64           `json:"totalTransactions"`
}

// VerifyDeviceResponse acknowledges a device verification.
type VerifyDeviceResponse struct {
	UserID         string `json:"userID"`
	DeviceVerified bool   `json:"deviceVerified"`
}
