package domain

import "github.com/shopspring/decimal"

// Admin is a back-office identity. Admins are outside the ledger invariant;
// they only produce trusted isAdmin facts and manage device verification.
type Admin struct {
	AdminID      string `json:"adminID"` // Primary Key (UUID)
	FullName     string `json:"fullName"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`
	Timestamps
}

// DashboardStats is the aggregate projection shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers        int64           `json:"totalUsers"`
	VerifiedUsers     int64           `json:"verifiedUsers"`
	TotalBalance      decimal.Decimal `json:"totalBalance"`
	TotalTransactions int64           `json:"totalTransactions"`
}
