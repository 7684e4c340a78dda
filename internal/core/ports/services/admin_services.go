package services

import (
	"context"

	"github.com/SscSPs/savr_backend/internal/core/domain"
)

// AdminAuthSvc defines operations for admin authentication.
type AdminAuthSvc interface {
	// AuthenticateAdmin authenticates an admin with email and password.
	AuthenticateAdmin(ctx context.Context, email, password string) (*domain.Admin, error)
}

// AdminReportingSvc defines the admin read views over users and the ledger.
type AdminReportingSvc interface {
	// ListUsers returns a page of users, newest first, optionally filtered by
	// a name/email search term.
	ListUsers(ctx context.Context, page, limit int, search string) (*domain.UserPage, error)

	// GetUserByID retrieves a single user projection.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListTransactions returns a page of ledger entries across users,
	// optionally filtered by userID (empty = all).
	ListTransactions(ctx context.Context, userID string, page, limit int) (*domain.TransactionWithUserPage, error)

	// GetDashboardStats returns the aggregate dashboard projection.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// AdminSvcFacade combines all admin-related service interfaces.
type AdminSvcFacade interface {
	AdminAuthSvc
	AdminReportingSvc
}
