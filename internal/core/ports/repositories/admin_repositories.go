package repositories

import (
	"context"

	"github.com/SscSPs/savr_backend/internal/core/domain"
)

// AdminReader defines read operations for admin identities.
type AdminReader interface {
	// FindAdminByID retrieves an admin by ID.
	FindAdminByID(ctx context.Context, adminID string) (*domain.Admin, error)

	// FindAdminByEmail retrieves an admin by their unique email.
	FindAdminByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// AdminRepositoryFacade combines all admin-related repository interfaces.
type AdminRepositoryFacade interface {
	AdminReader
}

// ReportingRepository defines aggregate queries for the admin dashboard.
type ReportingRepository interface {
	// GetDashboardStats computes user/balance/transaction aggregates.
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
