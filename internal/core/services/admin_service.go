package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/savr_backend/internal/apperrors"
	"github.com/SscSPs/savr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/middleware"
	"github.com/SscSPs/savr_backend/internal/platform/redisstore"
	"github.com/SscSPs/savr_backend/internal/utils"
)

type adminService struct {
	adminRepo     portsrepo.AdminRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
	statsCache    *redisstore.StatsCache
}

// NewAdminService creates a new AdminService. statsCache may be nil, in which
// case dashboard stats always hit the database.
func NewAdminService(
	adminRepo portsrepo.AdminRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	reportingRepo portsrepo.ReportingRepository,
	statsCache *redisstore.StatsCache,
) portssvc.AdminSvcFacade {
	return &adminService{
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
		statsCache:    statsCache,
	}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// AuthenticateAdmin authenticates an admin with email and password.
func (s *adminService) AuthenticateAdmin(ctx context.Context, email, password string) (*domain.Admin, error) {
	admin, err := s.adminRepo.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return admin, nil
}

// ListUsers returns a page of users, newest first.
func (s *adminService) ListUsers(ctx context.Context, page, limit int, search string) (*domain.UserPage, error) {
	page, limit = clampPaging(page, limit)

	offset := (page - 1) * limit
	users, total, err := s.userRepo.ListUsers(ctx, limit, offset, search)
	if err != nil {
		return nil, err
	}

	return &domain.UserPage{
		Users:       users,
		Total:       total,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// GetUserByID retrieves a single user projection.
func (s *adminService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListTransactions returns a page of ledger entries across users. An empty
// userID means no filter.
func (s *adminService) ListTransactions(ctx context.Context, userID string, page, limit int) (*domain.TransactionWithUserPage, error) {
	page, limit = clampPaging(page, limit)

	offset := (page - 1) * limit
	transactions, total, err := s.ledgerRepo.ListTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionWithUserPage{
		Transactions: transactions,
		Total:        total,
		TotalPages:   totalPages(total, limit),
		CurrentPage:  page,
	}, nil
}

// GetDashboardStats returns the aggregate dashboard projection, served from
// the stats cache when fresh. Cache failures degrade to a database read.
func (s *adminService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := s.statsCache.Get(ctx)
	if err != nil {
		logger.Warn("Stats cache read failed", slog.String("error", err.Error()))
	}
	if cached != nil {
		return cached, nil
	}

	stats, err := s.reportingRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.Set(ctx, stats); err != nil {
		logger.Warn("Stats cache write failed", slog.String("error", err.Error()))
	}

	return stats, nil
}

// clampPaging normalizes page/limit to their allowed ranges.
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return page, limit
}
