package pgsql

import (
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, userRepo)
	adminRepo := newPgxAdminRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		LedgerRepo:    ledgerRepo,
		AdminRepo:     adminRepo,
		ReportingRepo: reportingRepo,
	}
}
