package services

import (
	portsrepo "github.com/SscSPs/savr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/platform/config"
	"github.com/SscSPs/savr_backend/internal/platform/redisstore"
)

// NewServiceContainer wires the repository provider into the full service
// graph. statsCache may be nil when redis is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, statsCache *redisstore.StatsCache) *portssvc.ServiceContainer {
	notifier := NewExpoPushNotifier(cfg.ExpoPushURL)

	userSvc := NewUserService(repos.UserRepo)
	savingsSvc := NewSavingsService(repos.UserRepo, repos.LedgerRepo, WithPushNotifier(notifier))
	adminSvc := NewAdminService(repos.AdminRepo, repos.UserRepo, repos.LedgerRepo, repos.ReportingRepo, statsCache)
	tokenSvc := NewTokenService(cfg, userSvc)

	return &portssvc.ServiceContainer{
		User:    userSvc,
		Savings: savingsSvc,
		Admin:   adminSvc,
		Token:   tokenSvc,
	}
}
