package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/data/aggregates"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
	"github.com/yungbote/people-backend/internal/services"
)

type Services struct {
	Audit   services.AuditService
	Auth    services.AuthService
	People  services.PeopleService
	Storage storage.Service
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	repos Repos,
	clients *Clients,
	storageSvc storage.Service,
	metrics *observability.Metrics,
) (Services, error) {
	log.Info("Wiring services...")

	auditSvc := services.NewAuditService(log, repos.Audit)

	passwordHash := strings.TrimSpace(cfg.AuthPasswordHash)
	if passwordHash == "" {
		hashed, err := services.HashPassword(cfg.AuthPassword, 0)
		if err != nil {
			return Services{}, err
		}
		passwordHash = hashed
	}
	authSvc, err := services.NewAuthService(log, services.AuthConfig{
		Username:     cfg.AuthUsername,
		PasswordHash: passwordHash,
		Role:         cfg.AuthRole,
		SecretKey:    cfg.JWTSecretKey,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
		AccessTTL:    cfg.AccessTokenTTL,
	}, clients.loginLimiter(log, cfg), auditSvc, metrics)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	deps := aggregates.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: aggregates.NewGormTxRunner(db),
		Hooks:  aggregates.MultiHooks(aggregates.NewObservabilityHooks(metrics), aggregates.NewLoggingHooks(log)),
	}
	peopleSvc := services.NewPeopleService(db, log, deps, repos.PersonRead, storageSvc, auditSvc, metrics)

	return Services{
		Audit:   auditSvc,
		Auth:    authSvc,
		People:  peopleSvc,
		Storage: storageSvc,
	}, nil
}
