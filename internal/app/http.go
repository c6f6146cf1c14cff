package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/people-backend/internal/http"
	httpH "github.com/yungbote/people-backend/internal/http/handlers"
	httpMW "github.com/yungbote/people-backend/internal/http/middleware"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	People *httpH.PeopleHandler
	Files  *httpH.FilesHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth:   httpH.NewAuthHandler(log, services.Auth),
		People: httpH.NewPeopleHandler(log, services.People, cfg.PublicBaseURL, cfg.Storage.MaxFileSizeBytes),
		Files:  httpH.NewFilesHandler(log, services.Storage),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, metrics *observability.Metrics, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.Storage.MaxFileSizeBytes,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		PeopleHandler:  handlers.People,
		FilesHandler:   handlers.Files,
		HealthHandler:  handlers.Health,
	})
}
