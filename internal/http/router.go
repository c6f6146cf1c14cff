package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/people-backend/internal/http/handlers"
	httpMW "github.com/yungbote/people-backend/internal/http/middleware"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string
	// MaxUploadBytes bounds the multipart body kept in memory.
	MaxUploadBytes int64

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	PeopleHandler  *httpH.PeopleHandler
	FilesHandler   *httpH.FilesHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadBytes
	}
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestMeta())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.FilesHandler != nil {
		r.GET("/files/*path", cfg.FilesHandler.Serve)
	}

	api := r.Group("/api/v1")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.PeopleHandler != nil {
			protected.POST("/individuals", cfg.PeopleHandler.CreateIndividual)
			protected.POST("/individuals/:id/photo", cfg.PeopleHandler.UploadPhoto)
			protected.POST("/legal-entities", cfg.PeopleHandler.CreateLegalEntity)
			protected.POST("/legal-entities/:id/logo", cfg.PeopleHandler.UploadLogo)
			protected.GET("/people/search", cfg.PeopleHandler.SearchPeople)
			protected.GET("/people/:id", cfg.PeopleHandler.GetPerson)
		}
	}

	return r
}
