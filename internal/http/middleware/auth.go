package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/people-backend/internal/http/response"
	"github.com/yungbote/people-backend/internal/platform/ctxutil"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/services"
)

const bearerChallenge = `Bearer realm="people"`

var (
	errUnauthenticated = errors.New("missing or invalid token")
	errNoSubject       = errors.New("token carries no subject")
)

// AuthMiddleware guards /api/v1 routes with the bearer tokens issued by
// POST /api/v1/auth/login.
type AuthMiddleware struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), auth: auth}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			am.challenge(c)
			return
		}
		ctx, err := am.auth.SetContextFromToken(c.Request.Context(), raw)
		if err != nil {
			am.log.Debug("bearer token rejected", "request_id", ctxutil.RequestID(ctx), "error", err)
			am.challenge(c)
			return
		}
		if p := ctxutil.GetPrincipal(ctx); p == nil || p.Subject == "" {
			response.RespondError(c, http.StatusForbidden, "forbidden", errNoSubject)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", bearerChallenge)
	response.RespondError(c, http.StatusUnauthorized, "unauthorized", errUnauthenticated)
	c.Abort()
}

// bearerToken accepts "Bearer <token>" with any scheme casing.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
