package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/ctxutil"
	"github.com/yungbote/people-backend/internal/platform/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const tokenLeeway = 30 * time.Second

type AuthConfig struct {
	Username     string
	PasswordHash string
	Role         string
	SecretKey    string
	Issuer       string
	Audience     string
	AccessTTL    time.Duration
}

type JWTClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AccessToken struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

type AuthService interface {
	Login(ctx context.Context, username, password, clientIP string) (*AccessToken, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log     *logger.Logger
	cfg     AuthConfig
	limiter LoginLimiter
	audit   AuditService
	metrics *observability.Metrics
	now     func() time.Time
}

// HashPassword produces the bcrypt hash stored in AUTH_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func NewAuthService(
	log *logger.Logger,
	cfg AuthConfig,
	limiter LoginLimiter,
	audit AuditService,
	metrics *observability.Metrics,
) (AuthService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if strings.TrimSpace(cfg.Username) == "" || strings.TrimSpace(cfg.PasswordHash) == "" {
		return nil, fmt.Errorf("auth username and password are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.Role == "" {
		cfg.Role = "admin"
	}
	if limiter == nil {
		limiter = NewMemoryLoginLimiter(LimiterConfig{}, nil)
	}
	return &authService{
		log:     log.With("service", "AuthService"),
		cfg:     cfg,
		limiter: limiter,
		audit:   audit,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

func (as *authService) Login(ctx context.Context, username, password, clientIP string) (*AccessToken, error) {
	key := LimiterKey(username, clientIP)
	locked, err := as.limiter.Locked(ctx, key)
	if err != nil {
		// Limiter outages must not lock everyone out.
		as.log.Warn("login limiter unavailable", "error", err)
	}
	if locked {
		as.metrics.IncLoginAttempt("throttled")
		return nil, ErrTooManyAttempts
	}

	if !as.credentialsMatch(username, password) {
		if _, err := as.limiter.RecordFailure(ctx, key); err != nil {
			as.log.Warn("record login failure", "error", err)
		}
		as.metrics.IncLoginAttempt("rejected")
		as.recordAudit(ctx, AuditLoginFailed, map[string]any{"client_ip": clientIP})
		return nil, ErrInvalidCredentials
	}
	if err := as.limiter.Reset(ctx, key); err != nil {
		as.log.Warn("reset login limiter", "error", err)
	}

	token, err := as.generateAccessToken()
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	as.metrics.IncLoginAttempt("success")
	as.recordAudit(ctx, AuditLoginSucceeded, nil)
	return &AccessToken{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(as.cfg.AccessTTL / time.Second),
	}, nil
}

func (as *authService) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(username))),
		[]byte(strings.ToLower(strings.TrimSpace(as.cfg.Username))),
	) == 1
	// Always run bcrypt so timing does not reveal which half failed.
	passOK := bcrypt.CompareHashAndPassword([]byte(as.cfg.PasswordHash), []byte(password)) == nil
	return userOK && passOK
}

func (as *authService) recordAudit(ctx context.Context, action string, extra map[string]any) {
	if as.audit == nil {
		return
	}
	as.audit.Record(ctx, action, AuditEntityCredential, nil, extra)
}

func (as *authService) generateAccessToken() (string, error) {
	now := as.now()
	claims := JWTClaims{
		Role: as.cfg.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   as.cfg.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.AccessTTL)),
		},
	}
	if as.cfg.Issuer != "" {
		claims.Issuer = as.cfg.Issuer
	}
	if as.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{as.cfg.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.SecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if strings.TrimSpace(tokenString) == "" {
		return ctx, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(as.now),
	}
	if as.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(as.cfg.Issuer))
	}
	if as.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(as.cfg.Audience))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.cfg.SecretKey), nil
	}, opts...)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ctx, ErrInvalidToken
	}
	return ctxutil.WithPrincipal(ctx, &ctxutil.Principal{
		Subject: claims.Subject,
		Role:    claims.Role,
		TokenID: claims.ID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.AccessTTL
}
