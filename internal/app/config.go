package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/people-backend/internal/data/db"
	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/envutil"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

type Config struct {
	LogMode       string
	HTTPAddr      string
	PublicBaseURL string
	CORSOrigins   []string

	DB db.Config

	JWTSecretKey     string
	JWTIssuer        string
	JWTAudience      string
	AccessTokenTTL   time.Duration
	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string
	AuthRole         string

	Storage storage.Config

	RedisAddr        string
	RedisPassword    string
	LoginMaxAttempts int64
	LoginWindow      time.Duration
	SeedDemoData     bool
	ShutdownTimeout  time.Duration
	Otel             observability.OtelConfig
}

// fileValues holds the optional YAML layer. Keys use the environment
// variable names; a set environment variable always wins.
type fileValues map[string]string

func (f fileValues) String(name, def string) string {
	if v, ok := f[name]; ok && strings.TrimSpace(v) != "" {
		def = strings.TrimSpace(v)
	}
	return envutil.String(name, def)
}

func (f fileValues) Int64(name string, def int64) int64 {
	if v, ok := f[name]; ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			def = n
		}
	}
	return envutil.Int64(name, def)
}

func (f fileValues) Bool(name string, def bool) bool {
	if v, ok := f[name]; ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			def = true
		case "0", "false", "no", "off":
			def = false
		}
	}
	return envutil.Bool(name, def)
}

func (f fileValues) Seconds(name string, def time.Duration) time.Duration {
	return time.Duration(f.Int64(name, int64(def/time.Second))) * time.Second
}

func (f fileValues) List(name string) []string {
	raw := f.String(name, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadConfigFile(path string) (fileValues, error) {
	if strings.TrimSpace(path) == "" {
		return fileValues{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(fileValues, len(generic))
	for k, v := range generic {
		if v == nil {
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(k))] = fmt.Sprint(v)
	}
	return out, nil
}

// LoadConfig layers defaults, the YAML file named by PEOPLE_CONFIG_FILE and
// the environment (optionally preloaded from .env), in increasing priority.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env file", "error", err)
	}
	f, err := loadConfigFile(os.Getenv("PEOPLE_CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogMode:       f.String("LOG_MODE", "development"),
		HTTPAddr:      f.String("HTTP_ADDR", ":8080"),
		PublicBaseURL: f.String("PUBLIC_BASE_URL", "http://localhost:8080"),
		CORSOrigins:   f.List("CORS_ALLOWED_ORIGINS"),
		DB: db.Config{
			Driver:           f.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     f.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     f.String("POSTGRES_PORT", "5432"),
			PostgresUser:     f.String("POSTGRES_USER", "postgres"),
			PostgresPassword: f.String("POSTGRES_PASSWORD", ""),
			PostgresName:     f.String("POSTGRES_NAME", "people"),
			PostgresSSLMode:  f.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       f.String("SQLITE_PATH", "people.db"),
			Verbose:          f.Bool("DB_VERBOSE", false),
		},
		JWTSecretKey:     f.String("JWT_SECRET_KEY", ""),
		JWTIssuer:        f.String("JWT_ISSUER", "people-backend"),
		JWTAudience:      f.String("JWT_AUDIENCE", "people-api"),
		AccessTokenTTL:   f.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		AuthUsername:     f.String("AUTH_USERNAME", "admin"),
		AuthPassword:     f.String("AUTH_PASSWORD", ""),
		AuthPasswordHash: f.String("AUTH_PASSWORD_HASH", ""),
		AuthRole:         f.String("AUTH_ROLE", "admin"),
		Storage: storage.Config{
			Mode:             storage.Mode(strings.ToLower(f.String("STORAGE_MODE", string(storage.ModeLocal)))),
			Root:             f.String("STORAGE_ROOT", "uploads"),
			Bucket:           f.String("GCS_BUCKET_NAME", ""),
			KeyPrefix:        f.String("GCS_KEY_PREFIX", ""),
			EmulatorHost:     f.String("STORAGE_EMULATOR_HOST", ""),
			MaxFileSizeBytes: f.Int64("STORAGE_MAX_FILE_SIZE_BYTES", storage.DefaultMaxFileSizeBytes),
		},
		RedisAddr:        f.String("REDIS_ADDR", ""),
		RedisPassword:    f.String("REDIS_PASSWORD", ""),
		LoginMaxAttempts: f.Int64("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      f.Seconds("LOGIN_WINDOW_SECONDS", 15*time.Minute),
		SeedDemoData:     f.Bool("SEED_DEMO_DATA", false),
		ShutdownTimeout:  f.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		Otel: observability.OtelConfig{
			Enabled:     f.Bool("OTEL_ENABLED", false),
			ServiceName: f.String("OTEL_SERVICE_NAME", "people-api"),
			Environment: f.String("OTEL_ENVIRONMENT", "development"),
			Version:     f.String("OTEL_SERVICE_VERSION", "dev"),
			Endpoint:    f.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(f.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    f.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		},
	}
	cfg.Otel.SampleRatio = 1
	if ratio, err := strconv.ParseFloat(f.String("OTEL_SAMPLER_RATIO", "1"), 64); err == nil {
		cfg.Otel.SampleRatio = ratio
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.AuthPassword == "" && c.AuthPasswordHash == "" {
		return fmt.Errorf("AUTH_PASSWORD or AUTH_PASSWORD_HASH is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}
