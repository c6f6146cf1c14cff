package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/people-backend/internal/platform/logger"
)

type Mode string

const (
	ModeLocal       Mode = "local"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
)

type Config struct {
	Mode             Mode
	Root             string
	Bucket           string
	KeyPrefix        string
	EmulatorHost     string
	MaxFileSizeBytes int64
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorInvalidEmulatorHost ConfigErrorCode = "invalid_emulator_host"
)

type ConfigError struct {
	Code ConfigErrorCode
	Mode string
	Host string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf("invalid STORAGE_MODE=%q (allowed: %q, %q, %q)", e.Mode, ModeLocal, ModeGCS, ModeGCSEmulator)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf("STORAGE_MODE=%q requires GCS_BUCKET_NAME", e.Mode)
	case ConfigErrorInvalidEmulatorHost:
		return fmt.Sprintf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", e.Host)
	default:
		return "invalid storage config"
	}
}

func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModeLocal:
		return nil
	case ModeGCS:
		if strings.TrimSpace(cfg.Bucket) == "" {
			return &ConfigError{Code: ConfigErrorMissingBucket, Mode: string(cfg.Mode)}
		}
		return nil
	case ModeGCSEmulator:
		if strings.TrimSpace(cfg.Bucket) == "" {
			return &ConfigError{Code: ConfigErrorMissingBucket, Mode: string(cfg.Mode)}
		}
		u, err := url.Parse(strings.TrimSpace(cfg.EmulatorHost))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &ConfigError{Code: ConfigErrorInvalidEmulatorHost, Host: cfg.EmulatorHost}
		}
		return nil
	default:
		return &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
}

// New builds the storage service for the configured backend.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		backend Backend
		err     error
	)
	switch cfg.Mode {
	case ModeLocal:
		backend, err = NewLocalBackend(cfg.Root)
	default:
		backend, err = NewGCSBackend(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	log.Info("File storage initialized",
		"mode", cfg.Mode,
		"root", cfg.Root,
		"bucket", cfg.Bucket,
		"max_file_size_bytes", Policy{MaxFileSizeBytes: cfg.MaxFileSizeBytes}.maxBytes(),
	)
	return NewService(log, backend, Policy{MaxFileSizeBytes: cfg.MaxFileSizeBytes}), nil
}
