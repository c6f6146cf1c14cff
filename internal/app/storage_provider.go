package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/people-backend/internal/observability"
	"github.com/yungbote/people-backend/internal/platform/logger"
	"github.com/yungbote/people-backend/internal/platform/storage"
)

var newStorageService = storage.New

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode         StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket       StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorInvalidEmulatorHost StorageProviderBootstrapErrorCode = "invalid_emulator_host"
	StorageProviderBootstrapErrorConnectFailed       StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "file storage bootstrap failed"
	}
	return fmt.Sprintf(
		"file storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func resolveStorageService(ctx context.Context, log *logger.Logger, metrics *observability.Metrics, cfg storage.Config) (storage.Service, error) {
	log.Info(
		"Selecting file storage provider",
		"mode", cfg.Mode,
		"root", cfg.Root,
		"bucket", cfg.Bucket,
		"emulator_host", cfg.EmulatorHost,
	)
	svc, err := newStorageService(ctx, log, cfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(cfg, err)
		code := storageProviderBootstrapErrorCode(classified)
		metrics.ObserveStorageBootstrap(string(cfg.Mode), "error", string(code))
		log.Error(
			"File storage provider bootstrap failed",
			"mode", cfg.Mode,
			"emulator_host", cfg.EmulatorHost,
			"error_code", code,
			"error", classified,
		)
		return nil, classified
	}
	metrics.ObserveStorageBootstrap(string(cfg.Mode), "success", "none")
	return svc, nil
}

func classifyStorageProviderBootstrapError(cfg storage.Config, err error) error {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *storage.ConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Code {
		case storage.ConfigErrorInvalidMode:
			code = StorageProviderBootstrapErrorInvalidMode
		case storage.ConfigErrorMissingBucket:
			code = StorageProviderBootstrapErrorMissingBucket
		case storage.ConfigErrorInvalidEmulatorHost:
			code = StorageProviderBootstrapErrorInvalidEmulatorHost
		}
	}
	return &StorageProviderBootstrapError{
		Code:         code,
		Mode:         string(cfg.Mode),
		EmulatorHost: cfg.EmulatorHost,
		Cause:        err,
	}
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) {
		if bootstrapErr.Code != "" {
			return bootstrapErr.Code
		}
	}
	return StorageProviderBootstrapErrorConnectFailed
}
