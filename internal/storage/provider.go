package storage

import (
	"fmt"
	"strings"

	"github.com/lumilearn/lumilearn-backend/internal/data/db"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
)

type Mode string

const (
	ModeMemory   Mode = "memory"
	ModeSQLite   Mode = "sqlite"
	ModePostgres Mode = "postgres"
	ModeRedis    Mode = "redis"
)

func IsSupportedMode(m Mode) bool {
	switch m {
	case ModeMemory, ModeSQLite, ModePostgres, ModeRedis:
		return true
	}
	return false
}

type BootstrapErrorCode string

const (
	BootstrapErrorInvalidMode   BootstrapErrorCode = "invalid_mode"
	BootstrapErrorConnectFailed BootstrapErrorCode = "connect_failed"
)

type BootstrapError struct {
	Code  BootstrapErrorCode
	Mode  string
	Cause error
}

func (e *BootstrapError) Error() string {
	if e == nil {
		return "storage bootstrap failed"
	}
	return fmt.Sprintf("storage bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *BootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ProviderConfig selects and parameterizes the adapter backend.
type ProviderConfig struct {
	Mode       Mode
	SQLitePath string
	RedisAddr  string
}

// ResolveAdapter constructs the adapter for the configured mode.
// sqlite is the default for the local single-profile deployment;
// postgres and redis exist for hosted setups sharing infrastructure.
func ResolveAdapter(log *logger.Logger, cfg ProviderConfig) (Adapter, error) {
	mode := Mode(strings.TrimSpace(strings.ToLower(string(cfg.Mode))))
	if mode == "" {
		mode = ModeSQLite
	}
	if !IsSupportedMode(mode) {
		err := &BootstrapError{
			Code:  BootstrapErrorInvalidMode,
			Mode:  string(mode),
			Cause: fmt.Errorf("unsupported storage mode %q", mode),
		}
		log.Error("Storage adapter selection failed", "mode", mode, "error_code", err.Code, "error", err)
		return nil, err
	}

	switch mode {
	case ModeMemory:
		log.Info("Storage adapter selected", "mode", mode)
		return NewMemoryAdapter(), nil

	case ModeSQLite:
		svc, err := db.NewSQLiteService(log, cfg.SQLitePath)
		if err != nil {
			return nil, bootstrapFailed(log, mode, err)
		}
		adapter, err := NewGormAdapter(svc.DB(), log)
		if err != nil {
			return nil, bootstrapFailed(log, mode, err)
		}
		log.Info("Storage adapter selected", "mode", mode, "path", cfg.SQLitePath)
		return adapter, nil

	case ModePostgres:
		svc, err := db.NewPostgresService(log)
		if err != nil {
			return nil, bootstrapFailed(log, mode, err)
		}
		adapter, err := NewGormAdapter(svc.DB(), log)
		if err != nil {
			return nil, bootstrapFailed(log, mode, err)
		}
		log.Info("Storage adapter selected", "mode", mode)
		return adapter, nil

	case ModeRedis:
		adapter, err := NewRedisAdapter(log, cfg.RedisAddr)
		if err != nil {
			return nil, bootstrapFailed(log, mode, err)
		}
		log.Info("Storage adapter selected", "mode", mode, "addr", cfg.RedisAddr)
		return adapter, nil
	}

	// unreachable, IsSupportedMode covers the switch
	return nil, &BootstrapError{Code: BootstrapErrorInvalidMode, Mode: string(mode)}
}

func bootstrapFailed(log *logger.Logger, mode Mode, cause error) error {
	err := &BootstrapError{
		Code:  BootstrapErrorConnectFailed,
		Mode:  string(mode),
		Cause: cause,
	}
	log.Error("Storage adapter bootstrap failed", "mode", mode, "error_code", err.Code, "error", cause)
	return err
}
