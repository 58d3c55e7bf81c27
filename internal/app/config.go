package app

import (
	"strings"

	"github.com/lumilearn/lumilearn-backend/internal/platform/envutil"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
)

type Config struct {
	ServiceName  string
	Environment  string
	Version      string
	Port         string
	AllowOrigins []string
	Storage      storage.ProviderConfig
}

func LoadConfig(log *logger.Logger) Config {
	storageMode := envutil.Str("CORE_STORAGE_MODE", string(storage.ModeSQLite), log)
	sqlitePath := envutil.Str("SQLITE_PATH", "lumilearn.db", log)
	redisAddr := envutil.Str("REDIS_ADDR", "", log)
	port := envutil.Str("PORT", "8080", log)
	origins := envutil.Str("CORS_ALLOW_ORIGINS", "", log)

	cfg := Config{
		ServiceName: "lumilearn-core",
		Environment: envutil.Str("APP_ENV", "development", log),
		Version:     envutil.Str("APP_VERSION", "dev", log),
		Port:        port,
		Storage: storage.ProviderConfig{
			Mode:       storage.Mode(storageMode),
			SQLitePath: sqlitePath,
			RedisAddr:  redisAddr,
		},
	}
	if origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}
	return cfg
}
