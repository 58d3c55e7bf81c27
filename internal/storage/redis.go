package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
)

// RedisAdapter keeps profile partitions under core:<profile>:<key>.
type RedisAdapter struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisAdapter(log *logger.Logger, addr string) (*RedisAdapter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisAdapter{
		log: log.With("adapter", "RedisAdapter"),
		rdb: rdb,
	}, nil
}

func (a *RedisAdapter) key(profileID, key string) string {
	return fmt.Sprintf("core:%s:%s", profileID, key)
}

func (a *RedisAdapter) Get(ctx context.Context, profileID, key string) (json.RawMessage, bool, error) {
	raw, err := a.rdb.Get(ctx, a.key(profileID, key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(raw), true, nil
}

func (a *RedisAdapter) Set(ctx context.Context, profileID, key string, value json.RawMessage) error {
	return a.rdb.Set(ctx, a.key(profileID, key), []byte(value), 0).Err()
}

func (a *RedisAdapter) Delete(ctx context.Context, profileID, key string) error {
	return a.rdb.Del(ctx, a.key(profileID, key)).Err()
}

func (a *RedisAdapter) Exists(ctx context.Context, profileID, key string) (bool, error) {
	n, err := a.rdb.Exists(ctx, a.key(profileID, key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a *RedisAdapter) Clear(ctx context.Context, profileID string) error {
	pattern := fmt.Sprintf("core:%s:*", profileID)
	iter := a.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := a.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (a *RedisAdapter) Close() error {
	return a.rdb.Close()
}
