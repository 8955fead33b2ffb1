package service

import (
	"context"
	"encoding/json"
	"time"

	"venus_handbook_backend/pkg/filter"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// cachedResolve 先查 Redis，未命中时重算筛选项目录并回写。
// Redis 不可用时直接回源，目录页不因缓存故障而不可用。
func cachedResolve(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, compute func() (filter.ResolvedConfig, error)) (filter.ResolvedConfig, error) {
	if rdb != nil {
		raw, err := rdb.Get(ctx, key).Bytes()
		if err == nil {
			var rc filter.ResolvedConfig
			if err := json.Unmarshal(raw, &rc); err == nil {
				return rc, nil
			}
			// 缓存内容损坏，当未命中处理
			rdb.Del(ctx, key)
		} else if err != redis.Nil {
			zap.L().Warn("filter catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	rc, err := compute()
	if err != nil {
		return filter.ResolvedConfig{}, err
	}

	if rdb != nil {
		if raw, err := json.Marshal(rc); err == nil {
			if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
				zap.L().Warn("filter catalog cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return rc, nil
}

// invalidateCatalog 条目增删改后清掉对应的筛选项缓存
func invalidateCatalog(ctx context.Context, rdb *redis.Client, key string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		zap.L().Warn("filter catalog cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
