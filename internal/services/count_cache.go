package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ereport-admin/internal/repositories"
	"ereport-admin/pkg/utils"
)

// CountCacheKey — ключ счётчика плитки. API может ограничивать выборку
// пользователем, поэтому кеш у каждого свой.
func CountCacheKey(resource string, userID uint64) string {
	return fmt.Sprintf("dashboard:count:%s:%d", resource, userID)
}

// CachedCounter держит счётчик плитки в Redis до ttl или до изменения
// коллекции этим же пользователем.
type CachedCounter struct {
	resource string
	source   Counter
	cache    repositories.CacheRepositoryInterface
	ttl      time.Duration
	logger   *zap.Logger
}

func NewCachedCounter(resource string, source Counter, cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *CachedCounter {
	return &CachedCounter{resource: resource, source: source, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedCounter) Count(ctx context.Context) (int, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return c.source.Count(ctx)
	}
	key := CountCacheKey(c.resource, userID)

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			return n, nil
		}
	case !errors.Is(err, repositories.ErrCacheMiss):
		c.logger.Warn("Кеш счётчиков недоступен", zap.String("key", key), zap.Error(err))
	}

	n, err := c.source.Count(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.cache.Set(ctx, key, n, c.ttl); err != nil {
		c.logger.Warn("Не удалось сохранить счётчик", zap.String("key", key), zap.Error(err))
	}
	return n, nil
}
