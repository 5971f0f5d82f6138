package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ereport-admin/internal/events"
	"ereport-admin/internal/repositories"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/eventbus"
)

// CountCacheListener сбрасывает закешированный счётчик плитки, когда
// пользователь меняет коллекцию.
type CountCacheListener struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewCountCacheListener(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *CountCacheListener {
	return &CountCacheListener{cache: cache, logger: logger}
}

func (l *CountCacheListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ResourceChangedName, l.Handle)
}

func (l *CountCacheListener) Handle(ctx context.Context, event eventbus.Event) error {
	changed, ok := event.(events.ResourceChanged)
	if !ok {
		return nil
	}
	key := services.CountCacheKey(changed.Resource, changed.ActorID)
	if err := l.cache.Del(ctx, key); err != nil {
		return fmt.Errorf("сброс счётчика %s: %w", key, err)
	}
	l.logger.Debug("Счётчик плитки сброшен", zap.String("key", key), zap.String("action", changed.Action))
	return nil
}
