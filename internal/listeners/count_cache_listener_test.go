package listeners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"ereport-admin/internal/events"
	"ereport-admin/internal/repositories"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/eventbus"
)

type fakeCache struct {
	deleted []string
	delErr  error
}

func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (f *fakeCache) Get(context.Context, string) (string, error) {
	return "", repositories.ErrCacheMiss
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return f.delErr
}

type otherEvent struct{}

func (otherEvent) Name() string { return events.ResourceChangedName }

func TestCountCacheListener_DropsActorCounter(t *testing.T) {
	cache := &fakeCache{}
	bus := eventbus.New(zap.NewNop())
	NewCountCacheListener(cache, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.ResourceChanged{Resource: "users", Action: services.ActionCreate, ActorID: 7})
	bus.Wait()

	assert.Equal(t, []string{services.CountCacheKey("users", 7)}, cache.deleted)
}

func TestCountCacheListener_IgnoresForeignPayload(t *testing.T) {
	cache := &fakeCache{}
	l := NewCountCacheListener(cache, zap.NewNop())

	assert.NoError(t, l.Handle(context.Background(), otherEvent{}))
	assert.Empty(t, cache.deleted)
}

func TestCountCacheListener_ReportsCacheFailure(t *testing.T) {
	cache := &fakeCache{delErr: errors.New("redis down")}
	l := NewCountCacheListener(cache, zap.NewNop())

	err := l.Handle(context.Background(), events.ResourceChanged{Resource: "users", ActorID: 1})
	assert.ErrorContains(t, err, "redis down")
}
