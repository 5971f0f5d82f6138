package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ereport-admin/internal/repositories"
	"ereport-admin/pkg/utils"
)

type memoryCache struct {
	values map[string]string
	getErr error
	ttl    time.Duration
}

func newMemoryCache() *memoryCache { return &memoryCache{values: make(map[string]string)} }

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = fmt.Sprint(value)
	m.ttl = expiration
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type countingSource struct {
	n     int
	err   error
	calls int
}

func (s *countingSource) Count(context.Context) (int, error) {
	s.calls++
	return s.n, s.err
}

func TestCachedCounter_SecondCallHitsCache(t *testing.T) {
	cache := newMemoryCache()
	src := &countingSource{n: 42}
	counter := NewCachedCounter("users", src, cache, time.Minute, zap.NewNop())
	ctx := utils.WithUser(context.Background(), "sid", 7, "ivanov", "admin")

	for i := 0; i < 2; i++ {
		n, err := counter.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, n)
	}
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "42", cache.values[CountCacheKey("users", 7)])
	assert.Equal(t, time.Minute, cache.ttl)
}

func TestCachedCounter_ErrorsAreNotCached(t *testing.T) {
	cache := newMemoryCache()
	src := &countingSource{err: errors.New("api down")}
	counter := NewCachedCounter("users", src, cache, time.Minute, zap.NewNop())
	ctx := utils.WithUser(context.Background(), "sid", 7, "ivanov", "admin")

	_, err := counter.Count(ctx)
	assert.Error(t, err)
	assert.Empty(t, cache.values)
}

func TestCachedCounter_BrokenCacheFallsBackToSource(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("redis: connection refused")
	src := &countingSource{n: 3}
	counter := NewCachedCounter("users", src, cache, time.Minute, zap.NewNop())
	ctx := utils.WithUser(context.Background(), "sid", 7, "ivanov", "admin")

	n, err := counter.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, src.calls)
}

func TestCachedCounter_AnonymousBypassesCache(t *testing.T) {
	cache := newMemoryCache()
	src := &countingSource{n: 1}
	counter := NewCachedCounter("users", src, cache, time.Minute, zap.NewNop())

	_, err := counter.Count(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cache.values)
}
