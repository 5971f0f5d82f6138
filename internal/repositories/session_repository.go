package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ereport-admin/internal/entities"
	apperrors "ereport-admin/pkg/errors"
)

type SessionRepositoryInterface interface {
	Save(ctx context.Context, session entities.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepository struct {
	cache CacheRepositoryInterface
}

func NewSessionRepository(cache CacheRepositoryInterface) SessionRepositoryInterface {
	return &SessionRepository{cache: cache}
}

func sessionKey(id string) string {
	return "ereport:session:" + id
}

func (r *SessionRepository) Save(ctx context.Context, session entities.Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}
	return r.cache.Set(ctx, sessionKey(session.ID), string(raw), ttl)
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*entities.Session, error) {
	raw, err := r.cache.Get(ctx, sessionKey(id))
	if errors.Is(err, ErrCacheMiss) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	var session entities.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Del(ctx, sessionKey(id))
}
