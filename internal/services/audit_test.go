package services

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ereport-admin/internal/entities"
	"ereport-admin/internal/events"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/eventbus"
	"ereport-admin/pkg/utils"
)

func TestAuditService_RecordTakesActorFromContext(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, zap.NewNop())
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ctx := utils.WithUser(context.Background(), "sid", 7, "ivanov", "admin")
	svc.Record(ctx, "users", ActionDelete, idPtr(3), apperrors.ErrForbidden)

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, uint64(7), e.ActorID)
	assert.Equal(t, "ivanov", e.ActorName)
	assert.Equal(t, "users", e.Resource)
	assert.Equal(t, uint64(3), *e.ObjectID)
	assert.False(t, e.Success)
	assert.Equal(t, apperrors.ErrForbidden.Error(), e.Message)
	assert.Equal(t, fixed, e.CreatedAt)
}

func TestAuditService_RecordSurvivesCancelledRequest(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, "bulletins", ActionCreate, nil, nil)

	require.Len(t, repo.entries, 1)
	assert.True(t, repo.entries[0].Success)
}

func TestAuditService_RecordSwallowsStorageErrors(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("connection refused")}
	svc := NewAuditService(repo, nil, zap.NewNop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "users", ActionUpdate, idPtr(1), nil)
	})
}

type recordingBus struct {
	published []eventbus.Event
}

func (b *recordingBus) Publish(_ context.Context, event eventbus.Event) {
	b.published = append(b.published, event)
}

func TestAuditService_PublishesOnlySuccessfulChanges(t *testing.T) {
	bus := &recordingBus{}
	svc := NewAuditService(&fakeAuditRepo{}, bus, zap.NewNop())
	ctx := utils.WithUser(context.Background(), "sid", 7, "ivanov", "admin")

	svc.Record(ctx, "users", ActionDelete, idPtr(3), apperrors.ErrForbidden)
	svc.Record(ctx, "users", ActionUpdate, idPtr(3), nil)

	require.Len(t, bus.published, 1)
	changed, ok := bus.published[0].(events.ResourceChanged)
	require.True(t, ok)
	assert.Equal(t, "users", changed.Resource)
	assert.Equal(t, ActionUpdate, changed.Action)
	assert.Equal(t, uint64(7), changed.ActorID)
}

func TestAuditService_ListParsesFilters(t *testing.T) {
	repo := &fakeAuditRepo{entries: []entities.AuditEntry{{ID: 1}}}
	svc := NewAuditService(repo, nil, zap.NewNop())

	q := url.Values{"resource": {"users"}, "actor": {"12"}, "success": {"false"}, "page": {"3"}}
	params := utils.ParseListParams(q, utils.ListOptions{DefaultPageSize: 10, Filters: AuditFilters})
	res, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "users", repo.filter.Resource)
	assert.Equal(t, uint64(12), repo.filter.ActorID)
	require.NotNil(t, repo.filter.Success)
	assert.False(t, *repo.filter.Success)
	assert.Equal(t, uint64(10), repo.filter.Limit)
	assert.Equal(t, uint64(20), repo.filter.Offset)
	assert.Len(t, res.Items, 1)
}

func TestIDPtr(t *testing.T) {
	assert.Nil(t, idPtr(0))
	assert.Equal(t, uint64(5), *idPtr(5))
}
