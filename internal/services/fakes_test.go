package services

import (
	"context"
	"net/url"
	"sync"
	"time"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	"ereport-admin/pkg/apiclient"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/utils"
)

type fakeRemote[E any] struct {
	items     []E
	count     int
	err       error
	lastQuery url.Values
	created   interface{}
	deleted   []uint64
}

func (f *fakeRemote[E]) List(_ context.Context, query url.Values) (*apiclient.Page[E], error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	count := f.count
	if count == 0 {
		count = len(f.items)
	}
	return &apiclient.Page[E]{Count: count, Results: f.items}, nil
}

func (f *fakeRemote[E]) Find(_ context.Context, id uint64) (*E, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeRemote[E]) Create(_ context.Context, payload interface{}) (*E, error) {
	f.created = payload
	if f.err != nil {
		return nil, f.err
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeRemote[E]) Update(_ context.Context, _ uint64, payload interface{}) (*E, error) {
	f.created = payload
	if f.err != nil {
		return nil, f.err
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeRemote[E]) Delete(_ context.Context, id uint64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote[E]) All(_ context.Context, query url.Values, limit int) ([]E, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeFields struct {
	fields    []entities.BulletinField
	reordered []dto.FieldOrder
	deleted   uint64
	created   *dto.BulletinFieldForm
	err       error
}

func (f *fakeFields) ListFields(context.Context, uint64) ([]entities.BulletinField, error) {
	out := make([]entities.BulletinField, len(f.fields))
	copy(out, f.fields)
	return out, nil
}

func (f *fakeFields) CreateField(_ context.Context, bulletinID uint64, form dto.BulletinFieldForm) (*entities.BulletinField, error) {
	f.created = &form
	if f.err != nil {
		return nil, f.err
	}
	return &entities.BulletinField{ID: 100, Bulletin: bulletinID, Label: form.Label, Order: form.Order}, nil
}

func (f *fakeFields) DeleteField(_ context.Context, _, fieldID uint64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = fieldID
	return nil
}

func (f *fakeFields) Reorder(_ context.Context, _ uint64, order []dto.FieldOrder) error {
	if f.err != nil {
		return f.err
	}
	f.reordered = order
	return nil
}

type auditCall struct {
	Resource string
	Action   string
	ObjectID *uint64
	Failed   bool
}

type fakeAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (f *fakeAudit) Record(_ context.Context, resource, action string, objectID *uint64, opErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{Resource: resource, Action: action, ObjectID: objectID, Failed: opErr != nil})
}

func (f *fakeAudit) List(context.Context, utils.ListParams) (*ListResult[entities.AuditEntry], error) {
	return &ListResult[entities.AuditEntry]{}, nil
}

type fakeAuditRepo struct {
	entries []entities.AuditEntry
	filter  repositories.AuditFilter
	err     error
}

func (f *fakeAuditRepo) Create(_ context.Context, entry entities.AuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, filter repositories.AuditFilter) ([]entities.AuditEntry, uint64, error) {
	f.filter = filter
	return f.entries, uint64(len(f.entries)), f.err
}

type fakeSessions struct {
	saved   map[string]entities.Session
	ttl     time.Duration
	saveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{saved: make(map[string]entities.Session)}
}

func (f *fakeSessions) Save(_ context.Context, s entities.Session, ttl time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[s.ID] = s
	f.ttl = ttl
	return nil
}

func (f *fakeSessions) Find(_ context.Context, id string) (*entities.Session, error) {
	s, ok := f.saved[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	delete(f.saved, id)
	return nil
}

type fakeAuthRepo struct {
	resp *dto.LoginResponse
	err  error
	me   *entities.User
}

func (f *fakeAuthRepo) Login(context.Context, string, string) (*dto.LoginResponse, error) {
	return f.resp, f.err
}

func (f *fakeAuthRepo) Me(context.Context) (*entities.User, error) {
	if f.me == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return f.me, nil
}
