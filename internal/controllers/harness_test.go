package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/middleware"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
	"ereport-admin/pkg/validation"
	"ereport-admin/web"
)

type fakeAuth struct {
	token     string
	session   *entities.Session
	loginErr  error
	profile   *entities.User
	loggedOut []string
}

func (f *fakeAuth) Login(_ context.Context, _ dto.LoginForm) (string, *entities.Session, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.session, nil
}

func (f *fakeAuth) Authenticate(context.Context, string) (*entities.Session, error) {
	return nil, apperrors.ErrSessionNotFound
}

func (f *fakeAuth) Logout(_ context.Context, sid string) error {
	f.loggedOut = append(f.loggedOut, sid)
	return nil
}

func (f *fakeAuth) Profile(context.Context) (*entities.User, error) {
	if f.profile == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return f.profile, nil
}

type fakeResources[E entities.Entity] struct {
	items     []E
	count     int
	err       error
	deleteErr error
	created   interface{}
	updated   []uint64
	deleted   []uint64
}

func (f *fakeResources[E]) Resource() string { return "bulletins" }

func (f *fakeResources[E]) List(_ context.Context, params utils.ListParams) (*services.ListResult[E], error) {
	if f.err != nil {
		return nil, f.err
	}
	count := f.count
	if count == 0 {
		count = len(f.items)
	}
	return &services.ListResult[E]{Items: f.items, Paginator: utils.NewPaginator(count, params), Params: params}, nil
}

func (f *fakeResources[E]) Find(context.Context, uint64) (*E, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeResources[E]) Create(_ context.Context, payload interface{}) (*E, error) {
	f.created = payload
	if f.err != nil {
		return nil, f.err
	}
	item := f.items[0]
	return &item, nil
}

func (f *fakeResources[E]) Update(ctx context.Context, id uint64, payload interface{}) (*E, error) {
	f.updated = append(f.updated, id)
	return f.Create(ctx, payload)
}

func (f *fakeResources[E]) Delete(_ context.Context, id uint64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeResources[E]) Options(context.Context, url.Values) ([]types.Option, error) {
	return nil, nil
}

func (f *fakeResources[E]) Count(context.Context) (int, error) { return f.count, f.err }

func newTestBase(auth *fakeAuth) *Base {
	return NewBase(
		authz.NewDefaultGatekeeper(),
		flash.NewStore("controllers-test-secret", false),
		auth,
		middleware.CookieConfig{TTL: time.Hour},
		zap.NewNop(),
	)
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	return e
}

// asRole подменяет AuthMiddleware: сессия пользователя с заданной ролью.
func asRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := &entities.Session{ID: "sid-1", User: entities.User{ID: 7, Username: "tester", Role: role, IsActive: true}}
			ctx := utils.WithUser(c.Request().Context(), s.ID, s.User.ID, s.User.Username, role)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(middleware.SessionContextKey, s)
			return next(c)
		}
	}
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPostForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPostJSON(e *echo.Echo, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// popFlashes читает flash-сообщения так, как их увидит следующий запрос.
func popFlashes(e *echo.Echo, rec *httptest.ResponseRecorder) []flash.Message {
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return flash.NewStore("controllers-test-secret", false).Pop(e.NewContext(next, httptest.NewRecorder()))
}

func sessionCookieCleared(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge < 0 {
			return true
		}
	}
	return false
}
