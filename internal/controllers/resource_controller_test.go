package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/apiclient"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/utils"
)

func bulletinsEcho(t *testing.T, role string, svc *fakeResources[entities.Bulletin], auth *fakeAuth) *echo.Echo {
	t.Helper()
	e := newTestEcho(t)
	cfg := BulletinConfig(utils.ListOptions{}, Sources{})
	ctrl := NewResourceController(newTestBase(auth), cfg, svc)

	g := e.Group("", asRole(role))
	g.GET("/bulletins", ctrl.List)
	g.GET("/bulletins/new", ctrl.New)
	g.POST("/bulletins", ctrl.Create)
	g.GET("/bulletins/:id/edit", ctrl.Edit)
	g.POST("/bulletins/:id", ctrl.Update)
	g.GET("/bulletins/:id/delete", ctrl.ConfirmDelete)
	g.POST("/bulletins/:id/delete", ctrl.Delete)
	return e
}

func sampleBulletins() []entities.Bulletin {
	return []entities.Bulletin{
		{ID: 3, Name: "Сводка по урожаю", Code: "HARVEST", Periodicity: "monthly", IsActive: true},
		{ID: 4, Name: "Цены на топливо", Code: "FUEL", Periodicity: "weekly"},
	}
}

func TestResourceController_ListRendersRowsAndActions(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins(), count: 45}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doGet(e, "/bulletins?page=2&periodicity=monthly")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Сводка по урожаю")
	assert.Contains(t, body, "Ежемесячно")
	assert.Contains(t, body, "/bulletins/3/structure")
	assert.Contains(t, body, "/bulletins/3/delete?return=")
	// ссылки пагинатора сохраняют фильтр
	assert.Contains(t, body, "/bulletins?page=3&amp;periodicity=monthly")
	assert.Contains(t, body, "21–40 из 45")
}

func TestResourceController_ViewerSeesNoActions(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleViewer, svc, &fakeAuth{})

	rec := doGet(e, "/bulletins")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "/bulletins/3/edit")
	assert.NotContains(t, body, "/bulletins/new")
	assert.NotContains(t, body, "/structure")
}

func TestResourceController_OutOfRangePageRedirectsToLast(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{count: 45}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doGet(e, "/bulletins?page=9&search=fuel")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bulletins?page=3&search=fuel", rec.Header().Get(echo.HeaderLocation))
}

func TestResourceController_ConfirmDeleteShowsName(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doGet(e, "/bulletins/3/delete?return=page%3D2")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Удалить «Сводка по урожаю»?")
	assert.Contains(t, body, `action="/bulletins/3/delete"`)
	assert.Contains(t, body, `href="/bulletins?page=2"`)
	assert.Empty(t, svc.deleted)
}

func TestResourceController_DeleteRedirectsBackToList(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins/3/delete", url.Values{"return": {"page=2"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bulletins?page=2", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []uint64{3}, svc.deleted)
}

func TestResourceController_DeleteFailureStillRedirects(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins(), deleteErr: apperrors.ErrUpstreamUnavailable}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins/3/delete", url.Values{})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bulletins", rec.Header().Get(echo.HeaderLocation))
}

func TestResourceController_CreateValidationErrorRerendersForm(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins", url.Values{"name": {"Новый"}, "code": {"bad code!"}, "periodicity": {"monthly"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Новый"`)
	assert.Contains(t, body, "has-error")
	assert.Nil(t, svc.created)
}

func TestResourceController_CreateSendsUncheckedCheckboxAsFalse(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins", url.Values{
		"name":        {"Новый"},
		"code":        {"NEW_1"},
		"periodicity": {"weekly"},
		"return":      {"search=x"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bulletins?search=x", rec.Header().Get(echo.HeaderLocation))
	form, ok := svc.created.(*dto.BulletinForm)
	require.True(t, ok)
	assert.Equal(t, "NEW_1", form.Code)
	assert.False(t, form.IsActive)
}

func TestResourceController_UpdateRedirectsBackWithSuccess(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins()}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins/3", url.Values{
		"name":        {"Сводка по урожаю 2"},
		"code":        {"HARVEST"},
		"periodicity": {"monthly"},
		"is_active":   {"true"},
		"return":      {"page=2"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bulletins?page=2", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []uint64{3}, svc.updated)
	form, ok := svc.created.(*dto.BulletinForm)
	require.True(t, ok)
	assert.Equal(t, "Сводка по урожаю 2", form.Name)

	msgs := popFlashes(e, rec)
	require.Len(t, msgs, 1)
	assert.Equal(t, flash.Success, msgs[0].Kind)
	assert.Equal(t, "Изменения сохранены", msgs[0].Text)
}

func TestResourceController_UpdateUpstreamFailureRerendersEditForm(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins(), err: apperrors.ErrUpstreamUnavailable}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins/3", url.Values{
		"name":        {"Черновик"},
		"code":        {"HARVEST"},
		"periodicity": {"monthly"},
		"return":      {"page=2"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/bulletins/3"`)
	assert.Contains(t, body, `value="Черновик"`, "введённые значения не теряются")
	assert.Contains(t, body, apperrors.ErrUpstreamUnavailable.Error())
	assert.Contains(t, body, `href="/bulletins?page=2"`)
	assert.Equal(t, []uint64{3}, svc.updated)
}

func TestResourceController_UpstreamFieldErrorsLandOnFields(t *testing.T) {
	apiErr := apiclient.NewAPIError(http.StatusBadRequest, "", map[string]string{"code": "Код уже занят"})
	svc := &fakeResources[entities.Bulletin]{items: sampleBulletins(), err: apiErr}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doPostForm(e, "/bulletins/3", url.Values{"name": {"X"}, "code": {"HARVEST"}, "periodicity": {"monthly"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Код уже занят")
}

func TestResourceController_BackendUnauthorizedDropsSession(t *testing.T) {
	auth := &fakeAuth{}
	svc := &fakeResources[entities.Bulletin]{err: apperrors.ErrUnauthorized}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, auth)

	rec := doGet(e, "/bulletins?page=2")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next="+url.QueryEscape("/bulletins?page=2"), rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"sid-1"}, auth.loggedOut)
	assert.True(t, sessionCookieCleared(rec))
}

func TestResourceController_UnknownIDIs404(t *testing.T) {
	svc := &fakeResources[entities.Bulletin]{}
	e := bulletinsEcho(t, authz.RoleAdmin, svc, &fakeAuth{})

	rec := doGet(e, "/bulletins/abc/edit")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
