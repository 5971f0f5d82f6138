package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/apiclient"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/utils"
)

// ResourceConfig описывает страницы одного справочника: колонки списка,
// фильтры и поля формы.
type ResourceConfig[E entities.Entity, F dto.Form] struct {
	Resource    string
	BasePath    string
	Title       string
	NewTitle    string
	EditTitle   string
	ListOptions utils.ListOptions
	Search      bool
	Columns     []Column[E]
	Filters     []FilterSpec
	Lookups     map[string]OptionSource
	NewForm     func() F
	FromEntity  func(E) F
	Fields      func(F, Lookups) []FormField
	// Prepare вызывается перед проверкой формы; isNew — создание записи.
	Prepare func(form F, isNew bool)
	// RowLinks - дополнительные ссылки в строке списка.
	RowLinks func(item E, perms map[string]bool) []Link
}

type ResourceController[E entities.Entity, F dto.Form] struct {
	*Base
	cfg     ResourceConfig[E, F]
	service services.ResourceServiceInterface[E]
}

func NewResourceController[E entities.Entity, F dto.Form](base *Base, cfg ResourceConfig[E, F], service services.ResourceServiceInterface[E]) *ResourceController[E, F] {
	return &ResourceController[E, F]{Base: base, cfg: cfg, service: service}
}

func (ctrl *ResourceController[E, F]) perm(action string) string {
	return authz.Permission(ctrl.cfg.Resource, action)
}

func (ctrl *ResourceController[E, F]) List(c echo.Context) error {
	ctx := c.Request().Context()
	params := utils.ParseListParams(c.QueryParams(), ctrl.cfg.ListOptions)

	result, err := ctrl.service.List(ctx, params)
	if err != nil {
		return ctrl.fail(c, err)
	}
	// Например, после удаления последней записи на последней странице.
	if result.Paginator.OutOfRange() {
		return c.Redirect(http.StatusSeeOther, params.WithPage(result.Paginator.TotalPages).URL(ctrl.cfg.BasePath))
	}

	lookups, err := ctrl.loadLookups(ctx, ctrl.cfg.Lookups)
	if err != nil {
		return ctrl.fail(c, err)
	}

	perms := ctrl.gatekeeper.Set(ctrl.role(c))
	back := params.Encode()
	view := ListView{
		Title:     ctrl.cfg.Title,
		BasePath:  ctrl.cfg.BasePath,
		Search:    ctrl.cfg.Search,
		Headers:   buildHeaders(ctrl.cfg.Columns, params, ctrl.cfg.BasePath),
		Filters:   buildFilters(ctrl.cfg.Filters, params, lookups),
		Params:    params,
		Paginator: result.Paginator,
	}
	if perms[ctrl.perm("create")] {
		view.CreateURL = withReturn(ctrl.cfg.BasePath+"/new", back)
	}

	for _, item := range result.Items {
		id := item.GetID()
		row := TableRow{ID: id, Cells: buildCells(ctrl.cfg.Columns, item, lookups)}
		itemPath := ctrl.cfg.BasePath + "/" + strconv.FormatUint(id, 10)
		if ctrl.cfg.RowLinks != nil {
			row.Links = append(row.Links, ctrl.cfg.RowLinks(item, perms)...)
		}
		if perms[ctrl.perm("update")] {
			row.Links = append(row.Links, Link{Title: "Изменить", URL: withReturn(itemPath+"/edit", back)})
		}
		if perms[ctrl.perm("delete")] {
			row.Links = append(row.Links, Link{Title: "Удалить", URL: withReturn(itemPath+"/delete", back), Danger: true})
		}
		if len(row.Links) > 0 {
			view.HasActions = true
		}
		view.Rows = append(view.Rows, row)
	}
	fillPagination(&view)

	return ctrl.render(c, http.StatusOK, "list", ctrl.page(c, ctrl.cfg.Title, ctrl.cfg.BasePath, view))
}

func (ctrl *ResourceController[E, F]) New(c echo.Context) error {
	form := ctrl.cfg.NewForm()
	return ctrl.renderForm(c, http.StatusOK, form, nil, "", 0)
}

func (ctrl *ResourceController[E, F]) Create(c echo.Context) error {
	form, errs, err := ctrl.bindForm(c, true)
	if err != nil {
		return ctrl.renderForm(c, http.StatusBadRequest, form, nil, "Некорректные данные формы", 0)
	}
	if len(errs) > 0 {
		return ctrl.renderForm(c, http.StatusUnprocessableEntity, form, errs, "", 0)
	}

	item, err := ctrl.service.Create(c.Request().Context(), form)
	if err != nil {
		return ctrl.mutationFailed(c, form, err, 0)
	}
	ctrl.logger.Info("Запись создана через панель", zap.String("resource", ctrl.cfg.Resource), zap.Uint64("id", (*item).GetID()))
	return ctrl.redirect(c, flash.Success, "Запись «"+(*item).DisplayName()+"» создана", ctrl.listURL(c))
}

func (ctrl *ResourceController[E, F]) Edit(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	item, err := ctrl.service.Find(c.Request().Context(), id)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return ctrl.renderForm(c, http.StatusOK, ctrl.cfg.FromEntity(*item), nil, "", id)
}

func (ctrl *ResourceController[E, F]) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	form, errs, err := ctrl.bindForm(c, false)
	if err != nil {
		return ctrl.renderForm(c, http.StatusBadRequest, form, nil, "Некорректные данные формы", id)
	}
	if len(errs) > 0 {
		return ctrl.renderForm(c, http.StatusUnprocessableEntity, form, errs, "", id)
	}

	if _, err := ctrl.service.Update(c.Request().Context(), id, form); err != nil {
		return ctrl.mutationFailed(c, form, err, id)
	}
	return ctrl.redirect(c, flash.Success, "Изменения сохранены", ctrl.listURL(c))
}

func (ctrl *ResourceController[E, F]) ConfirmDelete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	item, err := ctrl.service.Find(c.Request().Context(), id)
	if err != nil {
		return ctrl.fail(c, err)
	}
	back := returnQuery(c.QueryParam("return"))
	view := ConfirmView{
		Title:     "Удаление",
		Message:   "Удалить «" + (*item).DisplayName() + "»? Действие нельзя отменить.",
		Action:    ctrl.cfg.BasePath + "/" + strconv.FormatUint(id, 10) + "/delete",
		CancelURL: withQuery(ctrl.cfg.BasePath, back),
		Return:    back,
	}
	return ctrl.render(c, http.StatusOK, "confirm", ctrl.page(c, view.Title, ctrl.cfg.BasePath, view))
}

func (ctrl *ResourceController[E, F]) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return ctrl.fail(c, err)
	}
	if err := ctrl.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return ctrl.dropSession(c)
		}
		return ctrl.redirect(c, flash.Error, "Не удалось удалить: "+apperrors.UserMessage(err), ctrl.listURL(c))
	}
	return ctrl.redirect(c, flash.Success, "Запись удалена", ctrl.listURL(c))
}

// bindForm заполняет чистую форму: значения по умолчанию NewForm
// не должны подменять невыбранные флажки.
func (ctrl *ResourceController[E, F]) bindForm(c echo.Context, isNew bool) (F, map[string]string, error) {
	form := blankForm[F]()
	if err := c.Bind(form); err != nil {
		ctrl.logger.Warn("Не удалось разобрать форму", zap.String("resource", ctrl.cfg.Resource), zap.Error(err))
		return form, nil, err
	}
	if ctrl.cfg.Prepare != nil {
		ctrl.cfg.Prepare(form, isNew)
	}
	form.Normalize()
	return form, ctrl.validate(c, form), nil
}

// mutationFailed показывает форму снова: ошибки полей от API ложатся на поля,
// общее сообщение уходит в уведомление.
func (ctrl *ResourceController[E, F]) mutationFailed(c echo.Context, form F, err error, id uint64) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return ctrl.dropSession(c)
	}
	var fieldErrs map[string]string
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		fieldErrs = apiErr.Fields
	}
	return ctrl.renderForm(c, apperrors.StatusCode(err), form, fieldErrs, apperrors.UserMessage(err), id)
}

func (ctrl *ResourceController[E, F]) renderForm(c echo.Context, status int, form F, errs map[string]string, message string, id uint64) error {
	lookups, err := ctrl.loadLookups(c.Request().Context(), ctrl.cfg.Lookups)
	if err != nil {
		return ctrl.fail(c, err)
	}

	back := returnQuery(c.QueryParam("return"))
	if back == "" {
		back = returnQuery(c.FormValue("return"))
	}

	view := FormView{
		Title:     ctrl.cfg.NewTitle,
		Action:    ctrl.cfg.BasePath,
		CancelURL: withQuery(ctrl.cfg.BasePath, back),
		Return:    back,
		Submit:    "Создать",
		Fields:    applyErrors(ctrl.cfg.Fields(form, lookups), errs),
		Error:     message,
	}
	if id != 0 {
		view.Title = ctrl.cfg.EditTitle
		view.Action = ctrl.cfg.BasePath + "/" + strconv.FormatUint(id, 10)
		view.Submit = "Сохранить"
	}

	p := ctrl.page(c, view.Title, ctrl.cfg.BasePath, view)
	if message != "" {
		p.Flashes = append(p.Flashes, flash.Message{Kind: flash.Error, Text: message})
	}
	return ctrl.render(c, status, "form", p)
}

func (ctrl *ResourceController[E, F]) listURL(c echo.Context) string {
	return withQuery(ctrl.cfg.BasePath, returnQuery(c.FormValue("return")))
}

func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

// blankForm создаёт нулевое значение формы; F — указатель на структуру.
func blankForm[F any]() F {
	var zero F
	return reflect.New(reflect.TypeOf(zero).Elem()).Interface().(F)
}

func applyErrors(fields []FormField, errs map[string]string) []FormField {
	for i := range fields {
		if msg, ok := errs[fields[i].Name]; ok {
			fields[i].Error = msg
		}
	}
	return fields
}
