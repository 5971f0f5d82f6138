package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
)

var auditResourceOptions = []types.Option{
	{Value: "bulletins", Label: "Бюллетени"},
	{Value: "classificators", Label: "Классификаторы"},
	{Value: "departments", Label: "Подразделения"},
	{Value: "organizations", Label: "Организации"},
	{Value: "users", Label: "Пользователи"},
}

var auditActionTitles = map[string]string{
	services.ActionCreate:      "Создание",
	services.ActionUpdate:      "Изменение",
	services.ActionDelete:      "Удаление",
	services.ActionFieldCreate: "Новое поле",
	services.ActionFieldDelete: "Удаление поля",
	services.ActionReorder:     "Порядок полей",
}

var auditColumns = []Column[entities.AuditEntry]{
	{Title: "Время", Value: func(e entities.AuditEntry, _ Lookups) string { return e.CreatedAt.Local().Format("02.01.2006 15:04:05") }},
	{Title: "Пользователь", Value: func(e entities.AuditEntry, _ Lookups) string { return e.ActorName }},
	{Title: "Раздел", Value: func(e entities.AuditEntry, l Lookups) string { return l.Label("resource", e.Resource) }},
	{Title: "Действие", Value: func(e entities.AuditEntry, _ Lookups) string {
		if t, ok := auditActionTitles[e.Action]; ok {
			return t
		}
		return e.Action
	}},
	{Title: "Запись", Value: func(e entities.AuditEntry, _ Lookups) string {
		if e.ObjectID == nil {
			return "—"
		}
		return strconv.FormatUint(*e.ObjectID, 10)
	}},
	{Title: "Результат", Value: func(e entities.AuditEntry, _ Lookups) string {
		if e.Success {
			return "Успешно"
		}
		return "Ошибка: " + e.Message
	}},
}

type AuditController struct {
	*Base
	service services.AuditServiceInterface
	list    utils.ListOptions
	enabled bool
}

// NewAuditController: enabled == false, когда журнал не подключён к базе.
func NewAuditController(base *Base, service services.AuditServiceInterface, list utils.ListOptions, enabled bool) *AuditController {
	list.Filters = services.AuditFilters
	return &AuditController{Base: base, service: service, list: list, enabled: enabled}
}

func (ctrl *AuditController) List(c echo.Context) error {
	params := utils.ParseListParams(c.QueryParams(), ctrl.list)
	result, err := ctrl.service.List(c.Request().Context(), params)
	if err != nil {
		return ctrl.fail(c, err)
	}
	if result.Paginator.OutOfRange() {
		return c.Redirect(http.StatusSeeOther, params.WithPage(result.Paginator.TotalPages).URL("/audit"))
	}

	lookups := Lookups{"resource": auditResourceOptions}
	view := ListView{
		Title:     "Аудит панели",
		BasePath:  "/audit",
		Headers:   buildHeaders(auditColumns, params, "/audit"),
		Params:    params,
		Paginator: result.Paginator,
		Filters: buildFilters([]FilterSpec{
			{Name: "resource", Label: "Раздел", Type: "select", Options: auditResourceOptions},
			{Name: "actor", Label: "ID пользователя", Type: "text"},
			{Name: "success", Label: "Результат", Type: "select", Options: []types.Option{
				{Value: "true", Label: "Успешно"},
				{Value: "false", Label: "С ошибкой"},
			}},
		}, params, lookups),
	}
	if !ctrl.enabled {
		view.Notice = "Журнал аудита отключён: не задан DATABASE_URL."
	}
	for _, e := range result.Items {
		view.Rows = append(view.Rows, TableRow{ID: e.ID, Cells: buildCells(auditColumns, e, lookups)})
	}
	fillPagination(&view)

	return ctrl.render(c, http.StatusOK, "list", ctrl.page(c, view.Title, "/audit", view))
}
