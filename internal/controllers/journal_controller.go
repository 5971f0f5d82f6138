package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/services"
	"ereport-admin/pkg/utils"
)

type JournalConfig[T any] struct {
	Title       string
	BasePath    string
	ExportPerm  string
	ListOptions utils.ListOptions
	Columns     []Column[T]
	Filters     []FilterSpec
	Lookups     map[string]OptionSource
}

// JournalController - журналы только для чтения с выгрузкой в XLSX.
type JournalController[T any] struct {
	*Base
	cfg     JournalConfig[T]
	service services.JournalServiceInterface[T]
}

func NewJournalController[T any](base *Base, cfg JournalConfig[T], service services.JournalServiceInterface[T]) *JournalController[T] {
	return &JournalController[T]{Base: base, cfg: cfg, service: service}
}

func (ctrl *JournalController[T]) List(c echo.Context) error {
	ctx := c.Request().Context()
	params := utils.ParseListParams(c.QueryParams(), ctrl.cfg.ListOptions)

	result, err := ctrl.service.List(ctx, params)
	if err != nil {
		return ctrl.fail(c, err)
	}
	if result.Paginator.OutOfRange() {
		return c.Redirect(http.StatusSeeOther, params.WithPage(result.Paginator.TotalPages).URL(ctrl.cfg.BasePath))
	}
	lookups, err := ctrl.loadLookups(ctx, ctrl.cfg.Lookups)
	if err != nil {
		return ctrl.fail(c, err)
	}

	view := ListView{
		Title:     ctrl.cfg.Title,
		BasePath:  ctrl.cfg.BasePath,
		Headers:   buildHeaders(ctrl.cfg.Columns, params, ctrl.cfg.BasePath),
		Filters:   buildFilters(ctrl.cfg.Filters, params, lookups),
		Params:    params,
		Paginator: result.Paginator,
	}
	if ctrl.can(c, ctrl.cfg.ExportPerm) {
		view.ExportURL = params.WithPage(1).URL(ctrl.cfg.BasePath + "/export")
	}
	for _, item := range result.Items {
		view.Rows = append(view.Rows, TableRow{Cells: buildCells(ctrl.cfg.Columns, item, lookups)})
	}
	fillPagination(&view)

	return ctrl.render(c, http.StatusOK, "list", ctrl.page(c, ctrl.cfg.Title, ctrl.cfg.BasePath, view))
}

func (ctrl *JournalController[T]) Export(c echo.Context) error {
	params := utils.ParseListParams(c.QueryParams(), ctrl.cfg.ListOptions)
	wb, err := ctrl.service.Export(c.Request().Context(), params)
	if err != nil {
		return ctrl.fail(c, err)
	}
	ctrl.logger.Info("Выгрузка журнала", zap.String("journal", ctrl.cfg.BasePath), zap.Int("rows", wb.Rows))

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+wb.FileName)
	return c.Blob(http.StatusOK, services.XLSXContentType, wb.Data.Bytes())
}

func DelayReportJournalConfig(list utils.ListOptions, src Sources) JournalConfig[entities.DelayReport] {
	list.Filters = services.DelayReportFilters
	list.Ordering = []string{"deadline", "delay_days"}
	return JournalConfig[entities.DelayReport]{
		Title:       "Просрочки сдачи",
		BasePath:    "/delay-reports",
		ExportPerm:  authz.DelayReportsExport,
		ListOptions: list,
		Columns: []Column[entities.DelayReport]{
			{Title: "Бюллетень", Value: func(r entities.DelayReport, _ Lookups) string { return r.BulletinName }},
			{Title: "Организация", Value: func(r entities.DelayReport, _ Lookups) string { return r.OrganizationName }},
			{Title: "Период", Value: func(r entities.DelayReport, _ Lookups) string { return r.Period }},
			{Title: "Срок", Sort: "deadline", Value: func(r entities.DelayReport, _ Lookups) string { return r.Deadline.Format("02.01.2006") }},
			{Title: "Сдан", Value: func(r entities.DelayReport, _ Lookups) string {
				if r.SubmittedAt == nil {
					return "не сдан"
				}
				return r.SubmittedAt.Format("02.01.2006")
			}},
			{Title: "Дней просрочки", Sort: "delay_days", Value: func(r entities.DelayReport, _ Lookups) string { return strconv.Itoa(r.DelayDays) }},
		},
		Filters: []FilterSpec{
			{Name: "organization", Label: "Организация", Type: "select", Lookup: "organization"},
			{Name: "bulletin", Label: "Бюллетень", Type: "select", Lookup: "bulletin"},
			{Name: "date_from", Label: "С", Type: "date"},
			{Name: "date_to", Label: "По", Type: "date"},
		},
		Lookups: map[string]OptionSource{
			"organization": src.Organizations,
			"bulletin":     src.Bulletins,
		},
	}
}

func LogJournalConfig(list utils.ListOptions, src Sources) JournalConfig[entities.LogItem] {
	list.Filters = services.LogFilters
	list.Ordering = []string{"created_at"}
	return JournalConfig[entities.LogItem]{
		Title:       "Журнал действий",
		BasePath:    "/logs",
		ExportPerm:  authz.LogsExport,
		ListOptions: list,
		Columns: []Column[entities.LogItem]{
			{Title: "Дата", Sort: "created_at", Value: func(l entities.LogItem, _ Lookups) string { return l.CreatedAt.Local().Format("02.01.2006 15:04") }},
			{Title: "Пользователь", Value: func(l entities.LogItem, _ Lookups) string { return l.Username }},
			{Title: "Действие", Value: func(l entities.LogItem, _ Lookups) string { return l.Action }},
			{Title: "Объект", Value: func(l entities.LogItem, _ Lookups) string {
				if l.ObjectID == nil {
					return l.ObjectType
				}
				return l.ObjectType + " #" + strconv.FormatUint(*l.ObjectID, 10)
			}},
			{Title: "Сообщение", Value: func(l entities.LogItem, _ Lookups) string { return l.Message }},
			{Title: "IP", Value: func(l entities.LogItem, _ Lookups) string { return l.IPAddress }},
		},
		Filters: []FilterSpec{
			{Name: "user", Label: "Пользователь", Type: "select", Lookup: "user"},
			{Name: "action", Label: "Действие", Type: "text"},
			{Name: "date_from", Label: "С", Type: "date"},
			{Name: "date_to", Label: "По", Type: "date"},
		},
		Lookups: map[string]OptionSource{
			"user": src.Users,
		},
	}
}
