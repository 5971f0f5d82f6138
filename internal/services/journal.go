package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	"ereport-admin/pkg/utils"
)

// ExportLimit — потолок строк в выгрузке XLSX.
const ExportLimit = 10000

const exportDateFormat = "02.01.2006 15:04"

var (
	DelayReportFilters = []string{"organization", "bulletin", "date_from", "date_to"}
	LogFilters         = []string{"user", "action", "date_from", "date_to"}
)

// ExportColumn — заголовок колонки и способ получить значение из записи.
type ExportColumn[T any] struct {
	Header string
	Value  func(T) interface{}
}

type JournalServiceInterface[T any] interface {
	List(ctx context.Context, params utils.ListParams) (*ListResult[T], error)
	Count(ctx context.Context) (int, error)
	Export(ctx context.Context, params utils.ListParams) (*Workbook, error)
}

// JournalService — журнал только для чтения с выгрузкой в XLSX.
type JournalService[T any] struct {
	name    string
	repo    repositories.RemoteRepositoryInterface[T]
	columns []ExportColumn[T]
	logger  *zap.Logger
}

func NewJournalService[T any](name string, repo repositories.RemoteRepositoryInterface[T], columns []ExportColumn[T], logger *zap.Logger) *JournalService[T] {
	return &JournalService[T]{
		name:    name,
		repo:    repo,
		columns: columns,
		logger:  logger.With(zap.String("journal", name)),
	}
}

func (s *JournalService[T]) List(ctx context.Context, params utils.ListParams) (*ListResult[T], error) {
	page, err := s.repo.List(ctx, params.APIQuery())
	if err != nil {
		s.logger.Error("Ошибка при получении журнала", zap.Error(err))
		return nil, err
	}
	return &ListResult[T]{
		Items:     page.Results,
		Paginator: utils.NewPaginator(page.Count, params),
		Params:    params,
	}, nil
}

func (s *JournalService[T]) Count(ctx context.Context) (int, error) {
	return countRemote(ctx, s.repo)
}

// Export выгружает все страницы с текущими фильтрами, но не больше ExportLimit строк.
func (s *JournalService[T]) Export(ctx context.Context, params utils.ListParams) (*Workbook, error) {
	query := params.APIQuery()
	query.Del("limit")
	query.Del("offset")

	items, err := s.repo.All(ctx, query, ExportLimit)
	if err != nil {
		s.logger.Error("Ошибка при выгрузке журнала", zap.Error(err))
		return nil, err
	}

	headers := make([]string, len(s.columns))
	for i, col := range s.columns {
		headers[i] = col.Header
	}
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		row := make([]interface{}, len(s.columns))
		for i, col := range s.columns {
			row[i] = col.Value(item)
		}
		rows = append(rows, row)
	}

	wb, err := BuildWorkbook(s.name, headers, rows)
	if err != nil {
		s.logger.Error("Ошибка при формировании XLSX", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Журнал выгружен", zap.Int("rows", len(rows)))
	return wb, nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(exportDateFormat)
}

func formatID(id *uint64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprint(*id)
}

var DelayReportColumns = []ExportColumn[entities.DelayReport]{
	{Header: "Бюллетень", Value: func(r entities.DelayReport) interface{} { return r.BulletinName }},
	{Header: "Организация", Value: func(r entities.DelayReport) interface{} { return r.OrganizationName }},
	{Header: "Период", Value: func(r entities.DelayReport) interface{} { return r.Period }},
	{Header: "Срок сдачи", Value: func(r entities.DelayReport) interface{} { return formatTime(&r.Deadline) }},
	{Header: "Сдан", Value: func(r entities.DelayReport) interface{} { return formatTime(r.SubmittedAt) }},
	{Header: "Просрочка, дней", Value: func(r entities.DelayReport) interface{} { return r.DelayDays }},
}

var LogColumns = []ExportColumn[entities.LogItem]{
	{Header: "Дата", Value: func(l entities.LogItem) interface{} { return formatTime(&l.CreatedAt) }},
	{Header: "Пользователь", Value: func(l entities.LogItem) interface{} { return l.Username }},
	{Header: "Действие", Value: func(l entities.LogItem) interface{} { return l.Action }},
	{Header: "Объект", Value: func(l entities.LogItem) interface{} { return l.ObjectType }},
	{Header: "ID объекта", Value: func(l entities.LogItem) interface{} { return formatID(l.ObjectID) }},
	{Header: "Сообщение", Value: func(l entities.LogItem) interface{} { return l.Message }},
	{Header: "IP", Value: func(l entities.LogItem) interface{} { return l.IPAddress }},
}
