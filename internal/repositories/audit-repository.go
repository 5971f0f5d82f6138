package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ereport-admin/internal/entities"
)

const auditTable = "audit_entries"

var auditColumns = []string{"id", "actor_id", "actor_name", "resource", "action", "object_id", "success", "message", "created_at"}

type AuditFilter struct {
	Resource string
	ActorID  uint64
	Success  *bool
	Limit    uint64
	Offset   uint64
}

type AuditRepositoryInterface interface {
	Create(ctx context.Context, entry entities.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]entities.AuditEntry, uint64, error)
}

type AuditRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewAuditRepository(storage querier, logger *zap.Logger) AuditRepositoryInterface {
	return &AuditRepository{storage: storage, logger: logger}
}

func applyAuditFilter(b sq.SelectBuilder, filter AuditFilter) sq.SelectBuilder {
	if filter.Resource != "" {
		b = b.Where(sq.Eq{"resource": filter.Resource})
	}
	if filter.ActorID != 0 {
		b = b.Where(sq.Eq{"actor_id": filter.ActorID})
	}
	if filter.Success != nil {
		b = b.Where(sq.Eq{"success": *filter.Success})
	}
	return b
}

func buildAuditCountQuery(filter AuditFilter) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return applyAuditFilter(psql.Select("COUNT(*)").From(auditTable), filter).ToSql()
}

func buildAuditListQuery(filter AuditFilter) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	b := applyAuditFilter(psql.Select(auditColumns...).From(auditTable), filter).
		OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit).Offset(filter.Offset)
	}
	return b.ToSql()
}

func buildAuditInsertQuery(entry entities.AuditEntry) (string, []interface{}, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	return psql.Insert(auditTable).
		Columns("actor_id", "actor_name", "resource", "action", "object_id", "success", "message", "created_at").
		Values(entry.ActorID, entry.ActorName, entry.Resource, entry.Action, entry.ObjectID, entry.Success, entry.Message, entry.CreatedAt).
		ToSql()
}

func (r *AuditRepository) Create(ctx context.Context, entry entities.AuditEntry) error {
	query, args, err := buildAuditInsertQuery(entry)
	if err != nil {
		return fmt.Errorf("ошибка построения запроса аудита: %w", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка записи в журнал аудита: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter AuditFilter) ([]entities.AuditEntry, uint64, error) {
	countQuery, countArgs, err := buildAuditCountQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта записей аудита: %w", err)
	}
	if total == 0 {
		return []entities.AuditEntry{}, 0, nil
	}

	query, args, err := buildAuditListQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения журнала аудита: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.AuditEntry])
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сканирования записей аудита: %w", err)
	}
	return entries, total, nil
}

// NopAuditRepository используется, когда DATABASE_URL не задан.
type NopAuditRepository struct{}

func (NopAuditRepository) Create(context.Context, entities.AuditEntry) error { return nil }

func (NopAuditRepository) List(context.Context, AuditFilter) ([]entities.AuditEntry, uint64, error) {
	return []entities.AuditEntry{}, 0, nil
}
