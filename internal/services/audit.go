package services

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ereport-admin/internal/entities"
	"ereport-admin/internal/events"
	"ereport-admin/internal/repositories"
	apperrors "ereport-admin/pkg/errors"
	"ereport-admin/pkg/eventbus"
	"ereport-admin/pkg/utils"
)

// Запись в журнал не должна задерживать ответ пользователю дольше этого.
const auditWriteTimeout = 3 * time.Second

// Действия, которые попадают в журнал аудита.
const (
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionFieldCreate = "field_create"
	ActionFieldDelete = "field_delete"
	ActionReorder     = "reorder"
)

// AuditFilters — фильтры страницы /audit.
var AuditFilters = []string{"resource", "actor", "success"}

type AuditServiceInterface interface {
	// Record фиксирует попытку изменения. opErr == nil означает успех.
	Record(ctx context.Context, resource, action string, objectID *uint64, opErr error)
	List(ctx context.Context, params utils.ListParams) (*ListResult[entities.AuditEntry], error)
}

// Publisher — шина событий, в которую уходят успешные изменения.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type AuditService struct {
	repo   repositories.AuditRepositoryInterface
	bus    Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService: bus может быть nil, тогда события не рассылаются.
func NewAuditService(repo repositories.AuditRepositoryInterface, bus Publisher, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, bus: bus, logger: logger.Named("audit"), now: time.Now}
}

func (s *AuditService) Record(ctx context.Context, resource, action string, objectID *uint64, opErr error) {
	actorID, _ := utils.GetUserIDFromCtx(ctx)
	entry := entities.AuditEntry{
		ActorID:   actorID,
		ActorName: utils.GetUsernameFromCtx(ctx),
		Resource:  resource,
		Action:    action,
		ObjectID:  objectID,
		Success:   opErr == nil,
		CreatedAt: s.now().UTC(),
	}
	if opErr != nil {
		entry.Message = apperrors.UserMessage(opErr)
	}

	// Отмена запроса пользователем не должна терять запись.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if err := s.repo.Create(writeCtx, entry); err != nil {
		s.logger.Error("Не удалось записать событие в журнал аудита",
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Uint64("actorID", actorID),
			zap.Error(err),
		)
	}

	if opErr == nil && s.bus != nil {
		s.bus.Publish(ctx, events.ResourceChanged{
			Resource: resource,
			Action:   action,
			ObjectID: objectID,
			ActorID:  actorID,
		})
	}
}

func (s *AuditService) List(ctx context.Context, params utils.ListParams) (*ListResult[entities.AuditEntry], error) {
	filter := repositories.AuditFilter{
		Resource: params.Filter("resource"),
		Limit:    uint64(params.PageSize),
		Offset:   uint64(params.Offset()),
	}
	if actor, err := strconv.ParseUint(params.Filter("actor"), 10, 64); err == nil {
		filter.ActorID = actor
	}
	if success, err := strconv.ParseBool(params.Filter("success")); err == nil {
		filter.Success = &success
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка чтения журнала аудита", zap.Error(err))
		return nil, err
	}
	return &ListResult[entities.AuditEntry]{
		Items:     entries,
		Paginator: utils.NewPaginator(int(total), params),
		Params:    params,
	}, nil
}

// idPtr — адрес копии идентификатора для журнала.
func idPtr(id uint64) *uint64 {
	if id == 0 {
		return nil
	}
	return &id
}
