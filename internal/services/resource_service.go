package services

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
)

// Больше записей в выпадающем списке формы не показываем.
const optionsLimit = 1000

// ListResult — страница списка вместе с состоянием пагинации.
type ListResult[E any] struct {
	Items     []E
	Paginator utils.Paginator
	Params    utils.ListParams
}

type ResourceServiceInterface[E entities.Entity] interface {
	Resource() string
	List(ctx context.Context, params utils.ListParams) (*ListResult[E], error)
	Find(ctx context.Context, id uint64) (*E, error)
	Create(ctx context.Context, payload interface{}) (*E, error)
	Update(ctx context.Context, id uint64, payload interface{}) (*E, error)
	Delete(ctx context.Context, id uint64) error
	Options(ctx context.Context, query url.Values) ([]types.Option, error)
	Count(ctx context.Context) (int, error)
}

// ResourceService — один справочник API: список, карточка и изменения.
// Каждое изменение попадает в журнал аудита независимо от исхода.
type ResourceService[E entities.Entity] struct {
	resource string
	repo     repositories.RemoteRepositoryInterface[E]
	audit    AuditServiceInterface
	logger   *zap.Logger
}

func NewResourceService[E entities.Entity](
	resource string,
	repo repositories.RemoteRepositoryInterface[E],
	audit AuditServiceInterface,
	logger *zap.Logger,
) *ResourceService[E] {
	return &ResourceService[E]{
		resource: resource,
		repo:     repo,
		audit:    audit,
		logger:   logger.With(zap.String("resource", resource)),
	}
}

func (s *ResourceService[E]) Resource() string { return s.resource }

func (s *ResourceService[E]) List(ctx context.Context, params utils.ListParams) (*ListResult[E], error) {
	page, err := s.repo.List(ctx, params.APIQuery())
	if err != nil {
		s.logger.Error("Ошибка при получении списка", zap.Error(err))
		return nil, err
	}
	return &ListResult[E]{
		Items:     page.Results,
		Paginator: utils.NewPaginator(page.Count, params),
		Params:    params,
	}, nil
}

func (s *ResourceService[E]) Find(ctx context.Context, id uint64) (*E, error) {
	item, err := s.repo.Find(ctx, id)
	if err != nil {
		s.logger.Warn("Запись не получена", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *ResourceService[E]) Create(ctx context.Context, payload interface{}) (*E, error) {
	item, err := s.repo.Create(ctx, payload)
	if err != nil {
		s.logger.Error("Ошибка при создании записи", zap.Error(err))
		s.audit.Record(ctx, s.resource, ActionCreate, nil, err)
		return nil, err
	}
	id := (*item).GetID()
	s.audit.Record(ctx, s.resource, ActionCreate, idPtr(id), nil)
	s.logger.Info("Запись успешно создана", zap.Uint64("id", id))
	return item, nil
}

func (s *ResourceService[E]) Update(ctx context.Context, id uint64, payload interface{}) (*E, error) {
	item, err := s.repo.Update(ctx, id, payload)
	s.audit.Record(ctx, s.resource, ActionUpdate, idPtr(id), err)
	if err != nil {
		s.logger.Error("Ошибка при обновлении записи", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Запись успешно обновлена", zap.Uint64("id", id))
	return item, nil
}

func (s *ResourceService[E]) Delete(ctx context.Context, id uint64) error {
	err := s.repo.Delete(ctx, id)
	s.audit.Record(ctx, s.resource, ActionDelete, idPtr(id), err)
	if err != nil {
		s.logger.Error("Ошибка при удалении записи", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Запись удалена", zap.Uint64("id", id))
	return nil
}

// Options — пары id/название для select в формах и фильтрах.
func (s *ResourceService[E]) Options(ctx context.Context, query url.Values) ([]types.Option, error) {
	items, err := s.repo.All(ctx, query, optionsLimit)
	if err != nil {
		s.logger.Error("Ошибка при получении вариантов выбора", zap.Error(err))
		return nil, err
	}
	out := make([]types.Option, 0, len(items))
	for _, item := range items {
		out = append(out, types.Option{
			Value: strconv.FormatUint(item.GetID(), 10),
			Label: item.DisplayName(),
		})
	}
	return out, nil
}

// Count берёт только поле count ответа, запрашивая одну запись.
func (s *ResourceService[E]) Count(ctx context.Context) (int, error) {
	return countRemote(ctx, s.repo)
}

func countRemote[E any](ctx context.Context, repo repositories.RemoteRepositoryInterface[E]) (int, error) {
	page, err := repo.List(ctx, url.Values{"limit": {"1"}, "offset": {"0"}})
	if err != nil {
		return 0, err
	}
	return page.Count, nil
}
