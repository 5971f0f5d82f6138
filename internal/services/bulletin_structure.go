package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/internal/repositories"
	apperrors "ereport-admin/pkg/errors"
)

const structureResource = "bulletins"

// Renumber возвращает копию полей с order = 1..n в текущем порядке.
func Renumber(fields []entities.BulletinField) []entities.BulletinField {
	out := make([]entities.BulletinField, len(fields))
	copy(out, fields)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// MoveField вырезает поле с позиции from и вставляет его на позицию to
// (индексы с нуля), после чего перенумеровывает order. Исходный срез не меняется.
func MoveField(fields []entities.BulletinField, from, to int) ([]entities.BulletinField, error) {
	n := len(fields)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, apperrors.NewInvalidInputError("позиция поля вне диапазона 0..%d", n-1)
	}

	out := make([]entities.BulletinField, 0, n)
	out = append(out, fields[:from]...)
	out = append(out, fields[from+1:]...)

	moved := fields[from]
	out = append(out, entities.BulletinField{})
	copy(out[to+1:], out[to:])
	out[to] = moved

	return Renumber(out), nil
}

// ApplyOrder расставляет поля в порядке ids. ids обязан быть перестановкой
// идентификаторов текущих полей.
func ApplyOrder(fields []entities.BulletinField, ids []uint64) ([]entities.BulletinField, error) {
	if len(ids) != len(fields) {
		return nil, apperrors.NewInvalidInputError("ожидалось %d полей, получено %d", len(fields), len(ids))
	}
	byID := make(map[uint64]entities.BulletinField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	out := make([]entities.BulletinField, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, apperrors.NewInvalidInputError("поле %d не принадлежит бюллетеню или повторяется", id)
		}
		delete(byID, id)
		out = append(out, f)
	}
	return Renumber(out), nil
}

// OrderPayload — тело запроса переупорядочивания: полный список полей.
func OrderPayload(fields []entities.BulletinField) []dto.FieldOrder {
	out := make([]dto.FieldOrder, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.FieldOrder{ID: f.ID, Order: f.Order})
	}
	return out
}

// BulletinStructure — бюллетень и его поля по возрастанию order.
type BulletinStructure struct {
	Bulletin entities.Bulletin
	Fields   []entities.BulletinField
}

type BulletinStructureServiceInterface interface {
	Get(ctx context.Context, bulletinID uint64) (*BulletinStructure, error)
	AddField(ctx context.Context, bulletinID uint64, form *dto.BulletinFieldForm) (*entities.BulletinField, error)
	DeleteField(ctx context.Context, bulletinID, fieldID uint64) error
	Move(ctx context.Context, bulletinID uint64, req dto.ReorderRequest) ([]entities.BulletinField, error)
}

type BulletinStructureService struct {
	bulletins repositories.RemoteRepositoryInterface[entities.Bulletin]
	fields    repositories.BulletinFieldRepositoryInterface
	audit     AuditServiceInterface
	logger    *zap.Logger
}

func NewBulletinStructureService(
	bulletins repositories.RemoteRepositoryInterface[entities.Bulletin],
	fields repositories.BulletinFieldRepositoryInterface,
	audit AuditServiceInterface,
	logger *zap.Logger,
) *BulletinStructureService {
	return &BulletinStructureService{
		bulletins: bulletins,
		fields:    fields,
		audit:     audit,
		logger:    logger.Named("structure"),
	}
}

func (s *BulletinStructureService) loadFields(ctx context.Context, bulletinID uint64) ([]entities.BulletinField, error) {
	fields, err := s.fields.ListFields(ctx, bulletinID)
	if err != nil {
		s.logger.Error("Ошибка при получении полей бюллетеня", zap.Uint64("bulletinID", bulletinID), zap.Error(err))
		return nil, err
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })
	return fields, nil
}

func (s *BulletinStructureService) Get(ctx context.Context, bulletinID uint64) (*BulletinStructure, error) {
	bulletin, err := s.bulletins.Find(ctx, bulletinID)
	if err != nil {
		return nil, err
	}
	fields, err := s.loadFields(ctx, bulletinID)
	if err != nil {
		return nil, err
	}
	return &BulletinStructure{Bulletin: *bulletin, Fields: fields}, nil
}

// AddField добавляет поле в конец структуры.
func (s *BulletinStructureService) AddField(ctx context.Context, bulletinID uint64, form *dto.BulletinFieldForm) (*entities.BulletinField, error) {
	fields, err := s.loadFields(ctx, bulletinID)
	if err != nil {
		return nil, err
	}
	form.Order = len(fields) + 1

	field, err := s.fields.CreateField(ctx, bulletinID, *form)
	s.audit.Record(ctx, structureResource, ActionFieldCreate, idPtr(bulletinID), err)
	if err != nil {
		s.logger.Error("Ошибка при добавлении поля", zap.Uint64("bulletinID", bulletinID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Поле добавлено", zap.Uint64("bulletinID", bulletinID), zap.Uint64("fieldID", field.ID))
	return field, nil
}

// DeleteField удаляет поле и сдвигает order оставшихся, чтобы не было дыр.
func (s *BulletinStructureService) DeleteField(ctx context.Context, bulletinID, fieldID uint64) error {
	fields, err := s.loadFields(ctx, bulletinID)
	if err != nil {
		return err
	}
	rest := make([]entities.BulletinField, 0, len(fields))
	found := false
	for _, f := range fields {
		if f.ID == fieldID {
			found = true
			continue
		}
		rest = append(rest, f)
	}
	if !found {
		return apperrors.ErrNotFound
	}

	err = s.fields.DeleteField(ctx, bulletinID, fieldID)
	s.audit.Record(ctx, structureResource, ActionFieldDelete, idPtr(bulletinID), err)
	if err != nil {
		s.logger.Error("Ошибка при удалении поля", zap.Uint64("fieldID", fieldID), zap.Error(err))
		return err
	}

	rest = Renumber(rest)
	if len(rest) == 0 {
		return nil
	}
	if err := s.fields.Reorder(ctx, bulletinID, OrderPayload(rest)); err != nil {
		s.logger.Error("Поле удалено, но нумерация не обновлена", zap.Uint64("bulletinID", bulletinID), zap.Error(err))
		return err
	}
	return nil
}

// Move применяет результат перетаскивания и отправляет полный порядок в API.
func (s *BulletinStructureService) Move(ctx context.Context, bulletinID uint64, req dto.ReorderRequest) ([]entities.BulletinField, error) {
	fields, err := s.loadFields(ctx, bulletinID)
	if err != nil {
		return nil, err
	}

	var reordered []entities.BulletinField
	switch {
	case len(req.IDs) > 0:
		reordered, err = ApplyOrder(fields, req.IDs)
	case req.From != nil && req.To != nil:
		reordered, err = MoveField(fields, *req.From, *req.To)
	default:
		err = apperrors.NewInvalidInputError("нужно указать from и to либо ids")
	}
	if err != nil {
		return nil, err
	}

	err = s.fields.Reorder(ctx, bulletinID, OrderPayload(reordered))
	s.audit.Record(ctx, structureResource, ActionReorder, idPtr(bulletinID), err)
	if err != nil {
		s.logger.Error("Ошибка при сохранении порядка полей", zap.Uint64("bulletinID", bulletinID), zap.Error(err))
		return nil, err
	}
	return reordered, nil
}
