package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
)

type BulletinFieldForm struct {
	Label         string          `form:"label" json:"label" validate:"required,max=255"`
	FieldType     string          `form:"field_type" json:"field_type" validate:"required,oneof=text number date select"`
	Classificator types.NullInt64 `form:"classificator" json:"classificator" validate:"omitempty,gte=1"`
	IsRequired    bool            `form:"is_required" json:"is_required"`
	Order         int             `form:"-" json:"order"`
}

func (f *BulletinFieldForm) Normalize() {
	trim(&f.Label, &f.FieldType)
	if f.FieldType != entities.FieldTypeSelect {
		f.Classificator = types.NullInt64{}
	}
}

func (f *BulletinFieldForm) Check() map[string]string {
	if f.FieldType == entities.FieldTypeSelect && !f.Classificator.Valid {
		return map[string]string{"classificator": "Для поля-списка нужен классификатор"}
	}
	return nil
}

// ReorderRequest - результат перетаскивания: либо пара индексов from/to
// (считаются с нуля), либо полный новый порядок идентификаторов.
type ReorderRequest struct {
	From *int     `form:"from" json:"from"`
	To   *int     `form:"to" json:"to"`
	IDs  []uint64 `form:"ids" json:"ids"`
}

// FieldOrder - элемент тела POST /bulletins/{id}/fields/reorder/.
type FieldOrder struct {
	ID    uint64 `json:"id"`
	Order int    `json:"order"`
}

var FieldTypes = []types.Option{
	{Value: entities.FieldTypeText, Label: "Текст"},
	{Value: entities.FieldTypeNumber, Label: "Число"},
	{Value: entities.FieldTypeDate, Label: "Дата"},
	{Value: entities.FieldTypeSelect, Label: "Список (классификатор)"},
}
