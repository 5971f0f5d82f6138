package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/validation"
)

type BulletinForm struct {
	Name         string          `form:"name" json:"name" validate:"required,max=255"`
	Code         string          `form:"code" json:"code" validate:"required,code_format"`
	Description  string          `form:"description" json:"description" validate:"max=5000"`
	Periodicity  string          `form:"periodicity" json:"periodicity" validate:"required,periodicity"`
	DeadlineDay  types.NullInt64 `form:"deadline_day" json:"deadline_day" validate:"omitempty,gte=1,lte=31"`
	Organization types.NullInt64 `form:"organization" json:"organization"`
	IsActive     bool            `form:"is_active" json:"is_active"`
}

func (f *BulletinForm) Normalize() {
	trim(&f.Name, &f.Code, &f.Periodicity)
	f.Description = validation.SanitizeRichText(f.Description)
}

func (f *BulletinForm) Check() map[string]string { return nil }

func BulletinFormFromEntity(b entities.Bulletin) *BulletinForm {
	f := &BulletinForm{
		Name:         b.Name,
		Code:         b.Code,
		Description:  b.Description,
		Periodicity:  b.Periodicity,
		Organization: types.NullInt64FromPtr(b.Organization),
		IsActive:     b.IsActive,
	}
	if b.DeadlineDay != nil {
		f.DeadlineDay = types.NullInt64From(int64(*b.DeadlineDay))
	}
	return f
}

func NewBulletinForm() *BulletinForm {
	return &BulletinForm{Periodicity: "monthly", IsActive: true}
}

// Periodicities - варианты для select в форме.
var Periodicities = []types.Option{
	{Value: "daily", Label: "Ежедневно"},
	{Value: "weekly", Label: "Еженедельно"},
	{Value: "monthly", Label: "Ежемесячно"},
	{Value: "quarterly", Label: "Ежеквартально"},
	{Value: "yearly", Label: "Ежегодно"},
}
