package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
)

type ClassificatorForm struct {
	Name        string          `form:"name" json:"name" validate:"required,max=255"`
	Code        string          `form:"code" json:"code" validate:"required,code_format"`
	Parent      types.NullInt64 `form:"parent" json:"parent" validate:"omitempty,gte=1"`
	Description string          `form:"description" json:"description" validate:"max=2000"`
	IsActive    bool            `form:"is_active" json:"is_active"`
}

func (f *ClassificatorForm) Normalize() {
	trim(&f.Name, &f.Code, &f.Description)
}

func (f *ClassificatorForm) Check() map[string]string { return nil }

func ClassificatorFormFromEntity(c entities.Classificator) *ClassificatorForm {
	return &ClassificatorForm{
		Name:        c.Name,
		Code:        c.Code,
		Parent:      types.NullInt64FromPtr(c.Parent),
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

func NewClassificatorForm() *ClassificatorForm {
	return &ClassificatorForm{IsActive: true}
}
