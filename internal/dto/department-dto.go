package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
)

type DepartmentForm struct {
	Name         string          `form:"name" json:"name" validate:"required,max=255"`
	Organization types.NullInt64 `form:"organization" json:"organization" validate:"required,gte=1"`
	Parent       types.NullInt64 `form:"parent" json:"parent" validate:"omitempty,gte=1"`
	IsActive     bool            `form:"is_active" json:"is_active"`
}

func (f *DepartmentForm) Normalize() {
	trim(&f.Name)
}

func (f *DepartmentForm) Check() map[string]string { return nil }

func DepartmentFormFromEntity(d entities.Department) *DepartmentForm {
	return &DepartmentForm{
		Name:         d.Name,
		Organization: types.NullInt64From(int64(d.Organization)),
		Parent:       types.NullInt64FromPtr(d.Parent),
		IsActive:     d.IsActive,
	}
}

func NewDepartmentForm() *DepartmentForm {
	return &DepartmentForm{IsActive: true}
}
