package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
)

type OrganizationForm struct {
	Name      string           `form:"name" json:"name" validate:"required,max=255"`
	ShortName string           `form:"short_name" json:"short_name" validate:"max=100"`
	TaxID     string           `form:"tax_id" json:"tax_id" validate:"omitempty,tax_id"`
	Address   string           `form:"address" json:"address" validate:"max=500"`
	Phone     types.NullString `form:"phone" json:"phone" validate:"omitempty,phone"`
	IsActive  bool             `form:"is_active" json:"is_active"`
}

func (f *OrganizationForm) Normalize() {
	trim(&f.Name, &f.ShortName, &f.TaxID, &f.Address)
}

func (f *OrganizationForm) Check() map[string]string { return nil }

func OrganizationFormFromEntity(o entities.Organization) *OrganizationForm {
	return &OrganizationForm{
		Name:      o.Name,
		ShortName: o.ShortName,
		TaxID:     o.TaxID,
		Address:   o.Address,
		Phone:     types.NullStringFrom(o.Phone),
		IsActive:  o.IsActive,
	}
}

func NewOrganizationForm() *OrganizationForm {
	return &OrganizationForm{IsActive: true}
}
