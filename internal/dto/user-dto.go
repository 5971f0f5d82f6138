package dto

import (
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
)

type UserForm struct {
	Username     string          `form:"username" json:"username" validate:"required,max=150"`
	FirstName    string          `form:"first_name" json:"first_name" validate:"max=150"`
	LastName     string          `form:"last_name" json:"last_name" validate:"max=150"`
	Email        string          `form:"email" json:"email" validate:"omitempty,email"`
	Role         string          `form:"role" json:"role" validate:"required,oneof=admin moderator operator viewer"`
	Organization types.NullInt64 `form:"organization" json:"organization" validate:"omitempty,gte=1"`
	Department   types.NullInt64 `form:"department" json:"department" validate:"omitempty,gte=1"`
	IsActive     bool            `form:"is_active" json:"is_active"`
	Password     string          `form:"password" json:"password,omitempty" validate:"omitempty,min=8,max=128"`

	// IsNew выставляет контроллер: при создании пароль обязателен.
	IsNew bool `form:"-" json:"-"`
}

func (f *UserForm) Normalize() {
	trim(&f.Username, &f.FirstName, &f.LastName, &f.Email, &f.Role)
}

func (f *UserForm) Check() map[string]string {
	if f.IsNew && f.Password == "" {
		return map[string]string{"password": "Обязательное поле"}
	}
	return nil
}

// UserFormFromEntity не переносит пароль: пустое поле при редактировании
// означает "не менять".
func UserFormFromEntity(u entities.User) *UserForm {
	return &UserForm{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Organization: types.NullInt64FromPtr(u.Organization),
		Department:   types.NullInt64FromPtr(u.Department),
		IsActive:     u.IsActive,
	}
}

func NewUserForm() *UserForm {
	return &UserForm{Role: "viewer", IsActive: true, IsNew: true}
}
