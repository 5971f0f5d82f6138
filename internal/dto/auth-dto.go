package dto

import "ereport-admin/internal/entities"

type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"-"`
}

func (f *LoginForm) Check() map[string]string { return nil }

// LoginResponse - ответ POST /auth/login/.
type LoginResponse struct {
	Access  string        `json:"access"`
	Refresh string        `json:"refresh"`
	User    entities.User `json:"user"`
}
