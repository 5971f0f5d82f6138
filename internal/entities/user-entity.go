package entities

import (
	"strings"
	"time"
)

// User - пользователь системы отчётности в том виде, в каком его отдаёт API.
type User struct {
	ID           uint64     `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Organization *uint64    `json:"organization"`
	Department   *uint64    `json:"department"`
	IsActive     bool       `json:"is_active"`
	DateJoined   *time.Time `json:"date_joined,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (u User) GetID() uint64 { return u.ID }

func (u User) DisplayName() string {
	full := strings.TrimSpace(u.LastName + " " + u.FirstName)
	if full == "" {
		return u.Username
	}
	return full
}
