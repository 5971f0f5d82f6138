package entities

import "time"

type Bulletin struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	Description  string     `json:"description"`
	Periodicity  string     `json:"periodicity"`
	DeadlineDay  *int       `json:"deadline_day"`
	Organization *uint64    `json:"organization"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (b Bulletin) GetID() uint64       { return b.ID }
func (b Bulletin) DisplayName() string { return b.Name }

// BulletinField - поле структуры бюллетеня. Order начинается с 1.
type BulletinField struct {
	ID            uint64  `json:"id"`
	Bulletin      uint64  `json:"bulletin"`
	Label         string  `json:"label"`
	FieldType     string  `json:"field_type"`
	Classificator *uint64 `json:"classificator"`
	IsRequired    bool    `json:"is_required"`
	Order         int     `json:"order"`
}

const (
	FieldTypeText   = "text"
	FieldTypeNumber = "number"
	FieldTypeDate   = "date"
	FieldTypeSelect = "select"
)
