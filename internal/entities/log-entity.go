package entities

import "time"

// LogItem - запись журнала действий на стороне API (только чтение).
type LogItem struct {
	ID         uint64    `json:"id"`
	User       *uint64   `json:"user"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	ObjectType string    `json:"object_type"`
	ObjectID   *uint64   `json:"object_id"`
	Message    string    `json:"message"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}
