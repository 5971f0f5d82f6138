package entities

import "time"

// AuditEntry - локальная запись о попытке изменения, сделанной через панель.
type AuditEntry struct {
	ID        uint64    `db:"id"`
	ActorID   uint64    `db:"actor_id"`
	ActorName string    `db:"actor_name"`
	Resource  string    `db:"resource"`
	Action    string    `db:"action"`
	ObjectID  *uint64   `db:"object_id"`
	Success   bool      `db:"success"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
