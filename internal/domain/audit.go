package domain

import "time"

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog is a before/after snapshot of a configuration change. Writing one
// is always best effort; a failed audit write never blocks the change itself.
type AuditLog struct {
	ID        uint        `json:"id"`
	AdminID   uint        `json:"admin_id"`
	Action    AuditAction `json:"action"`
	Entity    string      `json:"entity"`
	EntityKey string      `json:"entity_key"`
	OldValue  string      `json:"old_value"`
	NewValue  string      `json:"new_value"`
	CreatedAt time.Time   `json:"created_at"`
}
