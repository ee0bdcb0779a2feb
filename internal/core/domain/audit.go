package domain

import "time"

// AuditEvent records one recipe lifecycle change for the audit trail.
type AuditEvent struct {
	Action    string    // "created", "updated", "deleted"
	RecipeID  string
	OwnerID   string
	Title     string
	Timestamp time.Time
}
