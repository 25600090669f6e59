package domain

import "time"

const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditLogin  = "login"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	EntityCategory = "category"
	EntityProduct  = "product"
	EntityUser     = "user"
)

// AuditEntry records a single state change or login attempt.
type AuditEntry struct {
	ID       string    `json:"id"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Actor    string    `json:"actor"`
	Outcome  string    `json:"outcome"`
	At       time.Time `json:"at"`
}

// Key identifies the audited subject; entries sharing a key are written in
// order.
func (e AuditEntry) Key() string {
	return e.Entity + ":" + e.EntityID
}
