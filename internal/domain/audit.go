// Package domain defines the core entities managed by the Shopmate server.
package domain

import "time"

// Audit provides common identity and audit fields for stored entities.
// This gets embedded in any domain type persisted to the store.
type Audit struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Stamp initializes the audit fields for a newly created entity.
func (a *Audit) Stamp(actor string) {
	now := time.Now()
	a.CreatedAt = now
	a.CreatedBy = actor
	a.UpdatedAt = now
	a.UpdatedBy = actor
}

// Touch records a modification by the given actor.
// Call this whenever the underlying entity changes.
func (a *Audit) Touch(actor string) {
	a.UpdatedAt = time.Now()
	a.UpdatedBy = actor
}
