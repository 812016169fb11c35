package domain

import "time"

// Entity provides the identity and timestamp fields shared by stored rows.
type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (e *Entity) InitTimestamps() {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
