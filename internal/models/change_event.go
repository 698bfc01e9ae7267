package models

import "time"

// ChangeEvent announces a committed mutation to other service instances.
type ChangeEvent struct {
	Entity    string    `json:"entity"` // e.g., "product", "tab", "theme"
	Action    string    `json:"action"` // "created", "updated", "deleted" or "saved"
	ID        string    `json:"id,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
