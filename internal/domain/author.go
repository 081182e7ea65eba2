// Package domain contains the core business entities and domain logic for the Shelfmark book tracker.
package domain

import "time"

// Author represents a book author.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets creation and update timestamps to now.
func (a *Author) InitTimestamps() {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (a *Author) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
