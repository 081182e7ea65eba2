package domain

import "time"

// Tag represents a user-defined label for categorizing books.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitTimestamps sets creation and update timestamps to now.
func (t *Tag) InitTimestamps() {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// BookTag represents the many-to-many relationship between books and tags.
// A pure link: a book carries a tag at most once.
type BookTag struct {
	BookID    string    `json:"book_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
