// Package search provides full-text search across books, authors, and tags
// using Bleve.
package search

import "github.com/shelfmark/shelfmark-server/internal/domain"

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeBook   DocType = "book"
	DocTypeAuthor DocType = "author"
	DocTypeTag    DocType = "tag"
)

// Document is the unified document structure for the Bleve index.
// All searchable entities are indexed as Documents with type discrimination.
//
// Author names are denormalized into book documents so a single query can
// match "Le Guin" against both the author entry and her books.
type Document struct {
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// Primary searchable text. Book: title, Author: name, Tag: name.
	Name string `json:"name"`

	// Book-specific fields (empty for other types)
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`
	Status  string `json:"status,omitempty"`

	// Author-specific fields
	Bio string `json:"bio,omitempty"`

	// Numeric fields for sorting
	TotalPages int   `json:"total_pages,omitempty"`
	UpdatedAt  int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"updated_at": d.UpdatedAt,
	}

	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Summary != "" {
		m["summary"] = d.Summary
	}
	if d.Status != "" {
		m["status"] = d.Status
	}
	if d.Bio != "" {
		m["bio"] = d.Bio
	}
	if d.TotalPages > 0 {
		m["total_pages"] = d.TotalPages
	}

	return m
}

// BookDocument converts a domain Book to a search Document. The author name
// is passed in by the caller; the search package does not depend on store.
func BookDocument(book *domain.Book, authorName string) *Document {
	return &Document{
		ID:         book.ID,
		Type:       DocTypeBook,
		Name:       book.Title,
		Author:     authorName,
		Summary:    book.Summary,
		Status:     string(book.Status),
		TotalPages: book.TotalPages,
		UpdatedAt:  book.UpdatedAt.UnixMilli(),
	}
}

// AuthorDocument converts a domain Author to a search Document.
func AuthorDocument(a *domain.Author) *Document {
	return &Document{
		ID:        a.ID,
		Type:      DocTypeAuthor,
		Name:      a.Name,
		Bio:       a.Bio,
		UpdatedAt: a.UpdatedAt.UnixMilli(),
	}
}

// TagDocument converts a domain Tag to a search Document.
func TagDocument(t *domain.Tag) *Document {
	return &Document{
		ID:        t.ID,
		Type:      DocTypeTag,
		Name:      t.Name,
		UpdatedAt: t.UpdatedAt.UnixMilli(),
	}
}
