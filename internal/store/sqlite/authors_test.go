package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

func TestCreateAndGetAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := &domain.Author{
		ID:       "author-1",
		Name:     "Ursula K. Le Guin",
		Bio:      "American author of speculative fiction.",
		ImageURL: "https://example.com/ursula.jpg",
	}
	a.InitTimestamps()

	if err := s.CreateAuthor(ctx, a); err != nil {
		t.Fatalf("CreateAuthor: %v", err)
	}

	got, err := s.GetAuthor(ctx, "author-1")
	if err != nil {
		t.Fatalf("GetAuthor: %v", err)
	}

	if got.Name != a.Name {
		t.Errorf("Name: got %q, want %q", got.Name, a.Name)
	}
	if got.Bio != a.Bio {
		t.Errorf("Bio: got %q, want %q", got.Bio, a.Bio)
	}
	if got.ImageURL != a.ImageURL {
		t.Errorf("ImageURL: got %q, want %q", got.ImageURL, a.ImageURL)
	}
	if got.CreatedAt.Unix() != a.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, a.CreatedAt)
	}
}

func TestGetAuthor_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAuthor(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-upd", "Old Name")

	a, err := s.GetAuthor(ctx, "author-upd")
	if err != nil {
		t.Fatalf("GetAuthor: %v", err)
	}
	a.Name = "New Name"
	a.Bio = "Updated bio"
	a.Touch()

	if err := s.UpdateAuthor(ctx, a); err != nil {
		t.Fatalf("UpdateAuthor: %v", err)
	}

	got, err := s.GetAuthor(ctx, "author-upd")
	if err != nil {
		t.Fatalf("GetAuthor after update: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", got.Name, "New Name")
	}
	if got.Bio != "Updated bio" {
		t.Errorf("Bio: got %q, want %q", got.Bio, "Updated bio")
	}
}

func TestUpdateAuthor_NotFound(t *testing.T) {
	s := newTestStore(t)

	a := &domain.Author{ID: "missing", Name: "Ghost"}
	a.InitTimestamps()
	err := s.UpdateAuthor(context.Background(), a)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAuthor_CascadesToBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-del", "Doomed Author")
	insertTestBook(t, s, "book-del", "author-del", "Doomed Book")

	if err := s.DeleteAuthor(ctx, "author-del"); err != nil {
		t.Fatalf("DeleteAuthor: %v", err)
	}

	if _, err := s.GetAuthor(ctx, "author-del"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("author still present after delete: %v", err)
	}
	if _, err := s.GetBook(ctx, "book-del"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("book survived author delete: %v", err)
	}
}

func TestListAuthors_OrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-b", "Banks")
	insertTestAuthor(t, s, "author-a", "Atwood")

	authors, err := s.ListAuthors(ctx)
	if err != nil {
		t.Fatalf("ListAuthors: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	if authors[0].Name != "Atwood" || authors[1].Name != "Banks" {
		t.Errorf("unexpected order: %q, %q", authors[0].Name, authors[1].Name)
	}
}

func TestListAuthors_EmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	authors, err := s.ListAuthors(context.Background())
	if err != nil {
		t.Fatalf("ListAuthors: %v", err)
	}
	if authors == nil {
		t.Error("expected empty slice, got nil")
	}
}
