package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

func insertTestTag(t *testing.T, s *Store, id, name string) {
	t.Helper()
	tag := &domain.Tag{ID: id, Name: name}
	tag.InitTimestamps()
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("insert tag %s: %v", id, err)
	}
}

func TestCreateTag_DuplicateName(t *testing.T) {
	s := newTestStore(t)

	insertTestTag(t, s, "tag-1", "fantasy")

	dup := &domain.Tag{ID: "tag-2", Name: "fantasy"}
	dup.InitTimestamps()
	err := s.CreateTag(context.Background(), dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetTagByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestTag(t, s, "tag-scifi", "science-fiction")

	got, err := s.GetTagByName(ctx, "science-fiction")
	if err != nil {
		t.Fatalf("GetTagByName: %v", err)
	}
	if got.ID != "tag-scifi" {
		t.Errorf("ID: got %q, want %q", got.ID, "tag-scifi")
	}

	if _, err := s.GetTagByName(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookTagLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-bt", "BT Author")
	insertTestBook(t, s, "book-bt", "author-bt", "Tagged Book")
	insertTestTag(t, s, "tag-a", "adventure")
	insertTestTag(t, s, "tag-b", "classic")

	if err := s.AddTagToBook(ctx, "book-bt", "tag-a"); err != nil {
		t.Fatalf("AddTagToBook: %v", err)
	}
	if err := s.AddTagToBook(ctx, "book-bt", "tag-b"); err != nil {
		t.Fatalf("AddTagToBook second: %v", err)
	}

	// Re-adding an existing link is a no-op.
	if err := s.AddTagToBook(ctx, "book-bt", "tag-a"); err != nil {
		t.Fatalf("AddTagToBook repeat: %v", err)
	}

	tags, err := s.ListTagsForBook(ctx, "book-bt")
	if err != nil {
		t.Fatalf("ListTagsForBook: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "adventure" || tags[1].Name != "classic" {
		t.Errorf("unexpected order: %q, %q", tags[0].Name, tags[1].Name)
	}

	links, err := s.ListTagAssignments(ctx)
	if err != nil {
		t.Fatalf("ListTagAssignments: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("expected 2 assignments, got %d", len(links))
	}

	if err := s.RemoveTagFromBook(ctx, "book-bt", "tag-a"); err != nil {
		t.Fatalf("RemoveTagFromBook: %v", err)
	}
	if err := s.RemoveTagFromBook(ctx, "book-bt", "tag-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat removal, got %v", err)
	}
}

func TestDeleteTag_RemovesLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-dt", "DT Author")
	insertTestBook(t, s, "book-dt", "author-dt", "Link Book")
	insertTestTag(t, s, "tag-dt", "doomed")

	if err := s.AddTagToBook(ctx, "book-dt", "tag-dt"); err != nil {
		t.Fatalf("AddTagToBook: %v", err)
	}
	if err := s.DeleteTag(ctx, "tag-dt"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	links, err := s.ListTagAssignments(ctx)
	if err != nil {
		t.Fatalf("ListTagAssignments: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected 0 assignments after tag delete, got %d", len(links))
	}
}
