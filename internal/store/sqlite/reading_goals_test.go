package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

func insertTestGoal(t *testing.T, s *Store, id, bookID string) {
	t.Helper()
	g := &domain.ReadingGoal{ID: id, BookID: bookID, LowGoal: 100, MediumGoal: 200, HighGoal: 300}
	g.InitTimestamps()
	if err := s.CreateReadingGoal(context.Background(), g); err != nil {
		t.Fatalf("insert goal %s: %v", id, err)
	}
}

func TestCreateAndGetReadingGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-g", "Goal Author")
	insertTestBook(t, s, "book-g", "author-g", "Goal Book")
	insertTestGoal(t, s, "goal-1", "book-g")

	got, err := s.GetReadingGoal(ctx, "goal-1")
	if err != nil {
		t.Fatalf("GetReadingGoal: %v", err)
	}
	if got.BookID != "book-g" {
		t.Errorf("BookID: got %q, want %q", got.BookID, "book-g")
	}
	if got.LowGoal != 100 || got.MediumGoal != 200 || got.HighGoal != 300 {
		t.Errorf("tiers: got %d/%d/%d, want 100/200/300", got.LowGoal, got.MediumGoal, got.HighGoal)
	}
}

func TestCreateReadingGoal_OnePerBook(t *testing.T) {
	s := newTestStore(t)

	insertTestAuthor(t, s, "author-dup", "Dup Author")
	insertTestBook(t, s, "book-dup", "author-dup", "Dup Book")
	insertTestGoal(t, s, "goal-dup-1", "book-dup")

	second := &domain.ReadingGoal{ID: "goal-dup-2", BookID: "book-dup", LowGoal: 10, MediumGoal: 20, HighGoal: 30}
	second.InitTimestamps()
	err := s.CreateReadingGoal(context.Background(), second)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetReadingGoalForBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-gb", "GB Author")
	insertTestBook(t, s, "book-gb", "author-gb", "GB Book")
	insertTestGoal(t, s, "goal-gb", "book-gb")

	got, err := s.GetReadingGoalForBook(ctx, "book-gb")
	if err != nil {
		t.Fatalf("GetReadingGoalForBook: %v", err)
	}
	if got.ID != "goal-gb" {
		t.Errorf("ID: got %q, want %q", got.ID, "goal-gb")
	}

	if _, err := s.GetReadingGoalForBook(ctx, "no-such-book"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReadingGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-ug", "UG Author")
	insertTestBook(t, s, "book-ug", "author-ug", "UG Book")
	insertTestGoal(t, s, "goal-ug", "book-ug")

	g, err := s.GetReadingGoal(ctx, "goal-ug")
	if err != nil {
		t.Fatalf("GetReadingGoal: %v", err)
	}
	g.LowGoal = 150
	g.MediumGoal = 250
	g.HighGoal = 350
	g.Touch()

	if err := s.UpdateReadingGoal(ctx, g); err != nil {
		t.Fatalf("UpdateReadingGoal: %v", err)
	}

	got, err := s.GetReadingGoal(ctx, "goal-ug")
	if err != nil {
		t.Fatalf("GetReadingGoal after update: %v", err)
	}
	if got.LowGoal != 150 || got.MediumGoal != 250 || got.HighGoal != 350 {
		t.Errorf("tiers: got %d/%d/%d, want 150/250/350", got.LowGoal, got.MediumGoal, got.HighGoal)
	}
}

func TestDeleteReadingGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-dg", "DG Author")
	insertTestBook(t, s, "book-dg", "author-dg", "DG Book")
	insertTestGoal(t, s, "goal-dg", "book-dg")

	if err := s.DeleteReadingGoal(ctx, "goal-dg"); err != nil {
		t.Fatalf("DeleteReadingGoal: %v", err)
	}
	if err := s.DeleteReadingGoal(ctx, "goal-dg"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
