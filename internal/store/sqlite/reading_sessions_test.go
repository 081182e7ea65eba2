package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

func TestCreateAndGetReadingSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-rs", "RS Author")
	insertTestBook(t, s, "book-rs", "author-rs", "Session Book")

	date := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	rs := &domain.ReadingSession{
		ID:        "rs-1",
		BookID:    "book-rs",
		Date:      date,
		PagesRead: 42,
		Summary:   "Good chapter on ansibles.",
	}
	rs.InitTimestamps()

	if err := s.CreateReadingSession(ctx, rs); err != nil {
		t.Fatalf("CreateReadingSession: %v", err)
	}

	got, err := s.GetReadingSession(ctx, "rs-1")
	if err != nil {
		t.Fatalf("GetReadingSession: %v", err)
	}
	if got.BookID != "book-rs" {
		t.Errorf("BookID: got %q, want %q", got.BookID, "book-rs")
	}
	if !got.Date.Equal(date) {
		t.Errorf("Date: got %v, want %v", got.Date, date)
	}
	if got.PagesRead != 42 {
		t.Errorf("PagesRead: got %d, want 42", got.PagesRead)
	}
	if got.Summary != rs.Summary {
		t.Errorf("Summary: got %q, want %q", got.Summary, rs.Summary)
	}
}

func TestCreateReadingSession_SameDayConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-sd", "SD Author")
	insertTestBook(t, s, "book-sd", "author-sd", "Same Day Book")

	insertTestSession(t, s, "rs-sd-1", "book-sd", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 10)

	// Different time of day, same calendar day.
	dup := &domain.ReadingSession{
		ID:        "rs-sd-2",
		BookID:    "book-sd",
		Date:      time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC),
		PagesRead: 5,
	}
	dup.InitTimestamps()
	err := s.CreateReadingSession(ctx, dup)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestGetReadingSessionForBookDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-bd", "BD Author")
	insertTestBook(t, s, "book-bd", "author-bd", "By Date Book")
	insertTestSession(t, s, "rs-bd", "book-bd", time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), 20)

	// Any time on the same day matches.
	got, err := s.GetReadingSessionForBookDate(ctx, "book-bd", time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetReadingSessionForBookDate: %v", err)
	}
	if got.ID != "rs-bd" {
		t.Errorf("ID: got %q, want %q", got.ID, "rs-bd")
	}

	_, err = s.GetReadingSessionForBookDate(ctx, "book-bd", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other day, got %v", err)
	}
}

func TestUpdateReadingSession_MoveDayConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-mv", "MV Author")
	insertTestBook(t, s, "book-mv", "author-mv", "Move Book")
	insertTestSession(t, s, "rs-mv-1", "book-mv", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10)
	insertTestSession(t, s, "rs-mv-2", "book-mv", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), 20)

	rs, err := s.GetReadingSession(ctx, "rs-mv-2")
	if err != nil {
		t.Fatalf("GetReadingSession: %v", err)
	}
	rs.Date = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rs.Touch()

	err = s.UpdateReadingSession(ctx, rs)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestListReadingSessionsForYear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-yr", "YR Author")
	insertTestBook(t, s, "book-yr", "author-yr", "Year Book")
	insertTestSession(t, s, "rs-2024", "book-yr", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 10)
	insertTestSession(t, s, "rs-2025a", "book-yr", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 20)
	insertTestSession(t, s, "rs-2025b", "book-yr", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), 30)

	sessions, err := s.ListReadingSessionsForYear(ctx, 2025)
	if err != nil {
		t.Fatalf("ListReadingSessionsForYear: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "rs-2025a" || sessions[1].ID != "rs-2025b" {
		t.Errorf("unexpected order: %q, %q", sessions[0].ID, sessions[1].ID)
	}
}

func TestListReadingSessionsForBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-lb", "LB Author")
	insertTestBook(t, s, "book-lb-1", "author-lb", "First")
	insertTestBook(t, s, "book-lb-2", "author-lb", "Second")
	insertTestSession(t, s, "rs-lb-1", "book-lb-1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 10)
	insertTestSession(t, s, "rs-lb-2", "book-lb-2", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 20)

	sessions, err := s.ListReadingSessionsForBook(ctx, "book-lb-1")
	if err != nil {
		t.Fatalf("ListReadingSessionsForBook: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "rs-lb-1" {
		t.Errorf("unexpected result: %v", sessions)
	}
}

func TestDeleteReadingSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestAuthor(t, s, "author-ds", "DS Author")
	insertTestBook(t, s, "book-ds", "author-ds", "Delete Book")
	insertTestSession(t, s, "rs-ds", "book-ds", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 10)

	if err := s.DeleteReadingSession(ctx, "rs-ds"); err != nil {
		t.Fatalf("DeleteReadingSession: %v", err)
	}
	if err := s.DeleteReadingSession(ctx, "rs-ds"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
