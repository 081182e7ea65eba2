package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertTestAuthor(t *testing.T, s *Store, id, name string) {
	t.Helper()
	a := &domain.Author{ID: id, Name: name}
	a.InitTimestamps()
	if err := s.CreateAuthor(context.Background(), a); err != nil {
		t.Fatalf("insert author %s: %v", id, err)
	}
}

func insertTestBook(t *testing.T, s *Store, id, authorID, title string) {
	t.Helper()
	b := &domain.Book{
		ID:         id,
		AuthorID:   authorID,
		Title:      title,
		TotalPages: 300,
		Status:     domain.StatusCurrentlyReading,
	}
	b.InitTimestamps()
	if err := s.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("insert book %s: %v", id, err)
	}
}

func insertTestSession(t *testing.T, s *Store, id, bookID string, date time.Time, pages int) {
	t.Helper()
	rs := &domain.ReadingSession{ID: id, BookID: bookID, Date: date, PagesRead: pages}
	rs.InitTimestamps()
	if err := s.CreateReadingSession(context.Background(), rs); err != nil {
		t.Fatalf("insert session %s: %v", id, err)
	}
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"authors", "books", "tags", "book_tags", "reading_sessions", "reading_goals",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.db.Exec(schemaSQL); err != nil {
		t.Fatalf("re-exec schema: %v", err)
	}
}
