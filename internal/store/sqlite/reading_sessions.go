package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// sessionColumns is the ordered list of columns selected in session queries.
// Must match the scan order in scanSession. The day column is derived from
// date on write and never scanned back.
const sessionColumns = `id, book_id, date, pages_read, summary, created_at, updated_at`

// scanSession scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.ReadingSession.
func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingSession, error) {
	var rs domain.ReadingSession

	var (
		date      string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&rs.ID,
		&rs.BookID,
		&date,
		&rs.PagesRead,
		&rs.Summary,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rs.Date, err = parseTime(date)
	if err != nil {
		return nil, err
	}
	rs.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	rs.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &rs, nil
}

// dayKey formats the calendar-day column value.
func dayKey(t time.Time) string {
	return domain.DayOf(t).Format(time.DateOnly)
}

// CreateReadingSession inserts a new reading session.
// Returns store.ErrConflict if a session for the same book and calendar day
// already exists.
func (s *Store) CreateReadingSession(ctx context.Context, rs *domain.ReadingSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_sessions (id, book_id, date, day, pages_read, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.ID,
		rs.BookID,
		formatTime(rs.Date),
		dayKey(rs.Date),
		rs.PagesRead,
		rs.Summary,
		formatTime(rs.CreatedAt),
		formatTime(rs.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrConflict
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

// GetReadingSession retrieves a reading session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) GetReadingSession(ctx context.Context, id string) (*domain.ReadingSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions WHERE id = ?`, id)

	rs, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// GetReadingSessionForBookDate retrieves the session for a book on the
// calendar day of the given date, if one exists.
// Returns store.ErrNotFound if no session covers that day.
func (s *Store) GetReadingSessionForBookDate(ctx context.Context, bookID string, date time.Time) (*domain.ReadingSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions WHERE book_id = ? AND day = ?`,
		bookID, dayKey(date))

	rs, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// UpdateReadingSession persists changes to an existing reading session,
// including a possible move to a different book or day.
// Returns store.ErrNotFound if the session does not exist and
// store.ErrConflict if the new book/day pair is already taken.
func (s *Store) UpdateReadingSession(ctx context.Context, rs *domain.ReadingSession) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reading_sessions
		SET book_id = ?, date = ?, day = ?, pages_read = ?, summary = ?, updated_at = ?
		WHERE id = ?`,
		rs.BookID,
		formatTime(rs.Date),
		dayKey(rs.Date),
		rs.PagesRead,
		rs.Summary,
		formatTime(rs.UpdatedAt),
		rs.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrConflict
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteReadingSession removes a reading session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) DeleteReadingSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reading_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListReadingSessions returns all reading sessions ordered by date.
func (s *Store) ListReadingSessions(ctx context.Context) ([]*domain.ReadingSession, error) {
	return s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions ORDER BY date ASC`)
}

// ListReadingSessionsForBook returns a book's sessions ordered by date.
func (s *Store) ListReadingSessionsForBook(ctx context.Context, bookID string) ([]*domain.ReadingSession, error) {
	return s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions WHERE book_id = ? ORDER BY date ASC`,
		bookID)
}

// ListReadingSessionsForYear returns sessions whose calendar day falls in
// the given year, ordered by date.
func (s *Store) ListReadingSessionsForYear(ctx context.Context, year int) ([]*domain.ReadingSession, error) {
	prefix := fmt.Sprintf("%04d-", year)
	return s.querySessions(ctx,
		`SELECT `+sessionColumns+` FROM reading_sessions WHERE day LIKE ? ORDER BY date ASC`,
		prefix+"%")
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]*domain.ReadingSession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.ReadingSession
	for rows.Next() {
		rs, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sessions == nil {
		sessions = []*domain.ReadingSession{}
	}

	return sessions, nil
}
