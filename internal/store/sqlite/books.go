package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, author_id, title, total_pages, status, started_reading_date, completed_date, summary, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		status    string
		started   sql.NullString
		completed sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&b.ID,
		&b.AuthorID,
		&b.Title,
		&b.TotalPages,
		&status,
		&started,
		&completed,
		&b.Summary,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.ReadingStatus(status)
	b.StartedReadingDate, err = parseNullableTime(started)
	if err != nil {
		return nil, err
	}
	b.CompletedDate, err = parseNullableTime(completed)
	if err != nil {
		return nil, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book. The referenced author must exist.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, author_id, title, total_pages, status, started_reading_date, completed_date, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.AuthorID,
		b.Title,
		b.TotalPages,
		string(b.Status),
		nullTimeString(b.StartedReadingDate),
		nullTimeString(b.CompletedDate),
		b.Summary,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return store.ErrInvalidInput
	}
	return err
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook persists changes to an existing book.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET author_id = ?, title = ?, total_pages = ?, status = ?, started_reading_date = ?, completed_date = ?, summary = ?, updated_at = ?
		WHERE id = ?`,
		b.AuthorID,
		b.Title,
		b.TotalPages,
		string(b.Status),
		nullTimeString(b.StartedReadingDate),
		nullTimeString(b.CompletedDate),
		b.Summary,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
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

// DeleteBook removes a book by ID. Reading sessions, goals, and tag links
// are removed by foreign key cascade.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
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

// ListBooks returns books matching the filter, ordered by title.
func (s *Store) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var (
		where []string
		args  []any
	)
	if filter.AuthorID != "" {
		where = append(where, "author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []*domain.Book{}
	}

	return books, nil
}

// SearchBooks returns books whose title contains the query, case-insensitively.
// This is a plain LIKE scan, not the search index; tooling uses it to check
// for existing titles without needing bleve open.
func (s *Store) SearchBooks(ctx context.Context, query string) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title LIKE ? ESCAPE '\' ORDER BY title ASC`,
		"%"+escapeLike(query)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []*domain.Book{}
	}

	return books, nil
}

// escapeLike escapes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
