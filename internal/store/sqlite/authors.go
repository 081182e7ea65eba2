package sqlite

import (
	"context"
	"database/sql"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// authorColumns is the ordered list of columns selected in author queries.
// Must match the scan order in scanAuthor.
const authorColumns = `id, name, bio, image_url, created_at, updated_at`

// scanAuthor scans a sql.Row (or sql.Rows via its Scan method) into a domain.Author.
func scanAuthor(scanner interface{ Scan(dest ...any) error }) (*domain.Author, error) {
	var a domain.Author

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&a.ID,
		&a.Name,
		&a.Bio,
		&a.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateAuthor inserts a new author.
func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO authors (id, name, bio, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Name,
		a.Bio,
		a.ImageURL,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	return err
}

// GetAuthor retrieves an author by ID.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = ?`, id)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAuthor persists changes to an existing author.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE authors
		SET name = ?, bio = ?, image_url = ?, updated_at = ?
		WHERE id = ?`,
		a.Name,
		a.Bio,
		a.ImageURL,
		formatTime(a.UpdatedAt),
		a.ID,
	)
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

// DeleteAuthor removes an author by ID. The author's books and their
// dependent rows are removed by foreign key cascade.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
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

// ListAuthors returns all authors ordered by name.
func (s *Store) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+authorColumns+` FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if authors == nil {
		authors = []*domain.Author{}
	}

	return authors, nil
}
