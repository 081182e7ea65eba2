package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.ID,
		t.Name,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a tag by its unique name.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTag persists changes to an existing tag.
// Returns store.ErrNotFound if the tag does not exist and
// store.ErrAlreadyExists if the new name collides.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		t.Name,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
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

// DeleteTag removes a tag by ID. Book links are removed by cascade.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// AddTagToBook links a tag to a book. Adding an existing link is a no-op.
func (s *Store) AddTagToBook(ctx context.Context, bookID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO book_tags (book_id, tag_id, created_at)
		VALUES (?, ?, ?)`,
		bookID,
		tagID,
		formatTime(time.Now().UTC()),
	)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return store.ErrNotFound
	}
	return err
}

// RemoveTagFromBook unlinks a tag from a book.
// Returns store.ErrNotFound if the link does not exist.
func (s *Store) RemoveTagFromBook(ctx context.Context, bookID, tagID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM book_tags WHERE book_id = ? AND tag_id = ?`, bookID, tagID)
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

// ListTagsForBook returns the tags linked to a book, ordered by name.
func (s *Store) ListTagsForBook(ctx context.Context, bookID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN book_tags bt ON bt.tag_id = t.id
		WHERE bt.book_id = ?
		ORDER BY t.name ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []*domain.Tag{}
	}

	return tags, nil
}

// ListTagAssignments returns every book/tag link.
func (s *Store) ListTagAssignments(ctx context.Context) ([]store.TagAssignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, tag_id FROM book_tags`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []store.TagAssignment
	for rows.Next() {
		var l store.TagAssignment
		if err := rows.Scan(&l.BookID, &l.TagID); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if links == nil {
		links = []store.TagAssignment{}
	}

	return links, nil
}
