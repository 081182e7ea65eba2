package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// goalColumns is the ordered list of columns selected in goal queries.
// Must match the scan order in scanGoal.
const goalColumns = `id, book_id, low_goal, medium_goal, high_goal, created_at, updated_at`

// scanGoal scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.ReadingGoal.
func scanGoal(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingGoal, error) {
	var g domain.ReadingGoal

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&g.ID,
		&g.BookID,
		&g.LowGoal,
		&g.MediumGoal,
		&g.HighGoal,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// CreateReadingGoal inserts a new reading goal.
// Returns store.ErrAlreadyExists if the book already has a goal.
func (s *Store) CreateReadingGoal(ctx context.Context, g *domain.ReadingGoal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_goals (id, book_id, low_goal, medium_goal, high_goal, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID,
		g.BookID,
		g.LowGoal,
		g.MediumGoal,
		g.HighGoal,
		formatTime(g.CreatedAt),
		formatTime(g.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

// GetReadingGoal retrieves a reading goal by ID.
// Returns store.ErrNotFound if the goal does not exist.
func (s *Store) GetReadingGoal(ctx context.Context, id string) (*domain.ReadingGoal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM reading_goals WHERE id = ?`, id)

	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetReadingGoalForBook retrieves the goal attached to a book.
// Returns store.ErrNotFound if the book has no goal.
func (s *Store) GetReadingGoalForBook(ctx context.Context, bookID string) (*domain.ReadingGoal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM reading_goals WHERE book_id = ?`, bookID)

	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateReadingGoal persists changes to an existing reading goal.
// Returns store.ErrNotFound if the goal does not exist.
func (s *Store) UpdateReadingGoal(ctx context.Context, g *domain.ReadingGoal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reading_goals
		SET low_goal = ?, medium_goal = ?, high_goal = ?, updated_at = ?
		WHERE id = ?`,
		g.LowGoal,
		g.MediumGoal,
		g.HighGoal,
		formatTime(g.UpdatedAt),
		g.ID,
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

// DeleteReadingGoal removes a reading goal by ID.
// Returns store.ErrNotFound if the goal does not exist.
func (s *Store) DeleteReadingGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reading_goals WHERE id = ?`, id)
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

// ListReadingGoals returns all reading goals.
func (s *Store) ListReadingGoals(ctx context.Context) ([]*domain.ReadingGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM reading_goals ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.ReadingGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if goals == nil {
		goals = []*domain.ReadingGoal{}
	}

	return goals, nil
}
