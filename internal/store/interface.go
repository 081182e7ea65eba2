// Package store defines the persistence interface for the Shelfmark server.
package store

import (
	"context"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// BookFilter narrows ListBooks. Zero values mean "no restriction".
type BookFilter struct {
	AuthorID string
	Status   domain.ReadingStatus
}

// TagAssignment is one row of the book/tag link table.
type TagAssignment struct {
	BookID string
	TagID  string
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Authors
	CreateAuthor(ctx context.Context, author *domain.Author) error
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	UpdateAuthor(ctx context.Context, author *domain.Author) error
	DeleteAuthor(ctx context.Context, id string) error
	ListAuthors(ctx context.Context) ([]*domain.Author, error)

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, filter BookFilter) ([]*domain.Book, error)
	SearchBooks(ctx context.Context, query string) ([]*domain.Book, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	AddTagToBook(ctx context.Context, bookID, tagID string) error
	RemoveTagFromBook(ctx context.Context, bookID, tagID string) error
	ListTagsForBook(ctx context.Context, bookID string) ([]*domain.Tag, error)
	ListTagAssignments(ctx context.Context) ([]TagAssignment, error)

	// Reading sessions
	CreateReadingSession(ctx context.Context, session *domain.ReadingSession) error
	GetReadingSession(ctx context.Context, id string) (*domain.ReadingSession, error)
	GetReadingSessionForBookDate(ctx context.Context, bookID string, date time.Time) (*domain.ReadingSession, error)
	UpdateReadingSession(ctx context.Context, session *domain.ReadingSession) error
	DeleteReadingSession(ctx context.Context, id string) error
	ListReadingSessions(ctx context.Context) ([]*domain.ReadingSession, error)
	ListReadingSessionsForBook(ctx context.Context, bookID string) ([]*domain.ReadingSession, error)
	ListReadingSessionsForYear(ctx context.Context, year int) ([]*domain.ReadingSession, error)

	// Reading goals
	CreateReadingGoal(ctx context.Context, goal *domain.ReadingGoal) error
	GetReadingGoal(ctx context.Context, id string) (*domain.ReadingGoal, error)
	GetReadingGoalForBook(ctx context.Context, bookID string) (*domain.ReadingGoal, error)
	UpdateReadingGoal(ctx context.Context, goal *domain.ReadingGoal) error
	DeleteReadingGoal(ctx context.Context, id string) error
	ListReadingGoals(ctx context.Context) ([]*domain.ReadingGoal, error)
}
