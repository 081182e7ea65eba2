package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// BookService orchestrates book operations, including tag assignment.
type BookService struct {
	store   store.Store
	cache   *cache.Cache
	search  *SearchService
	listTTL time.Duration
	logger  *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(st store.Store, c *cache.Cache, search *SearchService, cfg config.CacheConfig, logger *slog.Logger) *BookService {
	return &BookService{
		store:   st,
		cache:   c,
		search:  search,
		listTTL: cfg.ListTTL,
		logger:  logger,
	}
}

// CreateBookParams holds the fields for a new book.
type CreateBookParams struct {
	AuthorID           string
	Title              string
	TotalPages         int
	Status             domain.ReadingStatus
	StartedReadingDate *time.Time
	CompletedDate      *time.Time
	Summary            string
}

// Create adds a new book for an existing author.
func (s *BookService) Create(ctx context.Context, params CreateBookParams) (*domain.Book, error) {
	author, err := s.store.GetAuthor(ctx, params.AuthorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("author %s not found", params.AuthorID)
	}
	if err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = domain.StatusNotReading
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown reading status %q", status)
	}

	book := &domain.Book{
		ID:                 id.MustGenerate("book"),
		AuthorID:           author.ID,
		Title:              params.Title,
		TotalPages:         params.TotalPages,
		Status:             status,
		StartedReadingDate: params.StartedReadingDate,
		CompletedDate:      params.CompletedDate,
		Summary:            params.Summary,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create book")
	}

	s.cache.InvalidateBooks()
	s.cache.InvalidateStatistics()
	s.search.IndexBook(book, author.Name)

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title, "author_id", author.ID)
	return book, nil
}

// Get returns one book.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("book %s not found", bookID)
	}
	return book, err
}

// List returns books, optionally narrowed by author and status. Each filter
// combination caches under its own key.
func (s *BookService) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validationf("unknown reading status %q", filter.Status)
	}
	return cache.GetOrCompute(ctx, s.cache, cache.KeyBookList(filter.AuthorID, string(filter.Status)), s.listTTL,
		func(ctx context.Context) ([]*domain.Book, error) {
			return s.store.ListBooks(ctx, filter)
		})
}

// UpdateBookParams holds the updatable book fields. Nil means unchanged.
type UpdateBookParams struct {
	AuthorID           *string
	Title              *string
	TotalPages         *int
	Status             *domain.ReadingStatus
	StartedReadingDate *time.Time
	CompletedDate      *time.Time
	Summary            *string
	ClearStartedDate   bool
	ClearCompletedDate bool
}

// Update modifies an existing book. Status moves freely; there is no
// transition table.
func (s *BookService) Update(ctx context.Context, bookID string, params UpdateBookParams) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, err
	}

	if params.AuthorID != nil {
		if _, err := s.store.GetAuthor(ctx, *params.AuthorID); errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("author %s not found", *params.AuthorID)
		} else if err != nil {
			return nil, err
		}
		book.AuthorID = *params.AuthorID
	}
	if params.Title != nil {
		book.Title = *params.Title
	}
	if params.TotalPages != nil {
		book.TotalPages = *params.TotalPages
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, apperrors.Validationf("unknown reading status %q", *params.Status)
		}
		book.Status = *params.Status
	}
	if params.StartedReadingDate != nil {
		book.StartedReadingDate = params.StartedReadingDate
	}
	if params.ClearStartedDate {
		book.StartedReadingDate = nil
	}
	if params.CompletedDate != nil {
		book.CompletedDate = params.CompletedDate
	}
	if params.ClearCompletedDate {
		book.CompletedDate = nil
	}
	if params.Summary != nil {
		book.Summary = *params.Summary
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "update book")
	}

	s.cache.InvalidateBooks()
	s.cache.InvalidateStatistics()

	author, err := s.store.GetAuthor(ctx, book.AuthorID)
	if err == nil {
		s.search.IndexBook(book, author.Name)
	}

	s.logger.Info("book updated", "book_id", bookID)
	return book, nil
}

// Delete removes a book. Sessions, goals, and tag links cascade, so all
// reading-derived caches are dropped.
func (s *BookService) Delete(ctx context.Context, bookID string) error {
	err := s.store.DeleteBook(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return err
	}

	s.cache.InvalidateBooks()
	s.cache.InvalidateReadingData()
	s.search.RemoveDocument(bookID)

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// Tags returns the tags assigned to a book.
func (s *BookService) Tags(ctx context.Context, bookID string) ([]*domain.Tag, error) {
	if _, err := s.Get(ctx, bookID); err != nil {
		return nil, err
	}
	return s.store.ListTagsForBook(ctx, bookID)
}

// AddTag assigns a tag to a book. Assigning twice is a no-op.
func (s *BookService) AddTag(ctx context.Context, bookID, tagID string) error {
	if _, err := s.Get(ctx, bookID); err != nil {
		return err
	}
	if _, err := s.store.GetTag(ctx, tagID); errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("tag %s not found", tagID)
	} else if err != nil {
		return err
	}

	if err := s.store.AddTagToBook(ctx, bookID, tagID); err != nil {
		return err
	}

	s.cache.InvalidateStatistics()
	s.cache.InvalidateTag(tagID)
	return nil
}

// RemoveTag unassigns a tag from a book.
func (s *BookService) RemoveTag(ctx context.Context, bookID, tagID string) error {
	err := s.store.RemoveTagFromBook(ctx, bookID, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("book %s does not carry tag %s", bookID, tagID)
	}
	if err != nil {
		return err
	}

	s.cache.InvalidateStatistics()
	s.cache.InvalidateTag(tagID)
	return nil
}
