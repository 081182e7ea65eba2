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

// AuthorService orchestrates author operations.
type AuthorService struct {
	store   store.Store
	cache   *cache.Cache
	search  *SearchService
	listTTL time.Duration
	logger  *slog.Logger
}

// NewAuthorService creates a new author service.
func NewAuthorService(st store.Store, c *cache.Cache, search *SearchService, cfg config.CacheConfig, logger *slog.Logger) *AuthorService {
	return &AuthorService{
		store:   st,
		cache:   c,
		search:  search,
		listTTL: cfg.ListTTL,
		logger:  logger,
	}
}

// CreateAuthorParams holds the fields for a new author.
type CreateAuthorParams struct {
	Name     string
	Bio      string
	ImageURL string
}

// Create adds a new author and indexes it for search.
func (s *AuthorService) Create(ctx context.Context, params CreateAuthorParams) (*domain.Author, error) {
	author := &domain.Author{
		ID:       id.MustGenerate("author"),
		Name:     params.Name,
		Bio:      params.Bio,
		ImageURL: params.ImageURL,
	}
	author.InitTimestamps()

	if err := s.store.CreateAuthor(ctx, author); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create author")
	}

	s.cache.InvalidateAuthors()
	s.search.IndexAuthor(author)

	s.logger.Info("author created", "author_id", author.ID, "name", author.Name)
	return author, nil
}

// Get returns one author.
func (s *AuthorService) Get(ctx context.Context, authorID string) (*domain.Author, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyAuthor(authorID), s.listTTL,
		func(ctx context.Context) (*domain.Author, error) {
			author, err := s.store.GetAuthor(ctx, authorID)
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFoundf("author %s not found", authorID)
			}
			return author, err
		})
}

// List returns all authors.
func (s *AuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyAuthors, s.listTTL,
		func(ctx context.Context) ([]*domain.Author, error) {
			return s.store.ListAuthors(ctx)
		})
}

// UpdateAuthorParams holds the updatable author fields. Nil means unchanged.
type UpdateAuthorParams struct {
	Name     *string
	Bio      *string
	ImageURL *string
}

// Update modifies an existing author.
func (s *AuthorService) Update(ctx context.Context, authorID string, params UpdateAuthorParams) (*domain.Author, error) {
	author, err := s.store.GetAuthor(ctx, authorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("author %s not found", authorID)
	}
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		author.Name = *params.Name
	}
	if params.Bio != nil {
		author.Bio = *params.Bio
	}
	if params.ImageURL != nil {
		author.ImageURL = *params.ImageURL
	}
	author.Touch()

	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "update author")
	}

	s.cache.InvalidateAuthors()
	s.search.IndexAuthor(author)
	// Book documents carry the author name; refresh them on rename.
	if params.Name != nil {
		s.search.ReindexBooksForAuthor(ctx, authorID)
	}

	s.logger.Info("author updated", "author_id", authorID)
	return author, nil
}

// Delete removes an author. Their books, sessions, and goals go with them,
// so every reading-derived cache is dropped too.
func (s *AuthorService) Delete(ctx context.Context, authorID string) error {
	books, err := s.store.ListBooks(ctx, store.BookFilter{AuthorID: authorID})
	if err != nil {
		return err
	}

	err = s.store.DeleteAuthor(ctx, authorID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("author %s not found", authorID)
	}
	if err != nil {
		return err
	}

	s.cache.InvalidateAuthors()
	s.cache.InvalidateBooks()
	s.cache.InvalidateReadingData()
	s.search.RemoveDocument(authorID)
	for _, b := range books {
		s.search.RemoveDocument(b.ID)
	}

	s.logger.Info("author deleted", "author_id", authorID, "cascaded_books", len(books))
	return nil
}
