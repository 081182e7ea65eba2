package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// TagService orchestrates tag operations. Tag names are unique after
// normalization (trimmed, lowercased).
type TagService struct {
	store   store.Store
	cache   *cache.Cache
	search  *SearchService
	listTTL time.Duration
	logger  *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, c *cache.Cache, search *SearchService, cfg config.CacheConfig, logger *slog.Logger) *TagService {
	return &TagService{
		store:   st,
		cache:   c,
		search:  search,
		listTTL: cfg.ListTTL,
		logger:  logger,
	}
}

// NormalizeTagName canonicalizes a tag name for storage and lookup.
func NormalizeTagName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Create adds a new tag.
func (s *TagService) Create(ctx context.Context, rawName string) (*domain.Tag, error) {
	name := NormalizeTagName(rawName)
	if name == "" {
		return nil, apperrors.Validation("tag name is empty after normalization")
	}

	tag := &domain.Tag{
		ID:   id.MustGenerate("tag"),
		Name: name,
	}
	tag.InitTimestamps()

	err := s.store.CreateTag(ctx, tag)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil, apperrors.AlreadyExistsf("tag %q already exists", name)
	}
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTags()
	s.search.IndexTag(tag)

	s.logger.Info("tag created", "tag_id", tag.ID, "name", name)
	return tag, nil
}

// Get returns one tag.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyTag(tagID), s.listTTL,
		func(ctx context.Context) (*domain.Tag, error) {
			tag, err := s.store.GetTag(ctx, tagID)
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFoundf("tag %s not found", tagID)
			}
			return tag, err
		})
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return cache.GetOrCompute(ctx, s.cache, cache.KeyTags, s.listTTL,
		func(ctx context.Context) ([]*domain.Tag, error) {
			return s.store.ListTags(ctx)
		})
}

// Update renames a tag.
func (s *TagService) Update(ctx context.Context, tagID, rawName string) (*domain.Tag, error) {
	name := NormalizeTagName(rawName)
	if name == "" {
		return nil, apperrors.Validation("tag name is empty after normalization")
	}

	tag, err := s.store.GetTag(ctx, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("tag %s not found", tagID)
	}
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Touch()

	err = s.store.UpdateTag(ctx, tag)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil, apperrors.AlreadyExistsf("tag %q already exists", name)
	}
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateTags()
	s.cache.InvalidateStatistics()
	s.search.IndexTag(tag)

	s.logger.Info("tag updated", "tag_id", tagID, "name", name)
	return tag, nil
}

// Delete removes a tag and its book links.
func (s *TagService) Delete(ctx context.Context, tagID string) error {
	err := s.store.DeleteTag(ctx, tagID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("tag %s not found", tagID)
	}
	if err != nil {
		return err
	}

	s.cache.InvalidateTags()
	s.cache.InvalidateStatistics()
	s.search.RemoveDocument(tagID)

	s.logger.Info("tag deleted", "tag_id", tagID)
	return nil
}
