// Package service contains the business logic between the HTTP layer and
// the store.
package service

import (
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/search"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// Services bundles every service for handler wiring.
type Services struct {
	Authors  *AuthorService
	Books    *BookService
	Tags     *TagService
	Sessions *SessionService
	Goals    *GoalService
	Stats    *StatsService
	Search   *SearchService
}

// New wires the full service layer.
func New(st store.Store, c *cache.Cache, idx *search.Index, cfg config.CacheConfig, logger *slog.Logger) *Services {
	searchSvc := NewSearchService(st, idx, logger)
	stats := NewStatsService(st, c, cfg, logger)

	return &Services{
		Authors:  NewAuthorService(st, c, searchSvc, cfg, logger),
		Books:    NewBookService(st, c, searchSvc, cfg, logger),
		Tags:     NewTagService(st, c, searchSvc, cfg, logger),
		Sessions: NewSessionService(st, c, logger),
		Goals:    NewGoalService(st, c, logger),
		Stats:    stats,
		Search:   searchSvc,
	}
}
