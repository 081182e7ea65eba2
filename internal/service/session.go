package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// SessionService orchestrates reading session operations.
//
// Create and update deliberately disagree about same-day collisions: create
// merges page counts into the existing session for that book and day, while
// update refuses to move a session onto an occupied day. Merging on update
// would silently destroy the moved session's identity, so the conflict is
// surfaced instead.
type SessionService struct {
	store  store.Store
	cache  *cache.Cache
	logger *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(st store.Store, c *cache.Cache, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:  st,
		cache:  c,
		logger: logger,
	}
}

// CreateSessionParams holds the fields for a new reading session.
type CreateSessionParams struct {
	BookID    string
	Date      time.Time
	PagesRead int
	Summary   string
}

// Create records pages read. If a session already exists for the same book
// and calendar day, the pages are added to it and the summary replaced
// (last writer wins); otherwise a new session is inserted.
func (s *SessionService) Create(ctx context.Context, params CreateSessionParams) (*domain.ReadingSession, error) {
	if err := checkSessionDate(params.Date); err != nil {
		return nil, err
	}
	if _, err := s.store.GetBook(ctx, params.BookID); errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("book %s not found", params.BookID)
	} else if err != nil {
		return nil, err
	}

	existing, err := s.store.GetReadingSessionForBookDate(ctx, params.BookID, params.Date)
	switch {
	case err == nil:
		existing.MergePages(params.PagesRead, params.Summary)
		if err := s.store.UpdateReadingSession(ctx, existing); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "merge reading session")
		}
		s.invalidateFor(existing.Date)
		s.logger.Info("reading session merged",
			"session_id", existing.ID,
			"book_id", params.BookID,
			"added_pages", params.PagesRead,
			"total_pages", existing.PagesRead,
		)
		return existing, nil

	case errors.Is(err, store.ErrNotFound):
		session := &domain.ReadingSession{
			ID:        id.MustGenerate("rs"),
			BookID:    params.BookID,
			Date:      params.Date,
			PagesRead: params.PagesRead,
			Summary:   params.Summary,
		}
		session.InitTimestamps()
		if err := s.store.CreateReadingSession(ctx, session); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create reading session")
		}
		s.invalidateFor(session.Date)
		s.logger.Info("reading session created",
			"session_id", session.ID,
			"book_id", params.BookID,
			"pages", params.PagesRead,
		)
		return session, nil

	default:
		return nil, err
	}
}

// Get returns one reading session.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*domain.ReadingSession, error) {
	session, err := s.store.GetReadingSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("reading session %s not found", sessionID)
	}
	return session, err
}

// List returns all reading sessions ordered by date.
func (s *SessionService) List(ctx context.Context) ([]*domain.ReadingSession, error) {
	return s.store.ListReadingSessions(ctx)
}

// ListForBook returns a book's sessions ordered by date.
func (s *SessionService) ListForBook(ctx context.Context, bookID string) ([]*domain.ReadingSession, error) {
	if _, err := s.store.GetBook(ctx, bookID); errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("book %s not found", bookID)
	} else if err != nil {
		return nil, err
	}
	return s.store.ListReadingSessionsForBook(ctx, bookID)
}

// UpdateSessionParams holds the updatable session fields. Nil means unchanged.
type UpdateSessionParams struct {
	BookID    *string
	Date      *time.Time
	PagesRead *int
	Summary   *string
}

// Update replaces session fields as given. Unlike Create, pages are not
// re-aggregated: moving the session onto a book/day pair that already has a
// session fails with a conflict.
func (s *SessionService) Update(ctx context.Context, sessionID string, params UpdateSessionParams) (*domain.ReadingSession, error) {
	session, err := s.store.GetReadingSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("reading session %s not found", sessionID)
	}
	if err != nil {
		return nil, err
	}

	oldDate := session.Date

	if params.BookID != nil {
		if _, err := s.store.GetBook(ctx, *params.BookID); errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundf("book %s not found", *params.BookID)
		} else if err != nil {
			return nil, err
		}
		session.BookID = *params.BookID
	}
	if params.Date != nil {
		if err := checkSessionDate(*params.Date); err != nil {
			return nil, err
		}
		session.Date = *params.Date
	}
	if params.PagesRead != nil {
		session.PagesRead = *params.PagesRead
	}
	if params.Summary != nil {
		session.Summary = *params.Summary
	}
	session.Touch()

	// Re-check the target day, excluding this session itself.
	other, err := s.store.GetReadingSessionForBookDate(ctx, session.BookID, session.Date)
	if err == nil && other.ID != session.ID {
		return nil, apperrors.Conflictf("book %s already has a session on %s",
			session.BookID, domain.DayOf(session.Date).Format(time.DateOnly))
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if err := s.store.UpdateReadingSession(ctx, session); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.Conflictf("book %s already has a session on %s",
				session.BookID, domain.DayOf(session.Date).Format(time.DateOnly))
		}
		return nil, err
	}

	s.invalidateFor(oldDate)
	s.invalidateFor(session.Date)
	s.logger.Info("reading session updated", "session_id", sessionID)
	return session, nil
}

// Delete removes a reading session.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	session, err := s.store.GetReadingSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("reading session %s not found", sessionID)
	}
	if err != nil {
		return err
	}

	if err := s.store.DeleteReadingSession(ctx, sessionID); err != nil {
		return err
	}

	s.invalidateFor(session.Date)
	s.logger.Info("reading session deleted", "session_id", sessionID)
	return nil
}

// checkSessionDate rejects dates after today's UTC calendar day. Reading
// can only be logged for days that have happened; future sessions would
// poison streaks and heatmaps.
func checkSessionDate(date time.Time) error {
	if domain.DayOf(date).After(domain.DayOf(time.Now())) {
		return apperrors.Validationf("session date %s is in the future",
			domain.DayOf(date).Format(time.DateOnly))
	}
	return nil
}

// invalidateFor drops every cache entry derived from session data, keeping
// the touched year's heatmap precise.
func (s *SessionService) invalidateFor(date time.Time) {
	s.cache.InvalidateStatistics()
	s.cache.InvalidateStreak()
	s.cache.InvalidateHeatmapYear(date.UTC().Year())
}
