package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/id"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// GoalService orchestrates reading goal operations. Each book holds at most
// one goal with three ascending page thresholds.
type GoalService struct {
	store  store.Store
	cache  *cache.Cache
	logger *slog.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(st store.Store, c *cache.Cache, logger *slog.Logger) *GoalService {
	return &GoalService{
		store:  st,
		cache:  c,
		logger: logger,
	}
}

// CreateGoalParams holds the fields for a new reading goal.
type CreateGoalParams struct {
	BookID     string
	LowGoal    int
	MediumGoal int
	HighGoal   int
}

// Create attaches a goal to a book. A second goal for the same book is a
// conflict.
func (s *GoalService) Create(ctx context.Context, params CreateGoalParams) (*domain.ReadingGoal, error) {
	if _, err := s.store.GetBook(ctx, params.BookID); errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("book %s not found", params.BookID)
	} else if err != nil {
		return nil, err
	}

	goal := &domain.ReadingGoal{
		ID:         id.MustGenerate("goal"),
		BookID:     params.BookID,
		LowGoal:    params.LowGoal,
		MediumGoal: params.MediumGoal,
		HighGoal:   params.HighGoal,
	}
	if err := goal.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	goal.InitTimestamps()

	err := s.store.CreateReadingGoal(ctx, goal)
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil, apperrors.Conflictf("book %s already has a reading goal", params.BookID)
	}
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateStatistics()
	s.logger.Info("reading goal created", "goal_id", goal.ID, "book_id", params.BookID)
	return goal, nil
}

// Get returns one reading goal.
func (s *GoalService) Get(ctx context.Context, goalID string) (*domain.ReadingGoal, error) {
	goal, err := s.store.GetReadingGoal(ctx, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("reading goal %s not found", goalID)
	}
	return goal, err
}

// List returns all reading goals.
func (s *GoalService) List(ctx context.Context) ([]*domain.ReadingGoal, error) {
	return s.store.ListReadingGoals(ctx)
}

// UpdateGoalParams holds the updatable goal fields. Nil means unchanged.
type UpdateGoalParams struct {
	LowGoal    *int
	MediumGoal *int
	HighGoal   *int
}

// Update modifies a goal's thresholds. The ascending-order invariant is
// re-checked against the merged result.
func (s *GoalService) Update(ctx context.Context, goalID string, params UpdateGoalParams) (*domain.ReadingGoal, error) {
	goal, err := s.store.GetReadingGoal(ctx, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFoundf("reading goal %s not found", goalID)
	}
	if err != nil {
		return nil, err
	}

	if params.LowGoal != nil {
		goal.LowGoal = *params.LowGoal
	}
	if params.MediumGoal != nil {
		goal.MediumGoal = *params.MediumGoal
	}
	if params.HighGoal != nil {
		goal.HighGoal = *params.HighGoal
	}
	if err := goal.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	goal.Touch()

	if err := s.store.UpdateReadingGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.cache.InvalidateStatistics()
	s.logger.Info("reading goal updated", "goal_id", goalID)
	return goal, nil
}

// Delete removes a reading goal.
func (s *GoalService) Delete(ctx context.Context, goalID string) error {
	err := s.store.DeleteReadingGoal(ctx, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFoundf("reading goal %s not found", goalID)
	}
	if err != nil {
		return err
	}

	s.cache.InvalidateStatistics()
	s.logger.Info("reading goal deleted", "goal_id", goalID)
	return nil
}
