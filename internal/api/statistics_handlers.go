package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func (s *Server) registerStatisticsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStreak",
		Method:      http.MethodGet,
		Path:        "/api/v1/streak",
		Summary:     "Get reading streak",
		Description: "Returns the current and longest consecutive-day reading streaks",
		Tags:        []string{"Statistics"},
	}, s.handleGetStreak)

	huma.Register(s.api, huma.Operation{
		OperationID: "getHeatmap",
		Method:      http.MethodGet,
		Path:        "/api/v1/heatmap/{year}",
		Summary:     "Get reading heatmap",
		Description: "Returns per-day pages read for one calendar year",
		Tags:        []string{"Statistics"},
	}, s.handleGetHeatmap)

	huma.Register(s.api, huma.Operation{
		OperationID: "getOverviewStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/overview",
		Summary:     "Get overview statistics",
		Tags:        []string{"Statistics"},
	}, s.handleGetOverviewStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthorStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/authors",
		Summary:     "Get author statistics",
		Tags:        []string{"Statistics"},
	}, s.handleGetAuthorStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/tags",
		Summary:     "Get tag statistics",
		Tags:        []string{"Statistics"},
	}, s.handleGetTagStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTimeStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/time-based",
		Summary:     "Get time-based statistics",
		Tags:        []string{"Statistics"},
	}, s.handleGetTimeStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGoalStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/goals",
		Summary:     "Get goal performance",
		Tags:        []string{"Statistics"},
	}, s.handleGetGoalStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/books",
		Summary:     "Get book statistics",
		Tags:        []string{"Statistics"},
	}, s.handleGetBookStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecords",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/records",
		Summary:     "Get personal records",
		Tags:        []string{"Statistics"},
	}, s.handleGetRecords)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCompleteStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/statistics/complete",
		Summary:     "Get all statistics",
		Description: "Returns the union of all seven statistics reports",
		Tags:        []string{"Statistics"},
	}, s.handleGetCompleteStats)
}

// === DTOs ===

// StreakOutput wraps the streak for Huma.
type StreakOutput struct {
	Body domain.Streak
}

// HeatmapInput contains parameters for the heatmap.
type HeatmapInput struct {
	Year int `path:"year" doc:"Calendar year"`
}

// HeatmapOutput wraps the heatmap for Huma.
type HeatmapOutput struct {
	Body domain.Heatmap
}

// OverviewStatsOutput wraps the overview report for Huma.
type OverviewStatsOutput struct {
	Body domain.OverviewStats
}

// AuthorStatsOutput wraps the author report for Huma.
type AuthorStatsOutput struct {
	Body domain.AuthorStats
}

// TagStatsOutput wraps the tag report for Huma.
type TagStatsOutput struct {
	Body domain.TagStats
}

// TimeStatsOutput wraps the time-based report for Huma.
type TimeStatsOutput struct {
	Body domain.TimeStats
}

// GoalStatsOutput wraps the goal performance report for Huma.
type GoalStatsOutput struct {
	Body domain.GoalPerformance
}

// BookStatsOutput wraps the book report for Huma.
type BookStatsOutput struct {
	Body domain.BookStats
}

// RecordsOutput wraps the personal records for Huma.
type RecordsOutput struct {
	Body domain.Records
}

// CompleteStatsOutput wraps the complete report union for Huma.
type CompleteStatsOutput struct {
	Body domain.CompleteStats
}

// === Handlers ===

func (s *Server) handleGetStreak(ctx context.Context, _ *struct{}) (*StreakOutput, error) {
	streak, err := s.services.Stats.Streak(ctx)
	if err != nil {
		return nil, err
	}
	return &StreakOutput{Body: streak}, nil
}

func (s *Server) handleGetHeatmap(ctx context.Context, input *HeatmapInput) (*HeatmapOutput, error) {
	if input.Year < 1 || input.Year > 9999 {
		return nil, apperrors.Validationf("year %d out of range", input.Year)
	}
	heatmap, err := s.services.Stats.Heatmap(ctx, input.Year)
	if err != nil {
		return nil, err
	}
	return &HeatmapOutput{Body: heatmap}, nil
}

func (s *Server) handleGetOverviewStats(ctx context.Context, _ *struct{}) (*OverviewStatsOutput, error) {
	stats, err := s.services.Stats.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetAuthorStats(ctx context.Context, _ *struct{}) (*AuthorStatsOutput, error) {
	stats, err := s.services.Stats.AuthorStats(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthorStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetTagStats(ctx context.Context, _ *struct{}) (*TagStatsOutput, error) {
	stats, err := s.services.Stats.TagStats(ctx)
	if err != nil {
		return nil, err
	}
	return &TagStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetTimeStats(ctx context.Context, _ *struct{}) (*TimeStatsOutput, error) {
	stats, err := s.services.Stats.TimeStats(ctx)
	if err != nil {
		return nil, err
	}
	return &TimeStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetGoalStats(ctx context.Context, _ *struct{}) (*GoalStatsOutput, error) {
	stats, err := s.services.Stats.GoalPerformance(ctx)
	if err != nil {
		return nil, err
	}
	return &GoalStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetBookStats(ctx context.Context, _ *struct{}) (*BookStatsOutput, error) {
	stats, err := s.services.Stats.BookStats(ctx)
	if err != nil {
		return nil, err
	}
	return &BookStatsOutput{Body: stats}, nil
}

func (s *Server) handleGetRecords(ctx context.Context, _ *struct{}) (*RecordsOutput, error) {
	records, err := s.services.Stats.Records(ctx)
	if err != nil {
		return nil, err
	}
	return &RecordsOutput{Body: records}, nil
}

func (s *Server) handleGetCompleteStats(ctx context.Context, _ *struct{}) (*CompleteStatsOutput, error) {
	stats, err := s.services.Stats.Complete(ctx)
	if err != nil {
		return nil, err
	}
	return &CompleteStatsOutput{Body: stats}, nil
}
