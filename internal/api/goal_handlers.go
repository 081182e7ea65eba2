package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

func (s *Server) registerGoalRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingGoals",
		Method:      http.MethodGet,
		Path:        "/api/v1/readinggoals",
		Summary:     "List reading goals",
		Tags:        []string{"Reading Goals"},
	}, s.handleListGoals)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReadingGoal",
		Method:        http.MethodPost,
		Path:          "/api/v1/readinggoals",
		Summary:       "Create reading goal",
		Description:   "Attaches a three-tier page goal to a book; one goal per book",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Reading Goals"},
	}, s.handleCreateGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingGoal",
		Method:      http.MethodGet,
		Path:        "/api/v1/readinggoals/{id}",
		Summary:     "Get reading goal",
		Tags:        []string{"Reading Goals"},
	}, s.handleGetGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReadingGoal",
		Method:      http.MethodPatch,
		Path:        "/api/v1/readinggoals/{id}",
		Summary:     "Update reading goal",
		Tags:        []string{"Reading Goals"},
	}, s.handleUpdateGoal)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteReadingGoal",
		Method:        http.MethodDelete,
		Path:          "/api/v1/readinggoals/{id}",
		Summary:       "Delete reading goal",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Reading Goals"},
	}, s.handleDeleteGoal)
}

// === DTOs ===

// GoalResponse contains reading goal data in API responses.
type GoalResponse struct {
	ID         string    `json:"id" doc:"Goal ID"`
	BookID     string    `json:"book_id" doc:"Book ID"`
	LowGoal    int       `json:"low_goal" doc:"Low page threshold"`
	MediumGoal int       `json:"medium_goal" doc:"Medium page threshold"`
	HighGoal   int       `json:"high_goal" doc:"High page threshold"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last update time"`
}

func toGoalResponse(g *domain.ReadingGoal) GoalResponse {
	return GoalResponse{
		ID:         g.ID,
		BookID:     g.BookID,
		LowGoal:    g.LowGoal,
		MediumGoal: g.MediumGoal,
		HighGoal:   g.HighGoal,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// ListGoalsOutput wraps the goal list for Huma.
type ListGoalsOutput struct {
	Body struct {
		Goals []GoalResponse `json:"goals" doc:"List of reading goals"`
	}
}

// CreateGoalRequest is the request body for creating a reading goal.
type CreateGoalRequest struct {
	BookID     string `json:"book_id" validate:"required" doc:"Book ID"`
	LowGoal    int    `json:"low_goal" validate:"required,gt=0" doc:"Low page threshold"`
	MediumGoal int    `json:"medium_goal" validate:"required,gtfield=LowGoal" doc:"Medium page threshold"`
	HighGoal   int    `json:"high_goal" validate:"required,gtfield=MediumGoal" doc:"High page threshold"`
}

// CreateGoalInput wraps the create goal request for Huma.
type CreateGoalInput struct {
	Body CreateGoalRequest
}

// GoalOutput wraps a single goal response for Huma.
type GoalOutput struct {
	Body GoalResponse
}

// GetGoalInput contains parameters for getting a goal.
type GetGoalInput struct {
	ID string `path:"id" doc:"Goal ID"`
}

// UpdateGoalRequest is the request body for updating a reading goal.
type UpdateGoalRequest struct {
	LowGoal    *int `json:"low_goal,omitempty" validate:"omitempty,gt=0" doc:"Low page threshold"`
	MediumGoal *int `json:"medium_goal,omitempty" validate:"omitempty,gt=0" doc:"Medium page threshold"`
	HighGoal   *int `json:"high_goal,omitempty" validate:"omitempty,gt=0" doc:"High page threshold"`
}

// UpdateGoalInput wraps the update goal request for Huma.
type UpdateGoalInput struct {
	ID   string `path:"id" doc:"Goal ID"`
	Body UpdateGoalRequest
}

// DeleteGoalInput contains parameters for deleting a goal.
type DeleteGoalInput struct {
	ID string `path:"id" doc:"Goal ID"`
}

// === Handlers ===

func (s *Server) handleListGoals(ctx context.Context, _ *struct{}) (*ListGoalsOutput, error) {
	goals, err := s.services.Goals.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListGoalsOutput{}
	out.Body.Goals = make([]GoalResponse, len(goals))
	for i, g := range goals {
		out.Body.Goals[i] = toGoalResponse(g)
	}
	return out, nil
}

func (s *Server) handleCreateGoal(ctx context.Context, input *CreateGoalInput) (*GoalOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	goal, err := s.services.Goals.Create(ctx, service.CreateGoalParams{
		BookID:     input.Body.BookID,
		LowGoal:    input.Body.LowGoal,
		MediumGoal: input.Body.MediumGoal,
		HighGoal:   input.Body.HighGoal,
	})
	if err != nil {
		return nil, err
	}
	return &GoalOutput{Body: toGoalResponse(goal)}, nil
}

func (s *Server) handleGetGoal(ctx context.Context, input *GetGoalInput) (*GoalOutput, error) {
	goal, err := s.services.Goals.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GoalOutput{Body: toGoalResponse(goal)}, nil
}

func (s *Server) handleUpdateGoal(ctx context.Context, input *UpdateGoalInput) (*GoalOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	goal, err := s.services.Goals.Update(ctx, input.ID, service.UpdateGoalParams{
		LowGoal:    input.Body.LowGoal,
		MediumGoal: input.Body.MediumGoal,
		HighGoal:   input.Body.HighGoal,
	})
	if err != nil {
		return nil, err
	}
	return &GoalOutput{Body: toGoalResponse(goal)}, nil
}

func (s *Server) handleDeleteGoal(ctx context.Context, input *DeleteGoalInput) (*DeleteOutput, error) {
	if err := s.services.Goals.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
