package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/readingsessions",
		Summary:     "List reading sessions",
		Description: "Returns all reading sessions ordered by date, optionally filtered by book",
		Tags:        []string{"Reading Sessions"},
	}, s.handleListSessions)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReadingSession",
		Method:        http.MethodPost,
		Path:          "/api/v1/readingsessions",
		Summary:       "Create reading session",
		Description:   "Records pages read; a same-day session for the book absorbs the pages instead of conflicting",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Reading Sessions"},
	}, s.handleCreateSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/readingsessions/{id}",
		Summary:     "Get reading session",
		Tags:        []string{"Reading Sessions"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReadingSession",
		Method:      http.MethodPatch,
		Path:        "/api/v1/readingsessions/{id}",
		Summary:     "Update reading session",
		Description: "Replaces fields as given; moving onto an occupied day is a conflict",
		Tags:        []string{"Reading Sessions"},
	}, s.handleUpdateSession)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteReadingSession",
		Method:        http.MethodDelete,
		Path:          "/api/v1/readingsessions/{id}",
		Summary:       "Delete reading session",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Reading Sessions"},
	}, s.handleDeleteSession)
}

// === DTOs ===

// SessionResponse contains reading session data in API responses.
type SessionResponse struct {
	ID        string    `json:"id" doc:"Session ID"`
	BookID    string    `json:"book_id" doc:"Book ID"`
	Date      time.Time `json:"date" doc:"Reading date"`
	PagesRead int       `json:"pages_read" doc:"Pages read"`
	Summary   string    `json:"summary,omitempty" doc:"Session notes"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func toSessionResponse(rs *domain.ReadingSession) SessionResponse {
	return SessionResponse{
		ID:        rs.ID,
		BookID:    rs.BookID,
		Date:      rs.Date,
		PagesRead: rs.PagesRead,
		Summary:   rs.Summary,
		CreatedAt: rs.CreatedAt,
		UpdatedAt: rs.UpdatedAt,
	}
}

// ListSessionsInput contains query filters for listing sessions.
type ListSessionsInput struct {
	BookID string `query:"book_id" doc:"Filter by book ID"`
}

// ListSessionsOutput wraps the session list for Huma.
type ListSessionsOutput struct {
	Body struct {
		Sessions []SessionResponse `json:"sessions" doc:"List of reading sessions"`
	}
}

// CreateSessionRequest is the request body for creating a reading session.
type CreateSessionRequest struct {
	BookID    string    `json:"book_id" validate:"required" doc:"Book ID"`
	Date      time.Time `json:"date" validate:"required" doc:"Reading date"`
	PagesRead int       `json:"pages_read" validate:"required,gt=0" doc:"Pages read"`
	Summary   string    `json:"summary,omitempty" validate:"omitempty,max=5000" doc:"Session notes"`
}

// CreateSessionInput wraps the create session request for Huma.
type CreateSessionInput struct {
	Body CreateSessionRequest
}

// SessionOutput wraps a single session response for Huma.
type SessionOutput struct {
	Body SessionResponse
}

// GetSessionInput contains parameters for getting a session.
type GetSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// UpdateSessionRequest is the request body for updating a reading session.
type UpdateSessionRequest struct {
	BookID    *string    `json:"book_id,omitempty" doc:"Book ID"`
	Date      *time.Time `json:"date,omitempty" doc:"Reading date"`
	PagesRead *int       `json:"pages_read,omitempty" validate:"omitempty,gt=0" doc:"Pages read"`
	Summary   *string    `json:"summary,omitempty" validate:"omitempty,max=5000" doc:"Session notes"`
}

// UpdateSessionInput wraps the update session request for Huma.
type UpdateSessionInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body UpdateSessionRequest
}

// DeleteSessionInput contains parameters for deleting a session.
type DeleteSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// === Handlers ===

func (s *Server) handleListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	var (
		sessions []*domain.ReadingSession
		err      error
	)
	if input.BookID != "" {
		sessions, err = s.services.Sessions.ListForBook(ctx, input.BookID)
	} else {
		sessions, err = s.services.Sessions.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := &ListSessionsOutput{}
	out.Body.Sessions = make([]SessionResponse, len(sessions))
	for i, rs := range sessions {
		out.Body.Sessions[i] = toSessionResponse(rs)
	}
	return out, nil
}

func (s *Server) handleCreateSession(ctx context.Context, input *CreateSessionInput) (*SessionOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	session, err := s.services.Sessions.Create(ctx, service.CreateSessionParams{
		BookID:    input.Body.BookID,
		Date:      input.Body.Date,
		PagesRead: input.Body.PagesRead,
		Summary:   input.Body.Summary,
	})
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: toSessionResponse(session)}, nil
}

func (s *Server) handleGetSession(ctx context.Context, input *GetSessionInput) (*SessionOutput, error) {
	session, err := s.services.Sessions.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: toSessionResponse(session)}, nil
}

func (s *Server) handleUpdateSession(ctx context.Context, input *UpdateSessionInput) (*SessionOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	session, err := s.services.Sessions.Update(ctx, input.ID, service.UpdateSessionParams{
		BookID:    input.Body.BookID,
		Date:      input.Body.Date,
		PagesRead: input.Body.PagesRead,
		Summary:   input.Body.Summary,
	})
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: toSessionResponse(session)}, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteOutput, error) {
	if err := s.services.Sessions.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
