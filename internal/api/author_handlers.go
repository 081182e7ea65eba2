package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAuthors",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors",
		Summary:     "List authors",
		Description: "Returns all authors ordered by name",
		Tags:        []string{"Authors"},
	}, s.handleListAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createAuthor",
		Method:        http.MethodPost,
		Path:          "/api/v1/authors",
		Summary:       "Create author",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Authors"},
	}, s.handleCreateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Get author",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAuthor",
		Method:      http.MethodPatch,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Update author",
		Tags:        []string{"Authors"},
	}, s.handleUpdateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAuthor",
		Method:        http.MethodDelete,
		Path:          "/api/v1/authors/{id}",
		Summary:       "Delete author",
		Description:   "Deletes an author and all their books",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Authors"},
	}, s.handleDeleteAuthor)
}

// === DTOs ===

// AuthorResponse contains author data in API responses.
type AuthorResponse struct {
	ID        string    `json:"id" doc:"Author ID"`
	Name      string    `json:"name" doc:"Author name"`
	Bio       string    `json:"bio,omitempty" doc:"Short biography"`
	ImageURL  string    `json:"image_url,omitempty" doc:"Profile image URL"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

func toAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ListAuthorsOutput wraps the author list for Huma.
type ListAuthorsOutput struct {
	Body struct {
		Authors []AuthorResponse `json:"authors" doc:"List of authors"`
	}
}

// CreateAuthorRequest is the request body for creating an author.
type CreateAuthorRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200" doc:"Author name"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=5000" doc:"Short biography"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url" doc:"Profile image URL"`
}

// CreateAuthorInput wraps the create author request for Huma.
type CreateAuthorInput struct {
	Body CreateAuthorRequest
}

// AuthorOutput wraps a single author response for Huma.
type AuthorOutput struct {
	Body AuthorResponse
}

// GetAuthorInput contains parameters for getting an author.
type GetAuthorInput struct {
	ID string `path:"id" doc:"Author ID"`
}

// UpdateAuthorRequest is the request body for updating an author.
type UpdateAuthorRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200" doc:"Author name"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=5000" doc:"Short biography"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url" doc:"Profile image URL"`
}

// UpdateAuthorInput wraps the update author request for Huma.
type UpdateAuthorInput struct {
	ID   string `path:"id" doc:"Author ID"`
	Body UpdateAuthorRequest
}

// DeleteAuthorInput contains parameters for deleting an author.
type DeleteAuthorInput struct {
	ID string `path:"id" doc:"Author ID"`
}

// DeleteOutput is an empty 204 response.
type DeleteOutput struct{}

// === Handlers ===

func (s *Server) handleListAuthors(ctx context.Context, _ *struct{}) (*ListAuthorsOutput, error) {
	authors, err := s.services.Authors.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListAuthorsOutput{}
	out.Body.Authors = make([]AuthorResponse, len(authors))
	for i, a := range authors {
		out.Body.Authors[i] = toAuthorResponse(a)
	}
	return out, nil
}

func (s *Server) handleCreateAuthor(ctx context.Context, input *CreateAuthorInput) (*AuthorOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	author, err := s.services.Authors.Create(ctx, service.CreateAuthorParams{
		Name:     input.Body.Name,
		Bio:      input.Body.Bio,
		ImageURL: input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	return &AuthorOutput{Body: toAuthorResponse(author)}, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *GetAuthorInput) (*AuthorOutput, error) {
	author, err := s.services.Authors.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorOutput{Body: toAuthorResponse(author)}, nil
}

func (s *Server) handleUpdateAuthor(ctx context.Context, input *UpdateAuthorInput) (*AuthorOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	author, err := s.services.Authors.Update(ctx, input.ID, service.UpdateAuthorParams{
		Name:     input.Body.Name,
		Bio:      input.Body.Bio,
		ImageURL: input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	return &AuthorOutput{Body: toAuthorResponse(author)}, nil
}

func (s *Server) handleDeleteAuthor(ctx context.Context, input *DeleteAuthorInput) (*DeleteOutput, error) {
	if err := s.services.Authors.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
