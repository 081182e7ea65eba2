package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/service"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all books, optionally filtered by author or status",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Books"},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteBook",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}",
		Summary:       "Delete book",
		Description:   "Deletes a book and its sessions, goal, and tag links",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/tags",
		Summary:     "Get book tags",
		Tags:        []string{"Books"},
	}, s.handleGetBookTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBookTag",
		Method:        http.MethodPut,
		Path:          "/api/v1/books/{id}/tags/{tagId}",
		Summary:       "Add tag to book",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Books"},
	}, s.handleAddBookTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeBookTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}/tags/{tagId}",
		Summary:       "Remove tag from book",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Books"},
	}, s.handleRemoveBookTag)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID                 string     `json:"id" doc:"Book ID"`
	AuthorID           string     `json:"author_id" doc:"Author ID"`
	Title              string     `json:"title" doc:"Book title"`
	TotalPages         int        `json:"total_pages" doc:"Total page count"`
	Status             string     `json:"status" doc:"Reading status"`
	StartedReadingDate *time.Time `json:"started_reading_date,omitempty" doc:"Date reading started"`
	CompletedDate      *time.Time `json:"completed_date,omitempty" doc:"Date reading completed"`
	Summary            string     `json:"summary,omitempty" doc:"Book summary"`
	CreatedAt          time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt          time.Time  `json:"updated_at" doc:"Last update time"`
}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:                 b.ID,
		AuthorID:           b.AuthorID,
		Title:              b.Title,
		TotalPages:         b.TotalPages,
		Status:             string(b.Status),
		StartedReadingDate: b.StartedReadingDate,
		CompletedDate:      b.CompletedDate,
		Summary:            b.Summary,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// ListBooksInput contains query filters for listing books.
type ListBooksInput struct {
	AuthorID string `query:"author_id" doc:"Filter by author ID"`
	Status   string `query:"status" doc:"Filter by reading status"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"List of books"`
	}
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	AuthorID           string     `json:"author_id" validate:"required" doc:"Author ID"`
	Title              string     `json:"title" validate:"required,min=1,max=500" doc:"Book title"`
	TotalPages         int        `json:"total_pages" validate:"required,gt=0" doc:"Total page count"`
	Status             string     `json:"status,omitempty" validate:"omitempty,oneof=not_reading planning currently_reading completed summarized" doc:"Reading status"`
	StartedReadingDate *time.Time `json:"started_reading_date,omitempty" doc:"Date reading started"`
	CompletedDate      *time.Time `json:"completed_date,omitempty" doc:"Date reading completed"`
	Summary            string     `json:"summary,omitempty" validate:"omitempty,max=10000" doc:"Book summary"`
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookRequest is the request body for updating a book. Explicit clear
// flags distinguish "leave the date alone" from "remove the date".
type UpdateBookRequest struct {
	AuthorID           *string    `json:"author_id,omitempty" doc:"Author ID"`
	Title              *string    `json:"title,omitempty" validate:"omitempty,min=1,max=500" doc:"Book title"`
	TotalPages         *int       `json:"total_pages,omitempty" validate:"omitempty,gt=0" doc:"Total page count"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=not_reading planning currently_reading completed summarized" doc:"Reading status"`
	StartedReadingDate *time.Time `json:"started_reading_date,omitempty" doc:"Date reading started"`
	CompletedDate      *time.Time `json:"completed_date,omitempty" doc:"Date reading completed"`
	Summary            *string    `json:"summary,omitempty" validate:"omitempty,max=10000" doc:"Book summary"`
	ClearStartedDate   bool       `json:"clear_started_date,omitempty" doc:"Remove the started date"`
	ClearCompletedDate bool       `json:"clear_completed_date,omitempty" doc:"Remove the completed date"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookTagsOutput wraps a book's tag list for Huma.
type BookTagsOutput struct {
	Body struct {
		Tags []TagResponse `json:"tags" doc:"Tags on this book"`
	}
}

// BookTagInput identifies a (book, tag) pair.
type BookTagInput struct {
	ID    string `path:"id" doc:"Book ID"`
	TagID string `path:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	books, err := s.services.Books.List(ctx, store.BookFilter{
		AuthorID: input.AuthorID,
		Status:   domain.ReadingStatus(input.Status),
	})
	if err != nil {
		return nil, err
	}

	out := &ListBooksOutput{}
	out.Body.Books = make([]BookResponse, len(books))
	for i, b := range books {
		out.Body.Books[i] = toBookResponse(b)
	}
	return out, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book, err := s.services.Books.Create(ctx, service.CreateBookParams{
		AuthorID:           input.Body.AuthorID,
		Title:              input.Body.Title,
		TotalPages:         input.Body.TotalPages,
		Status:             domain.ReadingStatus(input.Body.Status),
		StartedReadingDate: input.Body.StartedReadingDate,
		CompletedDate:      input.Body.CompletedDate,
		Summary:            input.Body.Summary,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Books.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	params := service.UpdateBookParams{
		AuthorID:           input.Body.AuthorID,
		Title:              input.Body.Title,
		TotalPages:         input.Body.TotalPages,
		StartedReadingDate: input.Body.StartedReadingDate,
		CompletedDate:      input.Body.CompletedDate,
		Summary:            input.Body.Summary,
		ClearStartedDate:   input.Body.ClearStartedDate,
		ClearCompletedDate: input.Body.ClearCompletedDate,
	}
	if input.Body.Status != nil {
		status := domain.ReadingStatus(*input.Body.Status)
		params.Status = &status
	}

	book, err := s.services.Books.Update(ctx, input.ID, params)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*DeleteOutput, error) {
	if err := s.services.Books.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}

func (s *Server) handleGetBookTags(ctx context.Context, input *GetBookInput) (*BookTagsOutput, error) {
	tags, err := s.services.Books.Tags(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &BookTagsOutput{}
	out.Body.Tags = make([]TagResponse, len(tags))
	for i, t := range tags {
		out.Body.Tags[i] = toTagResponse(t)
	}
	return out, nil
}

func (s *Server) handleAddBookTag(ctx context.Context, input *BookTagInput) (*DeleteOutput, error) {
	if err := s.services.Books.AddTag(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}

func (s *Server) handleRemoveBookTag(ctx context.Context, input *BookTagInput) (*DeleteOutput, error) {
	if err := s.services.Books.RemoveTag(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
