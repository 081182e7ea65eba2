package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search the library",
		Description: "Full-text search across books, authors, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains search query parameters.
type SearchInput struct {
	Query  string   `query:"q" doc:"Search query"`
	Types  []string `query:"type" doc:"Document types to include (book, author, tag)"`
	Limit  int      `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum results"`
	Offset int      `query:"offset" default:"0" minimum:"0" doc:"Pagination offset"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Types = input.Types
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: *result}, nil
}
