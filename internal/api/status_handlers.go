package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingStatuses",
		Method:      http.MethodGet,
		Path:        "/api/v1/readingstatus",
		Summary:     "List reading statuses",
		Description: "Returns every reading status with display metadata, in lifecycle order",
		Tags:        []string{"Reading Statuses"},
	}, s.handleListStatuses)
}

// StatusListOutput wraps the status list for Huma.
type StatusListOutput struct {
	Body struct {
		Statuses []domain.StatusInfo `json:"statuses" doc:"Reading statuses in lifecycle order"`
	}
}

func (s *Server) handleListStatuses(_ context.Context, _ *struct{}) (*StatusListOutput, error) {
	out := &StatusListOutput{}
	out.Body.Statuses = domain.AllStatuses()
	return out, nil
}
