package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// ViewInput identifies the grid session to render.
type ViewInput struct {
	GridID string `json:"grid_id"`
}

type viewService interface {
	View(ctx context.Context, id string) (datagrid.View, error)
}

// GridViewQuery fetches the current page of a grid session.
type GridViewQuery struct {
	service viewService
}

// NewGridViewQuery builds the query.
func NewGridViewQuery(service viewService) *GridViewQuery {
	return &GridViewQuery{service: service}
}

var _ gocommand.Querier[ViewInput, datagrid.View] = (*GridViewQuery)(nil)

// Query returns the computed view.
func (q *GridViewQuery) Query(ctx context.Context, input ViewInput) (datagrid.View, error) {
	return q.service.View(ctx, input.GridID)
}

// ExportInput selects the session and the download format (csv or pdf).
type ExportInput struct {
	GridID string `json:"grid_id"`
	Format string `json:"format"`
}

type exportService interface {
	Export(ctx context.Context, id, format string) (datagrid.Payload, error)
}

// ExportQuery renders the filtered and sorted rows of a session as a download.
type ExportQuery struct {
	service exportService
}

// NewExportQuery builds the query.
func NewExportQuery(service exportService) *ExportQuery {
	return &ExportQuery{service: service}
}

var _ gocommand.Querier[ExportInput, datagrid.Payload] = (*ExportQuery)(nil)

// Query renders the export payload.
func (q *ExportQuery) Query(ctx context.Context, input ExportInput) (datagrid.Payload, error) {
	return q.service.Export(ctx, input.GridID, input.Format)
}
