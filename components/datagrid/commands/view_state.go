package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SearchInput sets the global search query.
type SearchInput struct {
	GridID string `json:"grid_id"`
	Query  string `json:"query"`
}

type searchService interface {
	SetSearch(ctx context.Context, id, query string) error
}

// SearchCommand wraps Service.SetSearch.
type SearchCommand struct {
	service   searchService
	telemetry Telemetry
}

// NewSearchCommand builds the command.
func NewSearchCommand(service searchService, telemetry Telemetry) *SearchCommand {
	return &SearchCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SearchInput] = (*SearchCommand)(nil)

// Execute updates the query.
func (c *SearchCommand) Execute(ctx context.Context, msg SearchInput) error {
	if c.service == nil {
		return errors.New("search command requires service")
	}
	if err := c.service.SetSearch(ctx, msg.GridID, msg.Query); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.search", map[string]any{"grid_id": msg.GridID})
	return nil
}

// ToggleColumnInput flips a column's visibility.
type ToggleColumnInput struct {
	GridID string `json:"grid_id"`
	Column string `json:"column"`
}

type columnService interface {
	ToggleColumn(ctx context.Context, id, columnID string) error
}

// ToggleColumnCommand wraps Service.ToggleColumn.
type ToggleColumnCommand struct {
	service   columnService
	telemetry Telemetry
}

// NewToggleColumnCommand builds the command.
func NewToggleColumnCommand(service columnService, telemetry Telemetry) *ToggleColumnCommand {
	return &ToggleColumnCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleColumnInput] = (*ToggleColumnCommand)(nil)

func (c *ToggleColumnCommand) Execute(ctx context.Context, msg ToggleColumnInput) error {
	if c.service == nil {
		return errors.New("toggle column command requires service")
	}
	if msg.Column == "" {
		return errors.New("toggle column command requires column")
	}
	if err := c.service.ToggleColumn(ctx, msg.GridID, msg.Column); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.column_toggle", map[string]any{
		"grid_id": msg.GridID,
		"column":  msg.Column,
	})
	return nil
}

// ToggleSortInput is a header click.
type ToggleSortInput struct {
	GridID string `json:"grid_id"`
	Column string `json:"column"`
}

type sortService interface {
	ToggleSort(ctx context.Context, id, columnID string) error
}

// ToggleSortCommand advances the sort cycle.
type ToggleSortCommand struct {
	service   sortService
	telemetry Telemetry
}

// NewToggleSortCommand builds the command.
func NewToggleSortCommand(service sortService, telemetry Telemetry) *ToggleSortCommand {
	return &ToggleSortCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSortInput] = (*ToggleSortCommand)(nil)

func (c *ToggleSortCommand) Execute(ctx context.Context, msg ToggleSortInput) error {
	if c.service == nil {
		return errors.New("toggle sort command requires service")
	}
	if err := c.service.ToggleSort(ctx, msg.GridID, msg.Column); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.sort", map[string]any{
		"grid_id": msg.GridID,
		"column":  msg.Column,
	})
	return nil
}

// PaginateInput moves to Page, or steps when Action is "next" or "prev".
type PaginateInput struct {
	GridID string `json:"grid_id"`
	Page   int    `json:"page"`
	Action string `json:"action,omitempty"`
}

type pageService interface {
	Paginate(ctx context.Context, id string, page int, action string) error
}

// PaginateCommand wraps Service.Paginate.
type PaginateCommand struct {
	service   pageService
	telemetry Telemetry
}

// NewPaginateCommand builds the command.
func NewPaginateCommand(service pageService, telemetry Telemetry) *PaginateCommand {
	return &PaginateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PaginateInput] = (*PaginateCommand)(nil)

func (c *PaginateCommand) Execute(ctx context.Context, msg PaginateInput) error {
	if c.service == nil {
		return errors.New("paginate command requires service")
	}
	if err := c.service.Paginate(ctx, msg.GridID, msg.Page, msg.Action); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.page", map[string]any{
		"grid_id": msg.GridID,
		"page":    msg.Page,
		"action":  msg.Action,
	})
	return nil
}
