package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// AddFilterInput commits a filter to a grid session. Column and operator fall
// back to the editor draft defaults when empty.
type AddFilterInput struct {
	GridID   string            `json:"grid_id"`
	Column   string            `json:"column"`
	Operator datagrid.Operator `json:"operator"`
	Value    string            `json:"value"`
}

type filterService interface {
	CommitDraft(ctx context.Context, id string, draft datagrid.Filter) error
}

// AddFilterCommand wraps Service.CommitDraft.
type AddFilterCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewAddFilterCommand builds the command.
func NewAddFilterCommand(service filterService, telemetry Telemetry) *AddFilterCommand {
	return &AddFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddFilterInput] = (*AddFilterCommand)(nil)

// Execute commits the filter. Blank values are ignored by the grid.
func (c *AddFilterCommand) Execute(ctx context.Context, msg AddFilterInput) error {
	if c.service == nil {
		return errors.New("add filter command requires service")
	}
	draft := datagrid.Filter{ColumnID: msg.Column, Operator: msg.Operator, Operand: msg.Value}
	if err := c.service.CommitDraft(ctx, msg.GridID, draft); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.filter_add", map[string]any{
		"grid_id":  msg.GridID,
		"column":   msg.Column,
		"operator": string(msg.Operator),
	})
	return nil
}

// RemoveFilterInput removes one filter by index, or every filter when All is set.
type RemoveFilterInput struct {
	GridID string `json:"grid_id"`
	Index  int    `json:"index"`
	All    bool   `json:"all"`
}

type removeFilterService interface {
	RemoveFilter(ctx context.Context, id string, index int) error
	RemoveAllFilters(ctx context.Context, id string) error
}

// RemoveFilterCommand drops committed filters.
type RemoveFilterCommand struct {
	service   removeFilterService
	telemetry Telemetry
}

// NewRemoveFilterCommand builds the command.
func NewRemoveFilterCommand(service removeFilterService, telemetry Telemetry) *RemoveFilterCommand {
	return &RemoveFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveFilterInput] = (*RemoveFilterCommand)(nil)

// Execute removes the filter(s).
func (c *RemoveFilterCommand) Execute(ctx context.Context, msg RemoveFilterInput) error {
	if c.service == nil {
		return errors.New("remove filter command requires service")
	}
	var err error
	if msg.All {
		err = c.service.RemoveAllFilters(ctx, msg.GridID)
	} else {
		err = c.service.RemoveFilter(ctx, msg.GridID, msg.Index)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.filter_remove", map[string]any{
		"grid_id": msg.GridID,
		"index":   msg.Index,
		"all":     msg.All,
	})
	return nil
}
