package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// TogglePopupInput opens or closes the filter or column editor.
type TogglePopupInput struct {
	GridID  string             `json:"grid_id"`
	Kind    datagrid.PopupKind `json:"kind"`
	Trigger datagrid.Rect      `json:"trigger"`
	Bounds  *datagrid.Rect     `json:"bounds,omitempty"`
}

type popupService interface {
	TogglePopup(ctx context.Context, id string, kind datagrid.PopupKind, trigger datagrid.Rect) error
	SetPopupBounds(ctx context.Context, id string, bounds datagrid.Rect) error
}

// TogglePopupCommand wraps Service.TogglePopup. When Bounds is set the rendered
// popup region is recorded right after opening.
type TogglePopupCommand struct {
	service   popupService
	telemetry Telemetry
}

// NewTogglePopupCommand builds the command.
func NewTogglePopupCommand(service popupService, telemetry Telemetry) *TogglePopupCommand {
	return &TogglePopupCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[TogglePopupInput] = (*TogglePopupCommand)(nil)

func (c *TogglePopupCommand) Execute(ctx context.Context, msg TogglePopupInput) error {
	if c.service == nil {
		return errors.New("popup command requires service")
	}
	switch msg.Kind {
	case datagrid.PopupFilter, datagrid.PopupColumns, datagrid.PopupNone:
	default:
		return errors.New("popup command received unknown popup kind")
	}
	if err := c.service.TogglePopup(ctx, msg.GridID, msg.Kind, msg.Trigger); err != nil {
		return err
	}
	if msg.Bounds != nil {
		if err := c.service.SetPopupBounds(ctx, msg.GridID, *msg.Bounds); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "datagrid.command.popup", map[string]any{
		"grid_id": msg.GridID,
		"kind":    string(msg.Kind),
	})
	return nil
}

// PopupBoundsInput reports where the open popup was drawn.
type PopupBoundsInput struct {
	GridID string        `json:"grid_id"`
	Bounds datagrid.Rect `json:"bounds"`
}

type boundsService interface {
	SetPopupBounds(ctx context.Context, id string, bounds datagrid.Rect) error
}

// PopupBoundsCommand wraps Service.SetPopupBounds. Outside presses only
// dismiss a popup once its bounds are known.
type PopupBoundsCommand struct {
	service boundsService
}

// NewPopupBoundsCommand builds the command.
func NewPopupBoundsCommand(service boundsService) *PopupBoundsCommand {
	return &PopupBoundsCommand{service: service}
}

var _ gocommand.Commander[PopupBoundsInput] = (*PopupBoundsCommand)(nil)

func (c *PopupBoundsCommand) Execute(ctx context.Context, msg PopupBoundsInput) error {
	if c.service == nil {
		return errors.New("popup bounds command requires service")
	}
	if msg.Bounds.Width <= 0 || msg.Bounds.Height <= 0 {
		return errors.New("popup bounds command requires a non-empty rectangle")
	}
	return c.service.SetPopupBounds(ctx, msg.GridID, msg.Bounds)
}

// PointerInput reports a pointer press or release to a grid session.
type PointerInput struct {
	GridID string                `json:"grid_id"`
	Event  datagrid.PointerEvent `json:"event"`
}

type pointerService interface {
	DispatchPointer(ctx context.Context, id string, event datagrid.PointerEvent) error
}

// PointerCommand forwards pointer events so open popups can dismiss themselves.
type PointerCommand struct {
	service pointerService
}

// NewPointerCommand builds the command.
func NewPointerCommand(service pointerService) *PointerCommand {
	return &PointerCommand{service: service}
}

var _ gocommand.Commander[PointerInput] = (*PointerCommand)(nil)

func (c *PointerCommand) Execute(ctx context.Context, msg PointerInput) error {
	if c.service == nil {
		return errors.New("pointer command requires service")
	}
	return c.service.DispatchPointer(ctx, msg.GridID, msg.Event)
}

// CloseGridInput ends a grid session.
type CloseGridInput struct {
	GridID string `json:"grid_id"`
}

type closeService interface {
	Close(ctx context.Context, id string) error
}

// CloseGridCommand tears a session down and releases its listeners.
type CloseGridCommand struct {
	service   closeService
	telemetry Telemetry
}

// NewCloseGridCommand builds the command.
func NewCloseGridCommand(service closeService, telemetry Telemetry) *CloseGridCommand {
	return &CloseGridCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseGridInput] = (*CloseGridCommand)(nil)

func (c *CloseGridCommand) Execute(ctx context.Context, msg CloseGridInput) error {
	if c.service == nil {
		return errors.New("close command requires service")
	}
	if err := c.service.Close(ctx, msg.GridID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "datagrid.command.close", map[string]any{"grid_id": msg.GridID})
	return nil
}
