package datagrid

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const defaultTemplate = "grid.html"

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// viewSource is the part of Service the controller reads from.
type viewSource interface {
	View(ctx context.Context, id string) (View, error)
}

// ControllerOptions wires the controller.
type ControllerOptions struct {
	Service  viewSource
	Renderer Renderer
	Template string
	Title    string
}

// Controller turns grid views into HTML pages and JSON payloads.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	return &Controller{opts: opts}
}

// ViewPayload returns the data handed to templates and JSON clients.
func (c *Controller) ViewPayload(ctx context.Context, id string) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("datagrid: controller requires a service")
	}
	view, err := c.opts.Service.View(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"grid_id": id,
		"title":   c.opts.Title,
		"view":    view,
	}, nil
}

// RenderTemplate renders the grid page into out.
func (c *Controller) RenderTemplate(ctx context.Context, id string, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("datagrid: controller requires a renderer")
	}
	if c.opts.Service == nil {
		return errors.New("datagrid: controller requires a service")
	}
	view, err := c.opts.Service.View(ctx, id)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"grid_id": id,
		"title":   c.opts.Title,
		"view":    templateView(view),
	}
	if _, err := c.opts.Renderer.Render(c.opts.Template, payload, out); err != nil {
		return fmt.Errorf("datagrid: render %s: %w", c.opts.Template, err)
	}
	return nil
}

// templateView flattens a view into plain maps keyed like its JSON form.
func templateView(view View) map[string]any {
	columns := make([]map[string]any, len(view.Columns))
	for i, col := range view.Columns {
		columns[i] = map[string]any{
			"id":        col.ID,
			"label":     col.Label,
			"sortable":  col.Sortable,
			"indicator": col.Indicator,
		}
	}
	out := map[string]any{
		"columns":       columns,
		"rows":          view.Rows,
		"empty":         view.Empty,
		"empty_message": view.EmptyMessage,
		"colspan":       view.ColSpan,
		"search":        view.Search,
		"filter_count":  len(view.Filters),
		"pagination": map[string]any{
			"current":  view.Pagination.Current,
			"pages":    view.Pagination.Pages,
			"summary":  view.Pagination.Summary,
			"has_prev": view.Pagination.HasPrev,
			"has_next": view.Pagination.HasNext,
		},
	}
	if view.Popup != nil {
		out["popup"] = templatePopup(view.Popup)
	}
	return out
}

func templatePopup(p *PopupView) map[string]any {
	popup := map[string]any{
		"kind": string(p.Kind),
		"x":    p.Position.X,
		"y":    p.Position.Y,
	}
	if p.Filter != nil {
		active := make([]map[string]any, len(p.Filter.Active))
		for i, f := range p.Filter.Active {
			active[i] = map[string]any{
				"index":          f.Index,
				"column":         f.Column,
				"operator_label": f.OperatorLabel,
				"value":          f.Value,
			}
		}
		popup["filter"] = map[string]any{
			"draft_value":   p.Filter.Draft.Operand,
			"columns":       templateChoices(p.Filter.Columns),
			"operators":     templateChoices(p.Filter.Operators),
			"active":        active,
			"empty_message": p.Filter.EmptyMessage,
		}
	}
	if len(p.Columns) > 0 {
		columns := make([]map[string]any, len(p.Columns))
		for i, col := range p.Columns {
			columns[i] = map[string]any{"id": col.ID, "label": col.Label, "visible": col.Visible}
		}
		popup["columns"] = columns
	}
	return popup
}

func templateChoices(choices []Choice) []map[string]any {
	out := make([]map[string]any, len(choices))
	for i, c := range choices {
		out[i] = map[string]any{"value": c.Value, "label": c.Label, "selected": c.Selected}
	}
	return out
}
