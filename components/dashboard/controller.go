package dashboard

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

var errMissingRenderer = errors.New("dashboard: renderer is required")

// GridOpener starts the traffic report grid session shown on the page.
type GridOpener interface {
	Open(ctx context.Context) (string, error)
}

type pageSource interface {
	Page(ctx context.Context, interval int) (Page, error)
}

// ControllerOptions configures the page controller.
type ControllerOptions struct {
	Service  pageSource
	Renderer datagrid.Renderer
	Template string
	Title    string
	// Grids and GridBase embed a live traffic grid; both are optional.
	Grids    GridOpener
	GridBase string
}

// Controller renders the dashboard page.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the page service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "dashboard.html"
	}
	if opts.Title == "" {
		opts.Title = "Traffic"
	}
	return &Controller{opts: opts}
}

// PagePayload returns the page as JSON-friendly data.
func (c *Controller) PagePayload(ctx context.Context, interval int) (map[string]any, error) {
	page, err := c.opts.Service.Page(ctx, interval)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title": c.opts.Title,
		"page":  page,
	}, nil
}

// RenderTemplate renders the HTML page into out.
func (c *Controller) RenderTemplate(ctx context.Context, interval int, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	page, err := c.opts.Service.Page(ctx, interval)
	if err != nil {
		return err
	}
	data := map[string]any{
		"title":   c.opts.Title,
		"traffic": trafficView(page.Traffic),
		"ads":     adsView(page.Ads),
		"summary": summaryView(page.Summary),
	}
	if c.opts.Grids != nil {
		id, err := c.opts.Grids.Open(ctx)
		if err != nil {
			return err
		}
		base := strings.TrimRight(c.opts.GridBase, "/")
		data["grid"] = map[string]any{
			"id":  id,
			"url": base + "/grids/" + id,
		}
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, data, out)
	return err
}

func trafficView(section TrafficSection) map[string]any {
	return map[string]any{
		"bar_html":  section.BarHTML,
		"line_html": section.LineHTML,
		"bar_title": section.Bar.Title,
		"subtitle":  section.Bar.Subtitle,
	}
}

func adsView(overview AdsOverview) map[string]any {
	options := make([]map[string]any, 0, len(overview.Options))
	for _, opt := range overview.Options {
		options = append(options, map[string]any{
			"days":     opt.Days,
			"label":    opt.Label,
			"selected": opt.Selected,
		})
	}
	items := make([]map[string]any, 0, len(overview.Items))
	for _, item := range overview.Items {
		items = append(items, map[string]any{
			"name":        item.Name,
			"impressions": item.Impressions,
			"spend":       item.Spend,
		})
	}
	return map[string]any{
		"interval":      overview.Interval,
		"options":       options,
		"items":         items,
		"empty_message": overview.EmptyMessage,
	}
}

func summaryView(summary NetworkSummary) map[string]any {
	legend := make([]map[string]any, 0, len(summary.Legend))
	for _, meta := range summary.Legend {
		legend = append(legend, map[string]any{"label": meta.Label, "color": meta.Color})
	}
	bars := make([]map[string]any, 0, len(summary.Bars))
	for _, bar := range summary.Bars {
		segments := make([]map[string]any, 0, len(bar.Segments))
		for _, seg := range bar.Segments {
			segments = append(segments, map[string]any{
				"label": seg.Label,
				"color": seg.Color,
				"raw":   formatPlain(seg.Raw),
				"width": formatPlain(seg.Width),
			})
		}
		chips := make([]map[string]any, 0, len(bar.Chips))
		for _, chip := range bar.Chips {
			chips = append(chips, map[string]any{"color": chip.Color, "value": chip.Value})
		}
		bars = append(bars, map[string]any{
			"title":    bar.Title,
			"segments": segments,
			"chips":    chips,
		})
	}
	return map[string]any{
		"title":  summary.Title,
		"legend": legend,
		"bars":   bars,
	}
}
