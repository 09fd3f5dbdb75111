package datagrid

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<table></table>"))
	}
	return "<table></table>", r.err
}

type stubViewSource struct {
	view View
	err  error
}

func (s *stubViewSource) View(context.Context, string) (View, error) {
	return s.view, s.err
}

func TestControllerRenderTemplate(t *testing.T) {
	renderer := &stubRenderer{}
	source := &stubViewSource{view: Compute(Input{Columns: channelColumns, Rows: channelRows()})}
	controller := NewController(ControllerOptions{Service: source, Renderer: renderer, Title: "Traffic"})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), "grid-1", &buf))
	assert.Equal(t, "grid.html", renderer.lastTemplate)
	assert.Equal(t, "grid-1", renderer.lastPayload["grid_id"])
	assert.Equal(t, "Traffic", renderer.lastPayload["title"])
	assert.NotZero(t, buf.Len())
}

func TestControllerErrors(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewController(ControllerOptions{}).RenderTemplate(ctx, "x", io.Discard))

	_, err := NewController(ControllerOptions{}).ViewPayload(ctx, "x")
	assert.Error(t, err)

	source := &stubViewSource{err: ErrGridNotFound}
	err = NewController(ControllerOptions{Service: source, Renderer: &stubRenderer{}}).RenderTemplate(ctx, "x", io.Discard)
	assert.True(t, errors.Is(err, ErrGridNotFound))

	failing := &stubRenderer{err: errors.New("boom")}
	err = NewController(ControllerOptions{Service: &stubViewSource{}, Renderer: failing}).RenderTemplate(ctx, "x", io.Discard)
	assert.ErrorContains(t, err, "render grid.html")
}

func TestEmbeddedTemplateRenders(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	g := New(channelColumns, channelRows(), WithPointerBus(NewPointerBus()))
	defer g.Teardown()
	g.TogglePopup(PopupFilter, filterButton)

	svc := &stubViewSource{view: g.View()}
	controller := NewController(ControllerOptions{Service: svc, Renderer: renderer, Title: "Traffic"})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), g.ID(), &buf))
	html := buf.String()
	assert.Contains(t, html, "Channel")
	assert.Contains(t, html, "620")
	assert.Contains(t, html, NoFiltersMessage)
	assert.Contains(t, html, "1-3 of 3")
}

func TestEmbeddedTemplateWiresControls(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)

	g := New(channelColumns, channelRows(), WithPointerBus(NewPointerBus()))
	defer g.Teardown()
	g.TogglePopup(PopupColumns, columnButton)

	controller := NewController(ControllerOptions{Service: &stubViewSource{view: g.View()}, Renderer: renderer})
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), g.ID(), &buf))
	html := buf.String()

	for _, route := range []string{"'/popup/bounds'", "'/pointer'", "'/popup'", "'/sort'", "'/columns'", "'/filters'", "'/filters/remove'", "'/page'", "'/search'"} {
		assert.Contains(t, html, route)
	}
	assert.Contains(t, html, `data-action="column-toggle"`)
	assert.Contains(t, html, "position: absolute")
}
