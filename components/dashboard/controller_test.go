package dashboard

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	name string
	data map[string]any
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.name = name
	s.data, _ = data.(map[string]any)
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("ok"))
	}
	return "ok", nil
}

type stubOpener struct{ id string }

func (s stubOpener) Open(context.Context) (string, error) { return s.id, nil }

func TestControllerRenderTemplateData(t *testing.T) {
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Service:  newTestService(fixtureSource(t), nil),
		Renderer: renderer,
		Grids:    stubOpener{id: "g1"},
		GridBase: "/datagrid/",
	})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), 7, &buf))
	assert.Equal(t, "ok", buf.String())
	assert.Equal(t, "dashboard.html", renderer.name)

	grid, ok := renderer.data["grid"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/datagrid/grids/g1", grid["url"])

	ads := renderer.data["ads"].(map[string]any)
	assert.Equal(t, 7, ads["interval"])
	assert.Len(t, ads["items"], 1)
	assert.Empty(t, ads["empty_message"])

	summary := renderer.data["summary"].(map[string]any)
	assert.Len(t, summary["bars"], 3)
}

func TestControllerRequiresRenderer(t *testing.T) {
	controller := NewController(ControllerOptions{Service: newTestService(fixtureSource(t), nil)})
	assert.ErrorIs(t, controller.RenderTemplate(context.Background(), 30, io.Discard), errMissingRenderer)

	payload, err := controller.PagePayload(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, "Traffic", payload["title"])
}

func TestControllerRendersEmbeddedTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{
		Service:  newTestService(fixtureSource(t), nil),
		Renderer: renderer,
	})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), 30, &buf))
	html := buf.String()
	assert.Contains(t, html, "Ads Overview")
	assert.Contains(t, html, "Spring sale")
	assert.Contains(t, html, "1,500,000")
	assert.Contains(t, html, SummaryTitle)
	assert.Contains(t, html, "Google search")
}
