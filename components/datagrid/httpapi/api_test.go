package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-datagrid/components/datagrid"
	"github.com/goliatone/go-datagrid/components/datagrid/commands"
	"github.com/goliatone/go-datagrid/components/datagrid/queries"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T, R any] struct {
	last   T
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(ctx context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

type stubOpener struct {
	id string
}

func (s stubOpener) Open(context.Context) (string, error) { return s.id, nil }

func TestHandleOpen(t *testing.T) {
	api := &Handlers{Opener: stubOpener{id: "g1"}}
	rec := httptest.NewRecorder()
	api.HandleOpen(rec, httptest.NewRequest(http.MethodPost, "/grids", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["grid_id"] != "g1" {
		t.Fatalf("expected grid id in body, got %v", body)
	}
}

func TestHandleAddFilter(t *testing.T) {
	add := &stubCommander[commands.AddFilterInput]{}
	view := &stubQuerier[queries.ViewInput, datagrid.View]{result: datagrid.View{ColSpan: 2}}
	api := &Handlers{AddFilter: add, View: view}
	payload := commands.AddFilterInput{Column: "users", Operator: datagrid.OpContains, Value: "6"}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/grids/g1/filters", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddFilter(rec, req, "g1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if add.calls != 1 || add.last.GridID != "g1" || add.last.Value != "6" {
		t.Fatalf("expected add filter with grid id, got %+v", add.last)
	}
	if view.last.GridID != "g1" {
		t.Fatalf("expected refreshed view for g1")
	}
}

func TestHandleSearchWithoutViewQuery(t *testing.T) {
	search := &stubCommander[commands.SearchInput]{}
	api := &Handlers{Search: search}
	req := httptest.NewRequest(http.MethodPost, "/grids/g1/search", strings.NewReader(`{"query":"organic"}`))
	rec := httptest.NewRecorder()
	api.HandleSearch(rec, req, "g1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if search.last.Query != "organic" {
		t.Fatalf("expected query propagation, got %+v", search.last)
	}
}

func TestHandlePopupBounds(t *testing.T) {
	bounds := &stubCommander[commands.PopupBoundsInput]{}
	api := &Handlers{PopupBounds: bounds}
	body := `{"bounds":{"x":10,"y":34,"width":200,"height":120}}`
	rec := httptest.NewRecorder()
	api.HandlePopupBounds(rec, httptest.NewRequest(http.MethodPost, "/grids/g1/popup/bounds", strings.NewReader(body)), "g1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	want := datagrid.Rect{X: 10, Y: 34, Width: 200, Height: 120}
	if bounds.last.GridID != "g1" || bounds.last.Bounds != want {
		t.Fatalf("expected bounds for g1, got %+v", bounds.last)
	}
}

func TestHandleMutationErrors(t *testing.T) {
	api := &Handlers{
		ToggleSort: &stubCommander[commands.ToggleSortInput]{err: datagrid.ErrGridNotFound},
	}
	rec := httptest.NewRecorder()
	api.HandleToggleSort(rec, httptest.NewRequest(http.MethodPost, "/grids/x/sort", strings.NewReader(`{"column":"users"}`)), "x")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	api.HandleToggleColumn(rec, httptest.NewRequest(http.MethodPost, "/grids/x/columns", strings.NewReader(`{}`)), "x")
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501 for unconfigured command, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	api.HandlePaginate(rec, httptest.NewRequest(http.MethodPost, "/grids/x/page", strings.NewReader(`{`)), "x")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestHandleClose(t *testing.T) {
	closer := &stubCommander[commands.CloseGridInput]{}
	api := &Handlers{Close: closer}
	rec := httptest.NewRecorder()
	api.HandleClose(rec, httptest.NewRequest(http.MethodDelete, "/grids/g1", nil), "g1")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if closer.last.GridID != "g1" {
		t.Fatalf("expected grid id propagation")
	}
}

func TestHandleExport(t *testing.T) {
	export := &stubQuerier[queries.ExportInput, datagrid.Payload]{result: datagrid.Payload{
		Filename: datagrid.CSVFilename,
		MIMEType: datagrid.CSVMIMEType,
		Data:     []byte("Channel\r\n\"A\""),
	}}
	api := &Handlers{Export: export}
	rec := httptest.NewRecorder()
	api.HandleExport(rec, httptest.NewRequest(http.MethodGet, "/grids/g1/export?format=csv", nil), "g1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if export.last.Format != "csv" || export.last.GridID != "g1" {
		t.Fatalf("unexpected export input %+v", export.last)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="`+datagrid.CSVFilename+`"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != datagrid.CSVMIMEType {
		t.Fatalf("unexpected content type %q", got)
	}
	if rec.Body.String() != "Channel\r\n\"A\"" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
