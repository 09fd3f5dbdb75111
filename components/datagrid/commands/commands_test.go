package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type stubService struct {
	draft   datagrid.Filter
	removed []int
	cleared int
	search  string
	toggled string
	sorted  string
	page    int
	action  string
	popup   datagrid.PopupKind
	bounds  *datagrid.Rect
	pointer datagrid.PointerEvent
	closed  string
	err     error
}

func (s *stubService) CommitDraft(_ context.Context, _ string, draft datagrid.Filter) error {
	s.draft = draft
	return s.err
}

func (s *stubService) RemoveFilter(_ context.Context, _ string, index int) error {
	s.removed = append(s.removed, index)
	return s.err
}

func (s *stubService) RemoveAllFilters(context.Context, string) error {
	s.cleared++
	return s.err
}

func (s *stubService) SetSearch(_ context.Context, _ string, query string) error {
	s.search = query
	return s.err
}

func (s *stubService) ToggleColumn(_ context.Context, _ string, column string) error {
	s.toggled = column
	return s.err
}

func (s *stubService) ToggleSort(_ context.Context, _ string, column string) error {
	s.sorted = column
	return s.err
}

func (s *stubService) Paginate(_ context.Context, _ string, page int, action string) error {
	s.page, s.action = page, action
	return s.err
}

func (s *stubService) TogglePopup(_ context.Context, _ string, kind datagrid.PopupKind, _ datagrid.Rect) error {
	s.popup = kind
	return s.err
}

func (s *stubService) SetPopupBounds(_ context.Context, _ string, bounds datagrid.Rect) error {
	s.bounds = &bounds
	return s.err
}

func (s *stubService) DispatchPointer(_ context.Context, _ string, event datagrid.PointerEvent) error {
	s.pointer = event
	return s.err
}

func (s *stubService) Close(_ context.Context, id string) error {
	s.closed = id
	return s.err
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}

func TestAddFilterCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAddFilterCommand(service, telemetry)
	err := cmd.Execute(context.Background(), AddFilterInput{GridID: "g1", Column: "users", Operator: datagrid.OpContains, Value: "6"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	want := datagrid.Filter{ColumnID: "users", Operator: datagrid.OpContains, Operand: "6"}
	if service.draft != want {
		t.Fatalf("expected draft %+v, got %+v", want, service.draft)
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry call")
	}
}

func TestAddFilterCommandPropagatesErrors(t *testing.T) {
	service := &stubService{err: datagrid.ErrGridNotFound}
	cmd := NewAddFilterCommand(service, nil)
	err := cmd.Execute(context.Background(), AddFilterInput{GridID: "missing", Value: "x"})
	if !errors.Is(err, datagrid.ErrGridNotFound) {
		t.Fatalf("expected ErrGridNotFound, got %v", err)
	}
	if err := NewAddFilterCommand(nil, nil).Execute(context.Background(), AddFilterInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestRemoveFilterCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRemoveFilterCommand(service, nil)
	if err := cmd.Execute(context.Background(), RemoveFilterInput{GridID: "g1", Index: 2}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if err := cmd.Execute(context.Background(), RemoveFilterInput{GridID: "g1", All: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.removed) != 1 || service.removed[0] != 2 {
		t.Fatalf("expected index 2 removal, got %v", service.removed)
	}
	if service.cleared != 1 {
		t.Fatalf("expected remove all call")
	}
}

func TestViewStateCommands(t *testing.T) {
	ctx := context.Background()
	service := &stubService{}
	if err := NewSearchCommand(service, nil).Execute(ctx, SearchInput{GridID: "g1", Query: "organic"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if err := NewToggleColumnCommand(service, nil).Execute(ctx, ToggleColumnInput{GridID: "g1", Column: "users"}); err != nil {
		t.Fatalf("column: %v", err)
	}
	if err := NewToggleColumnCommand(service, nil).Execute(ctx, ToggleColumnInput{GridID: "g1"}); err == nil {
		t.Fatalf("expected error for missing column")
	}
	if err := NewToggleSortCommand(service, nil).Execute(ctx, ToggleSortInput{GridID: "g1", Column: "channel"}); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if err := NewPaginateCommand(service, nil).Execute(ctx, PaginateInput{GridID: "g1", Action: "next"}); err != nil {
		t.Fatalf("page: %v", err)
	}
	if service.search != "organic" || service.toggled != "users" || service.sorted != "channel" || service.action != "next" {
		t.Fatalf("unexpected service state: %+v", service)
	}
}

func TestPopupCommands(t *testing.T) {
	ctx := context.Background()
	service := &stubService{}
	bounds := datagrid.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	cmd := NewTogglePopupCommand(service, nil)
	if err := cmd.Execute(ctx, TogglePopupInput{GridID: "g1", Kind: datagrid.PopupFilter, Bounds: &bounds}); err != nil {
		t.Fatalf("popup: %v", err)
	}
	if service.popup != datagrid.PopupFilter || service.bounds == nil || *service.bounds != bounds {
		t.Fatalf("expected filter popup with bounds, got %+v", service)
	}
	if err := cmd.Execute(ctx, TogglePopupInput{GridID: "g1", Kind: "menu"}); err == nil {
		t.Fatalf("expected unknown kind to fail")
	}

	drawn := datagrid.Rect{X: 10, Y: 34, Width: 200, Height: 120}
	if err := NewPopupBoundsCommand(service).Execute(ctx, PopupBoundsInput{GridID: "g1", Bounds: drawn}); err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if *service.bounds != drawn {
		t.Fatalf("expected bounds %+v, got %+v", drawn, *service.bounds)
	}
	if err := NewPopupBoundsCommand(service).Execute(ctx, PopupBoundsInput{GridID: "g1"}); err == nil {
		t.Fatalf("expected empty bounds to fail")
	}

	event := datagrid.PointerEvent{Kind: datagrid.PointerDown, At: datagrid.Point{X: 5, Y: 5}}
	if err := NewPointerCommand(service).Execute(ctx, PointerInput{GridID: "g1", Event: event}); err != nil {
		t.Fatalf("pointer: %v", err)
	}
	if service.pointer != event {
		t.Fatalf("expected pointer event forwarded")
	}
}

func TestCloseGridCommand(t *testing.T) {
	service := &stubService{}
	if err := NewCloseGridCommand(service, nil).Execute(context.Background(), CloseGridInput{GridID: "g1"}); err != nil {
		t.Fatalf("close: %v", err)
	}
	if service.closed != "g1" {
		t.Fatalf("expected g1 closed, got %q", service.closed)
	}
}
