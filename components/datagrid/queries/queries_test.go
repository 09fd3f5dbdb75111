package queries

import (
	"context"
	"testing"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type stubGridService struct {
	viewCalls   int
	lastFormat  string
	exportCalls int
}

func (s *stubGridService) View(context.Context, string) (datagrid.View, error) {
	s.viewCalls++
	return datagrid.View{ColSpan: 2}, nil
}

func (s *stubGridService) Export(_ context.Context, _ string, format string) (datagrid.Payload, error) {
	s.exportCalls++
	s.lastFormat = format
	return datagrid.Payload{Filename: datagrid.CSVFilename}, nil
}

func TestGridViewQuery(t *testing.T) {
	service := &stubGridService{}
	view, err := NewGridViewQuery(service).Query(context.Background(), ViewInput{GridID: "g1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.viewCalls != 1 || view.ColSpan != 2 {
		t.Fatalf("expected view from service, got %+v", view)
	}
}

func TestExportQuery(t *testing.T) {
	service := &stubGridService{}
	payload, err := NewExportQuery(service).Query(context.Background(), ExportInput{GridID: "g1", Format: "csv"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.lastFormat != "csv" || payload.Filename != datagrid.CSVFilename {
		t.Fatalf("unexpected export: %+v", payload)
	}
}

func TestQueriesAgainstService(t *testing.T) {
	ctx := context.Background()
	ds := datagrid.Dataset{
		Columns: []datagrid.ColumnSpec{{ID: "name", Label: "Name", VisibleByDefault: true}},
		Rows:    []datagrid.Row{datagrid.Cells("a"), datagrid.Cells("b")},
	}
	service := datagrid.NewService(datagrid.ServiceOptions{Factory: datagrid.StaticFactory(ds, nil)})
	id, err := service.Open(ctx)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer service.Close(ctx, id)

	view, err := NewGridViewQuery(service).Query(ctx, ViewInput{GridID: id})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if view.Pagination.Summary != "1-2 of 2" {
		t.Fatalf("unexpected summary %q", view.Pagination.Summary)
	}
	payload, err := NewExportQuery(service).Query(ctx, ExportInput{GridID: id, Format: datagrid.FormatCSV})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if string(payload.Data) != "Name\r\n\"a\"\r\n\"b\"" {
		t.Fatalf("unexpected csv %q", payload.Data)
	}
}
