package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// gridFlags locate a dataset and optionally the manifest describing it.
type gridFlags struct {
	Dataset  string   `type:"path" help:"Dataset JSON file ({columns, rows})."`
	Manifest string   `type:"existingfile" help:"Grid manifest YAML; its dataset path is used when --dataset is empty."`
	Search   string   `help:"Global search query."`
	Filter   []string `help:"Column filter as column:operator:value (repeatable)."`
	Sort     string   `help:"Sort as column or column:desc."`
}

func (f gridFlags) load(opts ...datagrid.Option) (*datagrid.Grid, error) {
	var manifest *datagrid.Manifest
	datasetPath := f.Dataset
	if f.Manifest != "" {
		doc, err := datagrid.ReadManifest(f.Manifest)
		if err != nil {
			return nil, err
		}
		manifest = doc
		if datasetPath == "" {
			datasetPath = doc.DatasetPath()
		}
	}
	if datasetPath == "" {
		return nil, fmt.Errorf("gridctl: --dataset or a manifest with a dataset is required")
	}
	ds, err := datagrid.ReadDataset(datasetPath, datagrid.NewJSONSchemaValidator())
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return datagrid.NewFromDataset(ds, opts...), nil
	}
	return manifest.Build(ds, opts...)
}

// apply replays the search, filter and sort flags on g.
func (f gridFlags) apply(ctx context.Context, g *datagrid.Grid) error {
	for _, raw := range f.Filter {
		filter, err := parseFilter(raw)
		if err != nil {
			return err
		}
		g.AddFilter(ctx, filter)
	}
	if f.Search != "" {
		g.SetSearch(ctx, f.Search)
	}
	if f.Sort == "" {
		return nil
	}
	column, dir, _ := strings.Cut(f.Sort, ":")
	if !g.ToggleSort(ctx, column) {
		return fmt.Errorf("gridctl: column %q is not sortable", column)
	}
	if strings.EqualFold(dir, string(datagrid.Desc)) {
		g.ToggleSort(ctx, column)
	}
	return nil
}

func parseFilter(raw string) (datagrid.Filter, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return datagrid.Filter{}, fmt.Errorf("gridctl: filter %q must be column:operator:value", raw)
	}
	op := datagrid.Operator(parts[1])
	for _, known := range datagrid.Operators() {
		if op == known {
			return datagrid.Filter{ColumnID: parts[0], Operator: op, Operand: parts[2]}, nil
		}
	}
	return datagrid.Filter{}, fmt.Errorf("gridctl: unknown operator %q", parts[1])
}
