package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type inspectCmd struct {
	gridFlags `embed:""`

	Page int  `default:"1" help:"Page to print."`
	JSON bool `name:"json" help:"Print the view as JSON."`

	out io.Writer `kong:"-"`
}

func (cmd *inspectCmd) Run(ctx context.Context) error {
	grid, err := cmd.load()
	if err != nil {
		return err
	}
	if err := cmd.apply(ctx, grid); err != nil {
		return err
	}
	if cmd.Page > 1 && !grid.GoTo(cmd.Page) {
		return fmt.Errorf("gridctl: page %d is out of range", cmd.Page)
	}
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	view := grid.View()
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	return writeTable(out, view)
}

func writeTable(out io.Writer, view datagrid.View) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	labels := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		labels[i] = col.Label
	}
	fmt.Fprintln(w, strings.Join(labels, "\t"))
	if view.Empty {
		fmt.Fprintln(w, view.EmptyMessage)
	}
	for _, row := range view.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	fmt.Fprintf(w, "\n%s\n", view.Pagination.Summary)
	return w.Flush()
}
