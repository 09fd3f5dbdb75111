package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type exportCmd struct {
	gridFlags `embed:""`

	Format string `default:"csv" enum:"csv,pdf" help:"Export format (csv, pdf)."`
	Title  string `help:"Document title for PDF exports."`
	Out    string `short:"o" type:"path" help:"Output file (defaults to the export file name in the current directory)."`
}

func (cmd *exportCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	opts := []datagrid.Option{datagrid.WithTelemetry(datagrid.NewZerologTelemetry(logger).WithLevel(zerolog.DebugLevel))}
	if cmd.Title != "" {
		opts = append(opts, datagrid.WithTitle(cmd.Title))
	}
	grid, err := cmd.load(opts...)
	if err != nil {
		return err
	}
	if err := cmd.apply(ctx, grid); err != nil {
		return err
	}

	var payload datagrid.Payload
	switch strings.ToLower(cmd.Format) {
	case datagrid.FormatPDF:
		payload, err = grid.ExportPDF(ctx)
		if err != nil {
			return fmt.Errorf("gridctl: export pdf: %w", err)
		}
	default:
		payload = grid.ExportCSV(ctx)
	}

	out := cmd.Out
	if out == "" {
		out = payload.Filename
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir %s: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, payload.Data, 0o644); err != nil {
		return fmt.Errorf("gridctl: write %s: %w", out, err)
	}
	logger.Info().Str("file", out).Int("bytes", len(payload.Data)).Msg("export written")
	return nil
}
