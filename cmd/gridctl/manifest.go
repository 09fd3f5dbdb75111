package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ettle/strcase"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type manifestCmd struct {
	Dataset   string `required:"" type:"existingfile" help:"Dataset JSON file to describe."`
	Name      string `help:"Grid name (defaults to the dataset file name)."`
	Title     string `help:"Title used in PDF exports."`
	PageSize  int    `name:"page-size" help:"Rows per page (defaults to 5)."`
	Out       string `short:"o" required:"" type:"path" help:"Manifest YAML to write."`
	Overwrite bool   `help:"Replace an existing manifest."`
}

func (cmd *manifestCmd) Run(_ context.Context, logger zerolog.Logger) error {
	ds, err := datagrid.ReadDataset(cmd.Dataset, datagrid.NewJSONSchemaValidator())
	if err != nil {
		return err
	}
	out, err := filepath.Abs(cmd.Out)
	if err != nil {
		return fmt.Errorf("gridctl: resolve manifest path: %w", err)
	}
	if _, err := os.Stat(out); err == nil && !cmd.Overwrite {
		return fmt.Errorf("gridctl: manifest %s already exists (use --overwrite to replace)", out)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("gridctl: stat manifest: %w", err)
	}

	doc := datagrid.ManifestFor(cmd.gridName(), ds)
	if cmd.Title != "" {
		doc.Title = cmd.Title
	}
	if cmd.PageSize > 0 {
		doc.PageSize = cmd.PageSize
	}
	doc.Dataset = relativeDataset(filepath.Dir(out), cmd.Dataset)
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir %s: %w", filepath.Dir(out), err)
	}
	file, err := os.Create(out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gridctl: create manifest %s: %w", out, err)
	}
	defer file.Close()
	if err := datagrid.EncodeManifest(file, doc); err != nil {
		return err
	}
	logger.Info().Str("manifest", out).Str("grid", doc.ID).Int("columns", len(doc.Columns)).Msg("manifest written")
	return nil
}

func (cmd *manifestCmd) gridName() string {
	if name := strings.TrimSpace(cmd.Name); name != "" {
		return name
	}
	base := strings.TrimSuffix(filepath.Base(cmd.Dataset), filepath.Ext(cmd.Dataset))
	return strcase.ToSnake(base)
}

// relativeDataset records the dataset relative to the manifest when possible.
func relativeDataset(manifestDir, dataset string) string {
	abs, err := filepath.Abs(dataset)
	if err != nil {
		return dataset
	}
	if rel, err := filepath.Rel(manifestDir, abs); err == nil {
		return rel
	}
	return abs
}
