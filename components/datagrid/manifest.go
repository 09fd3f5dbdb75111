package datagrid

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// Manifest describes a grid in YAML: its dataset, schema overrides, formatter
// bindings and paging.
type Manifest struct {
	Version    string            `json:"version" yaml:"version"`
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string            `json:"name" yaml:"name"`
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Dataset    string            `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	PageSize   int               `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Columns    []ColumnSpec      `json:"columns,omitempty" yaml:"columns,omitempty"`
	Formatters map[string]string `json:"formatters,omitempty" yaml:"formatters,omitempty"`
	Source     string            `json:"-" yaml:"-"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("datagrid: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("datagrid: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc Manifest
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("datagrid: manifest is empty")
		}
		return nil, fmt.Errorf("datagrid: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes the manifest as YAML.
func EncodeManifest(w io.Writer, doc *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("datagrid: encode manifest: %w", err)
	}
	return enc.Close()
}

// Validate ensures the manifest satisfies required fields.
func (m *Manifest) Validate() error {
	if m.Version != manifestVersionV1 {
		return fmt.Errorf("datagrid: unsupported manifest version %q", m.Version)
	}
	if m.Name == "" {
		return fmt.Errorf("datagrid: manifest is missing name")
	}
	if m.PageSize < 0 {
		return fmt.Errorf("datagrid: manifest %s has negative page_size", m.Name)
	}
	seen := make(map[string]struct{}, len(m.Columns))
	for idx, col := range m.Columns {
		if col.ID == "" {
			return fmt.Errorf("datagrid: manifest column at index %d is missing id", idx)
		}
		if _, exists := seen[col.ID]; exists {
			return fmt.Errorf("datagrid: manifest duplicates column %s", col.ID)
		}
		seen[col.ID] = struct{}{}
	}
	for column, name := range m.Formatters {
		if _, ok := builtinFormatters[name]; !ok {
			return fmt.Errorf("datagrid: manifest binds column %s to unknown formatter %q", column, name)
		}
	}
	return nil
}

func (m *Manifest) applyDefaults() {
	if m.Version == "" {
		m.Version = manifestVersionV1
	}
	if m.ID == "" && m.Name != "" {
		m.ID = strcase.ToKebab(m.Name)
	}
	if m.Title == "" {
		m.Title = m.Name
	}
	for i := range m.Columns {
		if m.Columns[i].Label == "" {
			m.Columns[i].Label = m.Columns[i].ID
		}
	}
}

// DatasetPath resolves the dataset path relative to the manifest file.
func (m *Manifest) DatasetPath() string {
	if m.Dataset == "" || filepath.IsAbs(m.Dataset) || m.Source == "" {
		return m.Dataset
	}
	return filepath.Join(filepath.Dir(m.Source), m.Dataset)
}

// Options converts the manifest settings into grid options.
func (m *Manifest) Options() ([]Option, error) {
	opts := []Option{WithTitle(m.Title)}
	if m.PageSize > 0 {
		opts = append(opts, WithPageSize(m.PageSize))
	}
	if len(m.Formatters) > 0 {
		formatters := NewFormatters()
		for column, name := range m.Formatters {
			if err := formatters.Bind(column, name); err != nil {
				return nil, err
			}
		}
		opts = append(opts, WithFormatters(formatters))
	}
	return opts, nil
}

// Schema returns the manifest columns when set, or the dataset's own schema.
// Overrides must line up with the dataset columns.
func (m *Manifest) Schema(ds Dataset) ([]ColumnSpec, error) {
	if len(m.Columns) == 0 {
		return ds.Columns, nil
	}
	if len(ds.Columns) > 0 && len(ds.Columns) != len(m.Columns) {
		return nil, fmt.Errorf("datagrid: manifest %s declares %d columns, dataset has %d", m.Name, len(m.Columns), len(ds.Columns))
	}
	return m.Columns, nil
}

// Build creates a grid over ds configured by the manifest.
func (m *Manifest) Build(ds Dataset, opts ...Option) (*Grid, error) {
	columns, err := m.Schema(ds)
	if err != nil {
		return nil, err
	}
	base, err := m.Options()
	if err != nil {
		return nil, err
	}
	return New(columns, ds.Rows, append(base, opts...)...), nil
}

// ManifestFor drafts a manifest from a dataset, used by tooling to scaffold
// new grids.
func ManifestFor(name string, ds Dataset) *Manifest {
	doc := &Manifest{
		Name:     name,
		PageSize: DefaultPageSize,
		Columns:  append([]ColumnSpec(nil), ds.Columns...),
	}
	for _, col := range ds.Columns {
		for key, formatter := range defaultBindings {
			if col.ID == key || col.Label == key {
				if doc.Formatters == nil {
					doc.Formatters = map[string]string{}
				}
				doc.Formatters[col.ID] = formatter
			}
		}
	}
	doc.applyDefaults()
	return doc
}
