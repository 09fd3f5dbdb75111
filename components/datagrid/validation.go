package datagrid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DatasetSchemaName identifies the built-in dataset schema.
const DatasetSchemaName = "datagrid.dataset"

const datasetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["columns", "rows"],
  "properties": {
    "columns": {
      "type": "array",
      "items": {
        "type": "object",
        "anyOf": [{"required": ["name"]}, {"required": ["id"]}],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "filterable": {"type": "boolean"},
          "sortable": {"type": "boolean"},
          "visible": {"type": "boolean"},
          "options": {
            "type": "object",
            "properties": {
              "filter": {"type": "boolean"},
              "sort": {"type": "boolean"},
              "display": {"type": "boolean"}
            }
          }
        }
      }
    },
    "rows": {
      "type": "array",
      "items": {
        "type": "array",
        "items": {"type": ["string", "number", "boolean", "null"]}
      }
    }
  }
}`

var (
	// ErrRowWidth reports a row whose length differs from the column count.
	ErrRowWidth = errors.New("datagrid: row width does not match columns")
	errNoSchema = errors.New("datagrid: schema not registered")
)

// DatasetValidator checks raw dataset payloads before they are decoded.
type DatasetValidator interface {
	Validate(name string, payload []byte) error
}

// JSONSchemaValidator compiles schemas once and validates payloads against them.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	sources  map[string]string
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator with the dataset schema registered.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		sources:  map[string]string{DatasetSchemaName: datasetSchema},
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// RegisterSchema adds or replaces a named schema.
func (v *JSONSchemaValidator) RegisterSchema(name, schema string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sources[name] = schema
	delete(v.compiled, name)
}

// Validate ensures the JSON payload satisfies the named schema.
func (v *JSONSchemaValidator) Validate(name string, payload []byte) error {
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("datagrid: parse payload for %s: %w", name, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("datagrid: payload failed %s validation: %w", name, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	source, known := v.sources[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", errNoSchema, name)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("datagrid: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("datagrid: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopDatasetValidator struct{}

func (noopDatasetValidator) Validate(string, []byte) error { return nil }

// DecodeDataset parses a dataset payload. When validator is non-nil the
// payload is checked against the dataset schema first. Rows whose width does
// not match the schema are reported together.
func DecodeDataset(r io.Reader, validator DatasetValidator) (Dataset, error) {
	if validator == nil {
		validator = noopDatasetValidator{}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("datagrid: read dataset: %w", err)
	}
	if err := validator.Validate(DatasetSchemaName, data); err != nil {
		return Dataset{}, err
	}
	var ds Dataset
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("datagrid: decode dataset: %w", err)
	}
	if err := CheckRowWidths(ds); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// ReadDataset loads and validates a dataset file.
func ReadDataset(path string, validator DatasetValidator) (Dataset, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Dataset{}, fmt.Errorf("datagrid: open dataset %s: %w", path, err)
	}
	defer f.Close()
	ds, err := DecodeDataset(f, validator)
	if err != nil {
		return Dataset{}, fmt.Errorf("datagrid: load dataset %s: %w", path, err)
	}
	return ds, nil
}

// CheckRowWidths reports every row whose length differs from the column count.
func CheckRowWidths(ds Dataset) error {
	var errs []error
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			errs = append(errs, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, i, len(row), len(ds.Columns)))
		}
	}
	return errors.Join(errs...)
}
