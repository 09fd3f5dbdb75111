package datagrid

import (
	"encoding/json"
	"fmt"
)

// ColumnSpec describes a grid column. The ordered slice of specs defines both the
// display order and the index into every row.
type ColumnSpec struct {
	ID               string `json:"id" yaml:"id"`
	Label            string `json:"label" yaml:"label"`
	Filterable       bool   `json:"filterable" yaml:"filterable"`
	Sortable         bool   `json:"sortable" yaml:"sortable"`
	VisibleByDefault bool   `json:"visible" yaml:"visible"`
}

// UnmarshalJSON accepts both the flat form and the dataset form
// {"name", "label", "options": {"filter", "sort", "display"}}.
func (c *ColumnSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Label      string `json:"label"`
		Filterable *bool  `json:"filterable"`
		Sortable   *bool  `json:"sortable"`
		Visible    *bool  `json:"visible"`
		Options    *struct {
			Filter  bool `json:"filter"`
			Sort    bool `json:"sort"`
			Display bool `json:"display"`
		} `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("datagrid: decode column: %w", err)
	}
	spec := ColumnSpec{ID: raw.ID, Label: raw.Label}
	if spec.ID == "" {
		spec.ID = raw.Name
	}
	if spec.Label == "" {
		spec.Label = spec.ID
	}
	if raw.Options != nil {
		spec.Filterable = raw.Options.Filter
		spec.Sortable = raw.Options.Sort
		spec.VisibleByDefault = raw.Options.Display
	}
	if raw.Filterable != nil {
		spec.Filterable = *raw.Filterable
	}
	if raw.Sortable != nil {
		spec.Sortable = *raw.Sortable
	}
	if raw.Visible != nil {
		spec.VisibleByDefault = *raw.Visible
	}
	*c = spec
	return nil
}

// Row is one positional record aligned to the column schema.
type Row []Cell

// Dataset is the input contract handed over by the data loading layer.
type Dataset struct {
	Columns []ColumnSpec `json:"columns" yaml:"columns"`
	Rows    []Row        `json:"rows" yaml:"rows"`
}

// Operator selects the comparison a Filter applies.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

// Operators lists the supported operators in editor order.
func Operators() []Operator {
	return []Operator{OpEquals, OpContains, OpStartsWith, OpEndsWith}
}

// Filter is a single per-column predicate.
type Filter struct {
	ColumnID string   `json:"column"`
	Operator Operator `json:"operator"`
	Operand  string   `json:"value"`
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState holds the single active sort. A zero value means insertion order.
type SortState struct {
	ColumnID  string    `json:"column,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Active reports whether a sort is set.
func (s SortState) Active() bool {
	return s.ColumnID != "" && (s.Direction == Asc || s.Direction == Desc)
}

// DefaultPageSize is the number of rows rendered per page.
const DefaultPageSize = 5

// PageState tracks the current page window.
type PageState struct {
	Current int `json:"current"`
	Size    int `json:"size"`
}

// EmptyMessage is rendered in place of rows when the filtered set is empty.
const EmptyMessage = "No data found"
