package datagrid

import "sort"

// VisibilityState maps column ids to their shown/hidden state.
type VisibilityState map[string]bool

// NewVisibilityState seeds the state from each column's VisibleByDefault flag.
func NewVisibilityState(columns []ColumnSpec) VisibilityState {
	state := make(VisibilityState, len(columns))
	for _, col := range columns {
		state[col.ID] = col.VisibleByDefault
	}
	return state
}

// Toggle returns a copy of the state with the column flipped.
func (v VisibilityState) Toggle(columnID string) VisibilityState {
	out := v.Clone()
	out[columnID] = !out[columnID]
	return out
}

// Visible reports whether the column is shown.
func (v VisibilityState) Visible(columnID string) bool {
	return v[columnID]
}

// Clone copies the state.
func (v VisibilityState) Clone() VisibilityState {
	out := make(VisibilityState, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// VisibleColumns returns the shown columns in schema order together with
// their row positions.
func (v VisibilityState) VisibleColumns(columns []ColumnSpec) ([]ColumnSpec, []int) {
	cols := make([]ColumnSpec, 0, len(columns))
	positions := make([]int, 0, len(columns))
	for i, col := range columns {
		if v[col.ID] {
			cols = append(cols, col)
			positions = append(positions, i)
		}
	}
	return cols, positions
}

// hidden lists hidden column ids in sorted order.
func (v VisibilityState) hidden() []string {
	var out []string
	for id, shown := range v {
		if !shown {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
