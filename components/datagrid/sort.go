package datagrid

import (
	"cmp"
	"slices"
	"strings"
)

// CompareCells orders two cells: numerically when both are numbers, otherwise
// by their string forms.
func CompareCells(a, b Cell) int {
	if a.IsNumber() && b.IsNumber() {
		return cmp.Compare(a.Number, b.Number)
	}
	return strings.Compare(a.String(), b.String())
}

// SortRows returns a stably sorted copy of rows. The comparator is negated for
// descending order so equal keys keep their relative order in both directions.
func SortRows(rows []Row, columns []ColumnSpec, state SortState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if !state.Active() {
		return out
	}
	pos, ok := indexColumns(columns)[state.ColumnID]
	if !ok {
		return out
	}
	sign := 1
	if state.Direction == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b Row) int {
		return sign * CompareCells(cellAt(a, pos), cellAt(b, pos))
	})
	return out
}

// NextSort cycles a header click: unsorted -> asc -> desc -> unsorted. Clicking a
// different column starts over at asc for that column.
func NextSort(current SortState, columnID string) SortState {
	if current.ColumnID != columnID || !current.Active() {
		return SortState{ColumnID: columnID, Direction: Asc}
	}
	if current.Direction == Asc {
		return SortState{ColumnID: columnID, Direction: Desc}
	}
	return SortState{}
}

// SortIndicator returns the header suffix for a sort direction.
func SortIndicator(d Direction) string {
	switch d {
	case Asc:
		return " ▲"
	case Desc:
		return " ▼"
	default:
		return ""
	}
}

func cellAt(row Row, pos int) Cell {
	if pos < 0 || pos >= len(row) {
		return Empty()
	}
	return row[pos]
}
