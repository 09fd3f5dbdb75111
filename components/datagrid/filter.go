package datagrid

import "strings"

// Matches evaluates a single filter against a cell's string form. Equality is
// case-sensitive; the substring operators are not. Unknown operators match.
func Matches(cell Cell, f Filter) bool {
	value := cell.String()
	switch f.Operator {
	case OpEquals:
		return value == f.Operand
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(f.Operand))
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(f.Operand))
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(value), strings.ToLower(f.Operand))
	default:
		return true
	}
}

// MatchesSearch reports whether any cell of the row contains the query,
// ignoring case. An empty query matches every row.
func MatchesSearch(row Row, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell.String()), needle) {
			return true
		}
	}
	return false
}

// Committable reports whether the filter carries a usable operand.
func (f Filter) Committable() bool {
	return strings.TrimSpace(f.Operand) != ""
}

// FilterSet is the ordered list of committed filters. Duplicates are allowed
// and each entry is removable by index.
type FilterSet []Filter

// Add appends the filter when it is committable and returns the new set.
func (s FilterSet) Add(f Filter) (FilterSet, bool) {
	if !f.Committable() {
		return s, false
	}
	out := make(FilterSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, f), true
}

// RemoveAt drops the filter at index i. Out-of-range indexes are ignored.
func (s FilterSet) RemoveAt(i int) (FilterSet, bool) {
	if i < 0 || i >= len(s) {
		return s, false
	}
	out := make(FilterSet, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), true
}

// columnIndex maps column ids to their row position.
type columnIndex map[string]int

func indexColumns(columns []ColumnSpec) columnIndex {
	idx := make(columnIndex, len(columns))
	for i, col := range columns {
		if _, exists := idx[col.ID]; !exists {
			idx[col.ID] = i
		}
	}
	return idx
}

// accepts reports whether the row passes every filter. Filters naming an
// unknown column pass.
func (s FilterSet) accepts(row Row, idx columnIndex) bool {
	for _, f := range s {
		pos, ok := idx[f.ColumnID]
		if !ok {
			continue
		}
		var cell Cell
		if pos < len(row) {
			cell = row[pos]
		}
		if !Matches(cell, f) {
			return false
		}
	}
	return true
}

// FilterRows returns the rows accepted by the filters and the global search,
// preserving their relative order. The source slice is not modified.
func FilterRows(rows []Row, columns []ColumnSpec, filters FilterSet, search string) []Row {
	idx := indexColumns(columns)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if filters.accepts(row, idx) && MatchesSearch(row, search) {
			out = append(out, row)
		}
	}
	return out
}
