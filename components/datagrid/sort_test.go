package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRowsNumericAndStable(t *testing.T) {
	rows := []Row{
		Cells("a", 2),
		Cells("b", 1),
		Cells("c", 2),
		Cells("d", 10),
		Cells("e", 1),
	}
	asc := SortRows(rows, channelColumns, SortState{ColumnID: "users", Direction: Asc})
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, firstColumn(asc))

	desc := SortRows(rows, channelColumns, SortState{ColumnID: "users", Direction: Desc})
	assert.Equal(t, []string{"d", "a", "c", "b", "e"}, firstColumn(desc), "ties keep insertion order")

	assert.Equal(t, "a", rows[0][0].String(), "source rows are untouched")
}

func TestSortRowsMixedKindsCompareAsStrings(t *testing.T) {
	rows := []Row{Cells("x", "10"), Cells("y", 9), Cells("z", nil)}
	got := SortRows(rows, channelColumns, SortState{ColumnID: "users", Direction: Asc})
	assert.Equal(t, []string{"z", "x", "y"}, firstColumn(got), `"10" sorts before "9" as text`)
}

func TestSortRowsInactiveOrUnknown(t *testing.T) {
	rows := channelRows()
	assert.Equal(t, rows, SortRows(rows, channelColumns, SortState{}))
	assert.Equal(t, rows, SortRows(rows, channelColumns, SortState{ColumnID: "nope", Direction: Asc}))
}

func TestNextSortCycle(t *testing.T) {
	s := NextSort(SortState{}, "users")
	assert.Equal(t, SortState{ColumnID: "users", Direction: Asc}, s)
	s = NextSort(s, "users")
	assert.Equal(t, SortState{ColumnID: "users", Direction: Desc}, s)
	s = NextSort(s, "users")
	assert.False(t, s.Active())

	s = NextSort(SortState{ColumnID: "users", Direction: Desc}, "channel")
	assert.Equal(t, SortState{ColumnID: "channel", Direction: Asc}, s)
}

func TestSortIndicator(t *testing.T) {
	assert.Equal(t, " ▲", SortIndicator(Asc))
	assert.Equal(t, " ▼", SortIndicator(Desc))
	assert.Equal(t, "", SortIndicator(""))
}

func firstColumn(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row[0].String()
	}
	return out
}
