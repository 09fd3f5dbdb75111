package datagrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Cells(fmt.Sprintf("row-%02d", i+1), i+1)
	}
	return rows
}

func TestComputePagesAndHeaders(t *testing.T) {
	view := Compute(Input{
		Columns: channelColumns,
		Rows:    numberedRows(12),
		Sort:    SortState{ColumnID: "users", Direction: Desc},
		Page:    PageState{Current: 3, Size: 5},
	})
	require.Len(t, view.Columns, 2)
	assert.Equal(t, " ▼", view.Columns[1].Indicator)
	assert.Empty(t, view.Columns[0].Indicator)

	assert.Equal(t, [][]string{{"row-02", "2"}, {"row-01", "1"}}, view.Rows)
	assert.Equal(t, "11-12 of 12", view.Pagination.Summary)
	assert.Equal(t, 3, view.Pagination.Total)
	assert.True(t, view.Pagination.HasPrev)
	assert.False(t, view.Pagination.HasNext)
	assert.False(t, view.Empty)
}

func TestComputeClampsPageAfterFilterShrinks(t *testing.T) {
	view := Compute(Input{
		Columns: channelColumns,
		Rows:    numberedRows(12),
		Filters: FilterSet{{ColumnID: "channel", Operator: OpStartsWith, Operand: "row-0"}},
		Page:    PageState{Current: 3, Size: 5},
	})
	assert.Equal(t, 2, view.Pagination.Current)
	assert.Equal(t, "6-9 of 9", view.Pagination.Summary)
	assert.Len(t, view.Rows, 4)
}

func TestComputeEmptyState(t *testing.T) {
	view := Compute(Input{Columns: channelColumns, Rows: nil, Page: PageState{Current: 4}})
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyMessage, view.EmptyMessage)
	assert.Equal(t, 2, view.ColSpan)
	assert.Equal(t, 1, view.Pagination.Total)
	assert.Equal(t, 1, view.Pagination.Current)
	assert.Equal(t, DefaultPageSize, view.Pagination.Size)
	assert.Equal(t, "0 of 0", view.Pagination.Summary)
}

func TestComputeHiddenColumnsStillSearchable(t *testing.T) {
	visibility := NewVisibilityState(channelColumns).Toggle("channel")
	view := Compute(Input{
		Columns:    channelColumns,
		Rows:       channelRows(),
		Visibility: visibility,
		Search:     "b",
		Page:       PageState{Current: 1, Size: 5},
	})
	require.Len(t, view.Columns, 1)
	assert.Equal(t, "users", view.Columns[0].ID)
	assert.Equal(t, [][]string{{"620"}}, view.Rows)
}

func TestComputeAppliesFormatters(t *testing.T) {
	columns := []ColumnSpec{
		{ID: "avg", Label: "Average Engagement Time Per Session", VisibleByDefault: true},
		{ID: "rate", Label: "Engagement Rate", VisibleByDefault: true},
	}
	view := Compute(Input{
		Columns:    columns,
		Rows:       []Row{Cells(2.5, 61)},
		Page:       PageState{Current: 1},
		Formatters: NewFormatters(),
	})
	assert.Equal(t, [][]string{{"2 mins, 30 secs", "61%"}}, view.Rows)
}

func TestProjectIsNotPaginated(t *testing.T) {
	res := Project(Input{
		Columns: channelColumns,
		Rows:    numberedRows(12),
		Page:    PageState{Current: 2, Size: 5},
	})
	assert.Len(t, res.Rows, 12)
	assert.Equal(t, []string{"Channel", "Users"}, res.Labels())
}
