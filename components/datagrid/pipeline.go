package datagrid

import "slices"

// Input is everything the pipeline depends on. Compute never mutates it.
type Input struct {
	Columns    []ColumnSpec
	Rows       []Row
	Filters    FilterSet
	Search     string
	Visibility VisibilityState
	Sort       SortState
	Page       PageState
	Formatters *Formatters
}

// HeaderView is a rendered column header.
type HeaderView struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Sortable   bool      `json:"sortable"`
	Filterable bool      `json:"filterable"`
	Direction  Direction `json:"direction,omitempty"`
	Indicator  string    `json:"indicator,omitempty"`
}

// PaginationView summarizes the page window.
type PaginationView struct {
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	Size      int    `json:"size"`
	TotalRows int    `json:"total_rows"`
	Summary   string `json:"summary"`
	Pages     []int  `json:"pages"`
	HasPrev   bool   `json:"has_prev"`
	HasNext   bool   `json:"has_next"`
}

// View is the rendered page handed to the presentation layer.
type View struct {
	Columns      []HeaderView   `json:"columns"`
	Rows         [][]string     `json:"rows"`
	Empty        bool           `json:"empty"`
	EmptyMessage string         `json:"empty_message,omitempty"`
	ColSpan      int            `json:"colspan"`
	Search       string         `json:"search"`
	Filters      []Filter       `json:"filters"`
	Pagination   PaginationView `json:"pagination"`
	Popup        *PopupView     `json:"popup,omitempty"`
}

// Clone returns a copy that shares no slices with v.
func (v View) Clone() View {
	out := v
	out.Columns = slices.Clone(v.Columns)
	out.Filters = slices.Clone(v.Filters)
	out.Pagination.Pages = slices.Clone(v.Pagination.Pages)
	if v.Rows != nil {
		out.Rows = make([][]string, len(v.Rows))
		for i, row := range v.Rows {
			out.Rows[i] = slices.Clone(row)
		}
	}
	return out
}

// Result is the filtered, sorted, visible-column projection shared by the page
// view and the exports.
type Result struct {
	Columns []ColumnSpec
	Rows    []Row
}

// Labels returns the visible column labels.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		labels[i] = col.Label
	}
	return labels
}

// Strings returns the display strings of every row.
func (r Result) Strings() [][]string {
	return rowStrings(r.Rows)
}

// Project filters, sorts and formats the full row set restricted to visible
// columns, without paginating.
func Project(in Input) Result {
	visible, positions := in.visibility().VisibleColumns(in.Columns)
	filtered := FilterRows(in.Rows, in.Columns, in.Filters, in.Search)
	sorted := SortRows(filtered, in.Columns, in.Sort)
	return Result{
		Columns: visible,
		Rows:    formatRows(sorted, in.Columns, positions, in.Formatters),
	}
}

// Compute runs visibility, filtering, sorting and page windowing. The page in
// the returned view is clamped into range.
func Compute(in Input) View {
	size := in.Page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	visible, positions := in.visibility().VisibleColumns(in.Columns)
	filtered := FilterRows(in.Rows, in.Columns, in.Filters, in.Search)
	sorted := SortRows(filtered, in.Columns, in.Sort)

	pager := &Paginator{current: in.Page.Current, size: size}
	pager.SetTotalRows(len(sorted))
	start, end := pager.Bounds()
	page := formatRows(sorted[start:end], in.Columns, positions, in.Formatters)

	view := View{
		Columns:    headers(visible, in.Sort),
		Rows:       rowStrings(page),
		ColSpan:    len(visible),
		Search:     in.Search,
		Filters:    append([]Filter(nil), in.Filters...),
		Pagination: paginationView(pager),
	}
	if len(page) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyMessage
	}
	return view
}

func (in Input) visibility() VisibilityState {
	if in.Visibility == nil {
		return NewVisibilityState(in.Columns)
	}
	return in.Visibility
}

func headers(columns []ColumnSpec, sort SortState) []HeaderView {
	out := make([]HeaderView, len(columns))
	for i, col := range columns {
		h := HeaderView{
			ID:         col.ID,
			Label:      col.Label,
			Sortable:   col.Sortable,
			Filterable: col.Filterable,
		}
		if sort.Active() && sort.ColumnID == col.ID {
			h.Direction = sort.Direction
			h.Indicator = SortIndicator(sort.Direction)
		}
		out[i] = h
	}
	return out
}

func paginationView(p *Paginator) PaginationView {
	return PaginationView{
		Current:   p.CurrentPage(),
		Total:     p.TotalPages(),
		Size:      p.PageSize(),
		TotalRows: p.TotalRows(),
		Summary:   p.Summary(),
		Pages:     p.Pages(),
		HasPrev:   p.CurrentPage() > 1,
		HasNext:   p.CurrentPage() < p.TotalPages(),
	}
}

func formatRows(rows []Row, columns []ColumnSpec, positions []int, formatters *Formatters) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		formatted := make(Row, len(positions))
		for j, pos := range positions {
			formatted[j] = formatters.Format(columns[pos], cellAt(row, pos))
		}
		out[i] = formatted
	}
	return out
}

func rowStrings(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.String()
		}
		out[i] = cells
	}
	return out
}
