package datagrid

import (
	"context"
	"strings"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// NoFiltersMessage is shown by the filter editor when no filter is committed.
const NoFiltersMessage = "No filters applied"

// Option customizes a Grid.
type Option func(*Grid)

// WithTelemetry records grid events through t.
func WithTelemetry(t Telemetry) Option {
	return func(g *Grid) {
		g.telemetry = normalizeTelemetry(t)
	}
}

// WithPageSize overrides DefaultPageSize.
func WithPageSize(size int) Option {
	return func(g *Grid) {
		if size > 0 {
			g.page.Size = size
		}
	}
}

// WithFormatters replaces the default formatter bindings.
func WithFormatters(f *Formatters) Option {
	return func(g *Grid) {
		if f != nil {
			g.formatters = f
		}
	}
}

// WithViewCache swaps the view memo. Pass nil to disable memoization.
func WithViewCache(c ViewCache) Option {
	return func(g *Grid) {
		g.cache = c
	}
}

// WithPointerBus sets the bus popups listen on for outside presses.
func WithPointerBus(bus *PointerBus) Option {
	return func(g *Grid) {
		g.bus = bus
	}
}

// WithDocumentRenderer replaces the PDF renderer used by ExportPDF.
func WithDocumentRenderer(r DocumentRenderer) Option {
	return func(g *Grid) {
		if r != nil {
			g.documents = r
		}
	}
}

// WithTitle sets the title embedded in exported documents.
func WithTitle(title string) Option {
	return func(g *Grid) {
		g.title = title
	}
}

// Grid owns the interactive state of one table instance. Every mutating call
// recomputes the view on the next View call. A Grid is not safe for concurrent
// use; transports serialize access per session.
type Grid struct {
	id         string
	title      string
	columns    []ColumnSpec
	rows       []Row
	filters    FilterSet
	draft      Filter
	search     string
	visibility VisibilityState
	sort       SortState
	page       PageState
	formatters *Formatters
	cache      ViewCache
	bus        *PointerBus
	popups     *Coordinator
	documents  DocumentRenderer
	telemetry  Telemetry
}

// New builds a grid over a fixed schema and row matrix.
func New(columns []ColumnSpec, rows []Row, opts ...Option) *Grid {
	g := &Grid{
		id:         uuid.NewString(),
		columns:    append([]ColumnSpec(nil), columns...),
		rows:       rows,
		visibility: NewVisibilityState(columns),
		page:       PageState{Current: 1, Size: DefaultPageSize},
		formatters: NewFormatters(),
		cache:      NewLRUViewCache(defaultViewCacheSize),
		telemetry:  noopTelemetry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.documents == nil {
		g.documents = NewPDFRenderer(pdfOrientationFor(len(columns)))
	}
	g.popups = NewCoordinator(g.bus)
	g.draft = g.emptyDraft()
	return g
}

// NewFromDataset is a convenience wrapper around New.
func NewFromDataset(ds Dataset, opts ...Option) *Grid {
	return New(ds.Columns, ds.Rows, opts...)
}

// ID returns the grid's unique identifier.
func (g *Grid) ID() string { return g.id }

// Columns returns the schema in display order.
func (g *Grid) Columns() []ColumnSpec { return append([]ColumnSpec(nil), g.columns...) }

// Filters returns the committed filters.
func (g *Grid) Filters() FilterSet { return append(FilterSet(nil), g.filters...) }

// Search returns the global search query.
func (g *Grid) Search() string { return g.search }

// Sort returns the active sort.
func (g *Grid) Sort() SortState { return g.sort }

// Page returns the current page window.
func (g *Grid) Page() PageState { return g.page }

// Visibility returns a copy of the column visibility map.
func (g *Grid) Visibility() VisibilityState { return g.visibility.Clone() }

// Draft returns the filter being edited.
func (g *Grid) Draft() Filter { return g.draft }

// SetDraft replaces the filter being edited. An empty column or operator keeps
// the current draft value.
func (g *Grid) SetDraft(f Filter) {
	if f.ColumnID == "" {
		f.ColumnID = g.draft.ColumnID
	}
	if f.Operator == "" {
		f.Operator = g.draft.Operator
	}
	g.draft = f
}

// CommitDraft adds the draft as a filter and clears its operand. Drafts with
// a blank operand are not committed.
func (g *Grid) CommitDraft(ctx context.Context) bool {
	if !g.AddFilter(ctx, g.draft) {
		return false
	}
	g.draft.Operand = ""
	return true
}

// AddFilter commits f and resets to the first page.
func (g *Grid) AddFilter(ctx context.Context, f Filter) bool {
	next, ok := g.filters.Add(f)
	if !ok {
		return false
	}
	g.filters = next
	g.page.Current = 1
	g.record(ctx, "datagrid.filter.add", map[string]any{
		"column":   f.ColumnID,
		"operator": string(f.Operator),
		"count":    len(g.filters),
	})
	return true
}

// RemoveFilter drops the filter at index i.
func (g *Grid) RemoveFilter(ctx context.Context, i int) bool {
	next, ok := g.filters.RemoveAt(i)
	if !ok {
		return false
	}
	g.filters = next
	g.page.Current = 1
	g.record(ctx, "datagrid.filter.remove", map[string]any{
		"index": i,
		"count": len(g.filters),
	})
	return true
}

// RemoveAllFilters clears every committed filter.
func (g *Grid) RemoveAllFilters(ctx context.Context) {
	if len(g.filters) == 0 {
		return
	}
	removed := len(g.filters)
	g.filters = nil
	g.page.Current = 1
	g.record(ctx, "datagrid.filter.clear", map[string]any{"removed": removed})
}

// SetSearch updates the global search query.
func (g *Grid) SetSearch(ctx context.Context, query string) {
	if query == g.search {
		return
	}
	g.search = query
	g.record(ctx, "datagrid.search", map[string]any{"length": len(query)})
}

// ToggleColumn flips the visibility of a column. Unknown ids are ignored.
func (g *Grid) ToggleColumn(ctx context.Context, columnID string) bool {
	if _, ok := g.column(columnID); !ok {
		return false
	}
	g.visibility = g.visibility.Toggle(columnID)
	g.record(ctx, "datagrid.column.toggle", map[string]any{
		"column":  columnID,
		"visible": g.visibility.Visible(columnID),
	})
	return true
}

// ToggleSort advances the sort cycle for a header click. Non-sortable and
// unknown columns are ignored.
func (g *Grid) ToggleSort(ctx context.Context, columnID string) bool {
	col, ok := g.column(columnID)
	if !ok || !col.Sortable {
		return false
	}
	g.sort = NextSort(g.sort, columnID)
	g.record(ctx, "datagrid.sort.toggle", map[string]any{
		"column":    columnID,
		"direction": string(g.sort.Direction),
	})
	return true
}

// GoTo jumps to page p. Out-of-range pages are ignored.
func (g *Grid) GoTo(p int) bool {
	pager := g.pager()
	if !pager.GoTo(p) {
		return false
	}
	g.page.Current = pager.CurrentPage()
	return true
}

// Next advances one page.
func (g *Grid) Next() bool {
	return g.GoTo(g.pager().CurrentPage() + 1)
}

// Prev goes back one page.
func (g *Grid) Prev() bool {
	return g.GoTo(g.pager().CurrentPage() - 1)
}

// View computes the current page. The stored page is clamped to the result.
func (g *Grid) View() View {
	in := g.input()
	compute := func() View { return Compute(in) }
	var view View
	if g.cache != nil {
		view = g.cache.GetOrCompute(g.id+":"+inputHash(in), compute).Clone()
	} else {
		view = compute()
	}
	g.page.Current = view.Pagination.Current
	view.Popup = g.popupView()
	return view
}

// Result returns the filtered and sorted rows of every page, restricted to the
// visible columns and formatted.
func (g *Grid) Result() Result {
	return Project(g.input())
}

// ExportCSV encodes the current result as a CSV download.
func (g *Grid) ExportCSV(ctx context.Context) Payload {
	res := g.Result()
	g.record(ctx, "datagrid.export.csv", map[string]any{"rows": len(res.Rows)})
	return CSVPayload(res)
}

// ExportPDF renders the current result as a PDF download.
func (g *Grid) ExportPDF(ctx context.Context) (Payload, error) {
	res := g.Result()
	payload, err := DocumentPayload(NewDocument(g.title, res), g.documents)
	if err != nil {
		g.record(ctx, "datagrid.export.error", map[string]any{"format": "pdf", "error": err.Error()})
		return Payload{}, err
	}
	g.record(ctx, "datagrid.export.pdf", map[string]any{"rows": len(res.Rows)})
	return payload, nil
}

// TogglePopup opens or closes a popup anchored under trigger.
func (g *Grid) TogglePopup(kind PopupKind, trigger Rect) {
	g.popups.Toggle(kind, trigger)
}

// ClosePopup hides any open popup.
func (g *Grid) ClosePopup() { g.popups.Close() }

// SetPopupBounds records where the open popup was drawn.
func (g *Grid) SetPopupBounds(bounds Rect) { g.popups.SetBounds(bounds) }

// OpenPopup returns the kind of the open popup.
func (g *Grid) OpenPopup() PopupKind { return g.popups.Current() }

// DispatchPointer forwards a pointer event to the bus the popups listen on.
func (g *Grid) DispatchPointer(event PointerEvent) {
	g.popups.bus.Dispatch(event)
}

// Teardown releases the popup listener. The grid must not be used afterwards.
func (g *Grid) Teardown() {
	g.popups.Teardown()
}

func (g *Grid) input() Input {
	return Input{
		Columns:    g.columns,
		Rows:       g.rows,
		Filters:    g.filters,
		Search:     g.search,
		Visibility: g.visibility,
		Sort:       g.sort,
		Page:       g.page,
		Formatters: g.formatters,
	}
}

func (g *Grid) pager() *Paginator {
	count := len(FilterRows(g.rows, g.columns, g.filters, g.search))
	p := &Paginator{current: g.page.Current, size: g.page.Size}
	p.SetTotalRows(count)
	return p
}

func (g *Grid) column(id string) (ColumnSpec, bool) {
	for _, col := range g.columns {
		if col.ID == id {
			return col, true
		}
	}
	return ColumnSpec{}, false
}

func (g *Grid) emptyDraft() Filter {
	draft := Filter{Operator: OpContains}
	if len(g.columns) > 0 {
		draft.ColumnID = g.columns[0].ID
	}
	return draft
}

func (g *Grid) record(ctx context.Context, event string, payload map[string]any) {
	payload["grid_id"] = g.id
	g.telemetry.Record(ctx, event, payload)
}

// PopupView is the content of the open popup.
type PopupView struct {
	Kind     PopupKind         `json:"kind"`
	Position Point             `json:"position"`
	Filter   *FilterEditorView `json:"filter,omitempty"`
	Columns  []ColumnToggle    `json:"columns,omitempty"`
}

// Choice is one entry of a select control.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ActiveFilter is a committed filter as listed in the editor.
type ActiveFilter struct {
	Index         int    `json:"index"`
	Column        string `json:"column"`
	OperatorLabel string `json:"operator_label"`
	Value         string `json:"value"`
}

// FilterEditorView renders the draft controls and the committed filters.
type FilterEditorView struct {
	Draft        Filter         `json:"draft"`
	Columns      []Choice       `json:"columns"`
	Operators    []Choice       `json:"operators"`
	Active       []ActiveFilter `json:"active"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

// ColumnToggle is one checkbox of the column editor.
type ColumnToggle struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

func (g *Grid) popupView() *PopupView {
	kind := g.popups.Current()
	if kind == PopupNone {
		return nil
	}
	view := &PopupView{Kind: kind, Position: g.popups.Position()}
	switch kind {
	case PopupFilter:
		view.Filter = g.filterEditor()
	case PopupColumns:
		view.Columns = make([]ColumnToggle, len(g.columns))
		for i, col := range g.columns {
			view.Columns[i] = ColumnToggle{ID: col.ID, Label: col.Label, Visible: g.visibility.Visible(col.ID)}
		}
	}
	return view
}

func (g *Grid) filterEditor() *FilterEditorView {
	editor := &FilterEditorView{Draft: g.draft}
	for _, col := range g.columns {
		editor.Columns = append(editor.Columns, Choice{
			Value:    col.ID,
			Label:    col.Label,
			Selected: col.ID == g.draft.ColumnID,
		})
	}
	for _, op := range Operators() {
		editor.Operators = append(editor.Operators, Choice{
			Value:    string(op),
			Label:    OperatorLabel(op),
			Selected: op == g.draft.Operator,
		})
	}
	for i, f := range g.filters {
		editor.Active = append(editor.Active, ActiveFilter{
			Index:         i,
			Column:        f.ColumnID,
			OperatorLabel: OperatorLabel(f.Operator),
			Value:         f.Operand,
		})
	}
	if len(g.filters) == 0 {
		editor.EmptyMessage = NoFiltersMessage
	}
	return editor
}

// OperatorLabel humanizes an operator name, e.g. startsWith -> Starts With.
func OperatorLabel(op Operator) string {
	words := strings.Split(strcase.ToSnake(string(op)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// pdfOrientationFor picks landscape pages for wide tables.
func pdfOrientationFor(columns int) PDFOption {
	if columns > 6 {
		return WithLandscape()
	}
	return func(*PDFRenderer) {}
}
