package datagrid

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Export formats accepted by Service.Export.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var (
	errMissingFactory = errors.New("datagrid: grid factory not configured")
	errInvalidGridID  = errors.New("datagrid: grid id is required")
	errUnknownFormat  = errors.New("datagrid: unknown export format")
)

// Factory builds a fresh grid for a new session. The service appends its own
// options (pointer bus, telemetry) after the factory's.
type Factory func(ctx context.Context, opts ...Option) (*Grid, error)

// StaticFactory serves every session from the same dataset and manifest.
func StaticFactory(ds Dataset, manifest *Manifest) Factory {
	return func(_ context.Context, opts ...Option) (*Grid, error) {
		if manifest == nil {
			return NewFromDataset(ds, opts...), nil
		}
		return manifest.Build(ds, opts...)
	}
}

// ServiceOptions configures the Service.
type ServiceOptions struct {
	Factory   Factory
	Sessions  *SessionStore
	Hook      GridHook
	Telemetry Telemetry
}

// Service manages grid sessions for transports. Each session gets its own
// pointer bus so popups of one client never react to another's presses.
type Service struct {
	opts ServiceOptions
}

// NewService builds a Service with safe defaults.
func NewService(opts ServiceOptions) *Service {
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore()
	}
	if opts.Hook == nil {
		opts.Hook = noopGridHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Sessions exposes the underlying store.
func (s *Service) Sessions() *SessionStore { return s.opts.Sessions }

// Open creates a grid session and returns its id.
func (s *Service) Open(ctx context.Context) (string, error) {
	if s.opts.Factory == nil {
		return "", errMissingFactory
	}
	grid, err := s.opts.Factory(ctx, WithPointerBus(NewPointerBus()), WithTelemetry(s.opts.Telemetry))
	if err != nil {
		return "", fmt.Errorf("datagrid: open grid: %w", err)
	}
	id := s.opts.Sessions.Add(grid)
	s.opts.Telemetry.Record(ctx, "datagrid.session.open", map[string]any{"grid_id": id})
	return id, nil
}

// Close tears the session down.
func (s *Service) Close(ctx context.Context, id string) error {
	if id == "" {
		return errInvalidGridID
	}
	if !s.opts.Sessions.Remove(id) {
		return ErrGridNotFound
	}
	s.opts.Telemetry.Record(ctx, "datagrid.session.close", map[string]any{"grid_id": id})
	return nil
}

// View returns the current page of the session.
func (s *Service) View(_ context.Context, id string) (View, error) {
	var view View
	err := s.with(id, func(g *Grid) error {
		view = g.View()
		return nil
	})
	return view, err
}

// AddFilter commits a filter. Blank operands are silently ignored.
func (s *Service) AddFilter(ctx context.Context, id string, f Filter) error {
	return s.mutate(ctx, id, "filter.add", func(g *Grid) bool {
		return g.AddFilter(ctx, f)
	})
}

// CommitDraft replaces the editor draft with draft and commits it.
func (s *Service) CommitDraft(ctx context.Context, id string, draft Filter) error {
	return s.mutate(ctx, id, "filter.add", func(g *Grid) bool {
		g.SetDraft(draft)
		return g.CommitDraft(ctx)
	})
}

// RemoveFilter drops the filter at index.
func (s *Service) RemoveFilter(ctx context.Context, id string, index int) error {
	return s.mutate(ctx, id, "filter.remove", func(g *Grid) bool {
		return g.RemoveFilter(ctx, index)
	})
}

// RemoveAllFilters clears the filter set.
func (s *Service) RemoveAllFilters(ctx context.Context, id string) error {
	return s.mutate(ctx, id, "filter.clear", func(g *Grid) bool {
		had := len(g.filters) > 0
		g.RemoveAllFilters(ctx)
		return had
	})
}

// SetSearch updates the global search query.
func (s *Service) SetSearch(ctx context.Context, id, query string) error {
	return s.mutate(ctx, id, "search", func(g *Grid) bool {
		before := g.Search()
		g.SetSearch(ctx, query)
		return before != query
	})
}

// ToggleColumn flips a column's visibility.
func (s *Service) ToggleColumn(ctx context.Context, id, columnID string) error {
	return s.mutate(ctx, id, "column.toggle", func(g *Grid) bool {
		return g.ToggleColumn(ctx, columnID)
	})
}

// ToggleSort advances the sort cycle of a column.
func (s *Service) ToggleSort(ctx context.Context, id, columnID string) error {
	return s.mutate(ctx, id, "sort.toggle", func(g *Grid) bool {
		return g.ToggleSort(ctx, columnID)
	})
}

// Paginate moves to page, or steps when action is "next" or "prev".
func (s *Service) Paginate(ctx context.Context, id string, page int, action string) error {
	return s.mutate(ctx, id, "page", func(g *Grid) bool {
		switch strings.ToLower(action) {
		case "next":
			return g.Next()
		case "prev", "previous":
			return g.Prev()
		default:
			return g.GoTo(page)
		}
	})
}

// TogglePopup opens or closes a popup under trigger.
func (s *Service) TogglePopup(ctx context.Context, id string, kind PopupKind, trigger Rect) error {
	return s.mutate(ctx, id, "popup", func(g *Grid) bool {
		before := g.OpenPopup()
		g.TogglePopup(kind, trigger)
		return before != g.OpenPopup()
	})
}

// SetPopupBounds records the rendered popup region.
func (s *Service) SetPopupBounds(ctx context.Context, id string, bounds Rect) error {
	return s.with(id, func(g *Grid) error {
		g.SetPopupBounds(bounds)
		return nil
	})
}

// DispatchPointer feeds a pointer event to the session's popups.
func (s *Service) DispatchPointer(ctx context.Context, id string, event PointerEvent) error {
	return s.mutate(ctx, id, "popup", func(g *Grid) bool {
		before := g.OpenPopup()
		g.DispatchPointer(event)
		return before != g.OpenPopup()
	})
}

// Export renders the session's filtered and sorted rows in format.
func (s *Service) Export(ctx context.Context, id, format string) (Payload, error) {
	var payload Payload
	err := s.with(id, func(g *Grid) error {
		switch strings.ToLower(format) {
		case FormatCSV, "":
			payload = g.ExportCSV(ctx)
			return nil
		case FormatPDF:
			var err error
			payload, err = g.ExportPDF(ctx)
			return err
		default:
			return fmt.Errorf("%w %q", errUnknownFormat, format)
		}
	})
	return payload, err
}

func (s *Service) with(id string, fn func(*Grid) error) error {
	if id == "" {
		return errInvalidGridID
	}
	return s.opts.Sessions.With(id, fn)
}

// mutate applies fn and broadcasts the new view when fn reports a change.
func (s *Service) mutate(ctx context.Context, id, reason string, fn func(*Grid) bool) error {
	var (
		changed bool
		view    View
	)
	err := s.with(id, func(g *Grid) error {
		changed = fn(g)
		if changed {
			view = g.View()
		}
		return nil
	})
	if err != nil || !changed {
		return err
	}
	return s.opts.Hook.GridUpdated(ctx, GridEvent{GridID: id, Reason: reason, View: &view})
}
