package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-datagrid/components/datagrid"
	"github.com/goliatone/go-datagrid/components/datagrid/commands"
	"github.com/goliatone/go-datagrid/components/datagrid/queries"
)

// Opener starts grid sessions.
type Opener interface {
	Open(ctx context.Context) (string, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries. Grid
// ids are resolved by the router and passed in explicitly.
type Handlers struct {
	Opener       Opener
	AddFilter    gocommand.Commander[commands.AddFilterInput]
	RemoveFilter gocommand.Commander[commands.RemoveFilterInput]
	Search       gocommand.Commander[commands.SearchInput]
	ToggleColumn gocommand.Commander[commands.ToggleColumnInput]
	ToggleSort   gocommand.Commander[commands.ToggleSortInput]
	Paginate     gocommand.Commander[commands.PaginateInput]
	Popup        gocommand.Commander[commands.TogglePopupInput]
	PopupBounds  gocommand.Commander[commands.PopupBoundsInput]
	Pointer      gocommand.Commander[commands.PointerInput]
	Close        gocommand.Commander[commands.CloseGridInput]
	View         gocommand.Querier[queries.ViewInput, datagrid.View]
	Export       gocommand.Querier[queries.ExportInput, datagrid.Payload]
}

// HandleOpen creates a grid session and returns its id.
func (h *Handlers) HandleOpen(w http.ResponseWriter, r *http.Request) {
	if h.Opener == nil {
		http.Error(w, "grid sessions are not enabled", http.StatusNotImplemented)
		return
	}
	id, err := h.Opener.Open(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"grid_id": id})
}

// HandleView returns the current page as JSON.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request, gridID string) {
	h.respondView(w, r, gridID)
}

func (h *Handlers) HandleAddFilter(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.AddFilterInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.AddFilter, payload)
}

func (h *Handlers) HandleRemoveFilter(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.RemoveFilterInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.RemoveFilter, payload)
}

func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.SearchInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.Search, payload)
}

func (h *Handlers) HandleToggleColumn(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.ToggleColumnInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.ToggleColumn, payload)
}

func (h *Handlers) HandleToggleSort(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.ToggleSortInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.ToggleSort, payload)
}

func (h *Handlers) HandlePaginate(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.PaginateInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.Paginate, payload)
}

func (h *Handlers) HandlePopup(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.TogglePopupInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.Popup, payload)
}

func (h *Handlers) HandlePopupBounds(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.PopupBoundsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.PopupBounds, payload)
}

func (h *Handlers) HandlePointer(w http.ResponseWriter, r *http.Request, gridID string) {
	var payload commands.PointerInput
	if !decode(w, r, &payload) {
		return
	}
	payload.GridID = gridID
	run(h, w, r, gridID, h.Pointer, payload)
}

// HandleClose ends the session.
func (h *Handlers) HandleClose(w http.ResponseWriter, r *http.Request, gridID string) {
	if h.Close == nil {
		http.Error(w, "close is not enabled", http.StatusNotImplemented)
		return
	}
	if err := h.Close.Execute(r.Context(), commands.CloseGridInput{GridID: gridID}); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExport streams a CSV or PDF download chosen by the "format" query
// parameter.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request, gridID string) {
	if h.Export == nil {
		http.Error(w, "export is not enabled", http.StatusNotImplemented)
		return
	}
	payload, err := h.Export.Query(r.Context(), queries.ExportInput{
		GridID: gridID,
		Format: r.URL.Query().Get("format"),
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	WritePayload(w, payload)
}

// WritePayload writes an export as a file download.
func WritePayload(w http.ResponseWriter, payload datagrid.Payload) {
	w.Header().Set("Content-Type", payload.MIMEType)
	w.Header().Set("Content-Disposition", ContentDisposition(payload.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(payload.Data)
}

// ContentDisposition builds the attachment header for filename.
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

var errNotEnabled = errors.New("operation is not enabled")

// run executes cmd and answers with the refreshed view, or 204 when no view
// query is configured.
func run[T any](h *Handlers, w http.ResponseWriter, r *http.Request, gridID string, cmd gocommand.Commander[T], msg T) {
	if cmd == nil {
		http.Error(w, errNotEnabled.Error(), http.StatusNotImplemented)
		return
	}
	if err := cmd.Execute(r.Context(), msg); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if h.View == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.respondView(w, r, gridID)
}

func (h *Handlers) respondView(w http.ResponseWriter, r *http.Request, gridID string) {
	if h.View == nil {
		http.Error(w, errNotEnabled.Error(), http.StatusNotImplemented)
		return
	}
	view, err := h.View.Query(r.Context(), queries.ViewInput{GridID: gridID})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, datagrid.ErrGridNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNotEnabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
