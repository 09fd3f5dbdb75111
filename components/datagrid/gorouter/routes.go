package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-datagrid/components/datagrid"
	"github.com/goliatone/go-datagrid/components/datagrid/commands"
	"github.com/goliatone/go-datagrid/components/datagrid/httpapi"
	"github.com/goliatone/go-datagrid/components/datagrid/queries"
)

// Config wires go-router with the datagrid controller, API, and broadcast hook.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *datagrid.Controller
	API        *httpapi.Handlers
	Broadcast  *datagrid.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for grid endpoints.
type RouteConfig struct {
	Open         string
	HTML         string
	View         string
	Filters      string
	RemoveFilter string
	Search       string
	Columns      string
	Sort         string
	Page         string
	Popup        string
	PopupBounds  string
	Pointer      string
	Export       string
	WebSocket    string
}

// Register mounts grid routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/datagrid"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), ctx.Param("id"), &buf); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.ViewPayload(ctx.Context(), ctx.Param("id"))
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api *httpapi.Handlers, routes RouteConfig) {
	if api.Opener != nil {
		r.Post(routes.Open, router.WrapHandler(func(ctx router.Context) error {
			id, err := api.Opener.Open(ctx.Context())
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return ctx.JSON(http.StatusCreated, map[string]string{"grid_id": id})
		}))
	}

	if api.Close != nil {
		r.Delete(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
			if err := api.Close.Execute(ctx.Context(), commands.CloseGridInput{GridID: ctx.Param("id")}); err != nil {
				return respondError(ctx, statusFor(err), err)
			}
			return ctx.JSON(http.StatusNoContent, map[string]string{"status": "closed"})
		}))
	}

	post(r, api, routes.Filters, api.AddFilter, func(msg *commands.AddFilterInput, id string) { msg.GridID = id })
	post(r, api, routes.RemoveFilter, api.RemoveFilter, func(msg *commands.RemoveFilterInput, id string) { msg.GridID = id })
	post(r, api, routes.Search, api.Search, func(msg *commands.SearchInput, id string) { msg.GridID = id })
	post(r, api, routes.Columns, api.ToggleColumn, func(msg *commands.ToggleColumnInput, id string) { msg.GridID = id })
	post(r, api, routes.Sort, api.ToggleSort, func(msg *commands.ToggleSortInput, id string) { msg.GridID = id })
	post(r, api, routes.Page, api.Paginate, func(msg *commands.PaginateInput, id string) { msg.GridID = id })
	post(r, api, routes.Popup, api.Popup, func(msg *commands.TogglePopupInput, id string) { msg.GridID = id })
	post(r, api, routes.PopupBounds, api.PopupBounds, func(msg *commands.PopupBoundsInput, id string) { msg.GridID = id })
	post(r, api, routes.Pointer, api.Pointer, func(msg *commands.PointerInput, id string) { msg.GridID = id })

	if api.Export != nil {
		r.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
			payload, err := api.Export.Query(ctx.Context(), queries.ExportInput{
				GridID: ctx.Param("id"),
				Format: ctx.Query("format"),
			})
			if err != nil {
				return respondError(ctx, statusFor(err), err)
			}
			ctx.SetHeader("Content-Type", payload.MIMEType)
			ctx.SetHeader("Content-Disposition", httpapi.ContentDisposition(payload.Filename))
			ctx.SetHeader("Content-Length", strconv.Itoa(len(payload.Data)))
			return ctx.Send(payload.Data)
		}))
	}
}

// post mounts a JSON command endpoint that answers with the refreshed view.
func post[T, M any](r router.Router[T], api *httpapi.Handlers, path string, cmd gocommand.Commander[M], bind func(*M, string)) {
	if cmd == nil {
		return
	}
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		var msg M
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &msg); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		id := ctx.Param("id")
		bind(&msg, id)
		if err := cmd.Execute(ctx.Context(), msg); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return respondView(ctx, api, id)
	}))
}

func respondView(ctx router.Context, api *httpapi.Handlers, id string) error {
	if api.View == nil {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	view, err := api.View.Query(ctx.Context(), queries.ViewInput{GridID: id})
	if err != nil {
		return respondError(ctx, statusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func registerWebSocket[T any](r router.Router[T], hook *datagrid.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		// Clients filter by GridEvent.GridID; the net/http hook supports ?grid=.
		events, cancel := hook.Subscribe("")
		defer cancel()
		return pump(ws.Context(), events, ws.WriteJSON, ws.Close)
	})
}

// pump forwards events until the channel closes or ctx ends.
func pump(ctx context.Context, events <-chan datagrid.GridEvent, write func(any) error, closeFn func() error) error {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := write(event); err != nil {
				return err
			}
		case <-ctx.Done():
			return closeFn()
		}
	}
}

func statusFor(err error) int {
	if errors.Is(err, datagrid.ErrGridNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Open == "" {
		routes.Open = "/grids"
	}
	if routes.HTML == "" {
		routes.HTML = "/grids/:id"
	}
	if routes.View == "" {
		routes.View = "/grids/:id/view"
	}
	if routes.Filters == "" {
		routes.Filters = "/grids/:id/filters"
	}
	if routes.RemoveFilter == "" {
		routes.RemoveFilter = "/grids/:id/filters/remove"
	}
	if routes.Search == "" {
		routes.Search = "/grids/:id/search"
	}
	if routes.Columns == "" {
		routes.Columns = "/grids/:id/columns"
	}
	if routes.Sort == "" {
		routes.Sort = "/grids/:id/sort"
	}
	if routes.Page == "" {
		routes.Page = "/grids/:id/page"
	}
	if routes.Popup == "" {
		routes.Popup = "/grids/:id/popup"
	}
	if routes.PopupBounds == "" {
		routes.PopupBounds = "/grids/:id/popup/bounds"
	}
	if routes.Pointer == "" {
		routes.Pointer = "/grids/:id/pointer"
	}
	if routes.Export == "" {
		routes.Export = "/grids/:id/export"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
