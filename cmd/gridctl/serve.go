package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-datagrid/components/dashboard"
	"github.com/goliatone/go-datagrid/components/datagrid"
	"github.com/goliatone/go-datagrid/components/datagrid/commands"
	"github.com/goliatone/go-datagrid/components/datagrid/gorouter"
	"github.com/goliatone/go-datagrid/components/datagrid/httpapi"
	"github.com/goliatone/go-datagrid/components/datagrid/queries"
	"github.com/goliatone/go-datagrid/pkg/datasource"
)

const gridBasePath = "/datagrid"

type serveCmd struct {
	Addr      string        `default:":9876" env:"GRIDCTL_ADDR" help:"Listen address."`
	Data      string        `type:"path" env:"GRIDCTL_DATA" help:"Directory holding the dashboard JSON datasets."`
	RemoteURL string        `name:"remote-url" env:"GRIDCTL_REMOTE_URL" help:"Base URL serving the dashboard datasets over HTTP."`
	APIKey    string        `name:"api-key" env:"GRIDCTL_API_KEY" help:"Bearer token for --remote-url."`
	Manifest  string        `type:"existingfile" help:"Manifest for the traffic report grid."`
	ChartTTL  time.Duration `name:"chart-ttl" default:"5m" help:"Chart render cache TTL (0 disables caching)."`
}

func (cmd *serveCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	source, err := cmd.source()
	if err != nil {
		return err
	}
	var manifest *datagrid.Manifest
	if cmd.Manifest != "" {
		if manifest, err = datagrid.ReadManifest(cmd.Manifest); err != nil {
			return err
		}
	}

	telemetry := datagrid.NewZerologTelemetry(logger)
	stack, err := dashboard.Bootstrap(dashboard.BootstrapOptions{
		Source:    source,
		Manifest:  manifest,
		Charts:    dashboard.NewChartRenderer(dashboard.WithChartCache(dashboard.NewChartCache(cmd.ChartTTL))),
		Telemetry: telemetry,
		GridBase:  gridBasePath,
	})
	if err != nil {
		return err
	}

	server := router.NewFiberAdapter()
	app := server.Router()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     app,
		Controller: stack.GridController,
		API:        newHandlers(stack.Grids, telemetry),
		Broadcast:  stack.Broadcast,
		BasePath:   gridBasePath,
	}); err != nil {
		return fmt.Errorf("gridctl: register grid routes: %w", err)
	}
	registerDashboard(app, stack.Controller, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cmd.Addr).Msg("dashboard ready")
		errCh <- server.Serve(cmd.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (cmd *serveCmd) source() (dashboard.Source, error) {
	switch {
	case cmd.RemoteURL != "":
		return datasource.NewHTTPSource(datasource.HTTPConfig{
			BaseURL:   cmd.RemoteURL,
			APIKey:    cmd.APIKey,
			Validator: datagrid.NewJSONSchemaValidator(),
		})
	case cmd.Data != "":
		return datasource.NewFileSource(cmd.Data, datagrid.NewJSONSchemaValidator())
	default:
		return nil, errors.New("gridctl: --data or --remote-url is required")
	}
}

// newHandlers binds every grid command and query to the session service.
func newHandlers(grids *datagrid.Service, telemetry commands.Telemetry) *httpapi.Handlers {
	return &httpapi.Handlers{
		Opener:       grids,
		AddFilter:    commands.NewAddFilterCommand(grids, telemetry),
		RemoveFilter: commands.NewRemoveFilterCommand(grids, telemetry),
		Search:       commands.NewSearchCommand(grids, telemetry),
		ToggleColumn: commands.NewToggleColumnCommand(grids, telemetry),
		ToggleSort:   commands.NewToggleSortCommand(grids, telemetry),
		Paginate:     commands.NewPaginateCommand(grids, telemetry),
		Popup:        commands.NewTogglePopupCommand(grids, telemetry),
		PopupBounds:  commands.NewPopupBoundsCommand(grids),
		Pointer:      commands.NewPointerCommand(grids),
		Close:        commands.NewCloseGridCommand(grids, telemetry),
		View:         queries.NewGridViewQuery(grids),
		Export:       queries.NewExportQuery(grids),
	}
}

func registerDashboard[T any](app router.Router[T], controller *dashboard.Controller, logger zerolog.Logger) {
	app.Get("/", router.WrapHandler(func(ctx router.Context) error {
		interval, _ := strconv.Atoi(ctx.Query("interval"))
		var buf bytes.Buffer
		if err := controller.RenderTemplate(ctx.Context(), interval, &buf); err != nil {
			logger.Error().Err(err).Msg("render dashboard")
			return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	app.Get("/api/dashboard", router.WrapHandler(func(ctx router.Context) error {
		interval, _ := strconv.Atoi(ctx.Query("interval"))
		payload, err := controller.PagePayload(ctx.Context(), interval)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return ctx.JSON(http.StatusOK, payload)
	}))
}
