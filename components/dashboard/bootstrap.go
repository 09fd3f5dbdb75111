package dashboard

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	Source Source
	// Manifest configures the traffic grid; derived from the report when nil.
	Manifest  *datagrid.Manifest
	Charts    *ChartRenderer
	Telemetry datagrid.Telemetry
	// GridBase is the mount path of the grid routes, used to embed the grid.
	GridBase string
}

// Stack bundles the dashboard page and the traffic grid services.
type Stack struct {
	Dashboard      *Service
	Controller     *Controller
	Grids          *datagrid.Service
	GridController *datagrid.Controller
	Broadcast      *datagrid.BroadcastHook
}

// Bootstrap wires the dashboard service, the traffic grid sessions and both
// template controllers.
func Bootstrap(opts BootstrapOptions) (*Stack, error) {
	if opts.Source == nil {
		return nil, errMissingSource
	}
	pageRenderer, pageErr := NewTemplateRenderer()
	gridRenderer, gridErr := datagrid.NewTemplateRenderer()
	if err := errors.Join(pageErr, gridErr); err != nil {
		return nil, fmt.Errorf("dashboard: prepare templates: %w", err)
	}

	broadcast := datagrid.NewBroadcastHook()
	grids := datagrid.NewService(datagrid.ServiceOptions{
		Factory:   TrafficFactory(opts.Source, opts.Manifest),
		Hook:      broadcast,
		Telemetry: opts.Telemetry,
	})
	service := NewService(ServiceOptions{
		Source:    opts.Source,
		Charts:    opts.Charts,
		Telemetry: opts.Telemetry,
	})
	return &Stack{
		Dashboard: service,
		Controller: NewController(ControllerOptions{
			Service:  service,
			Renderer: pageRenderer,
			Grids:    grids,
			GridBase: opts.GridBase,
		}),
		Grids: grids,
		GridController: datagrid.NewController(datagrid.ControllerOptions{
			Service:  grids,
			Renderer: gridRenderer,
			Title:    "Traffic report",
		}),
		Broadcast: broadcast,
	}, nil
}
