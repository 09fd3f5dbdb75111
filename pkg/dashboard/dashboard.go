package dashboard

import (
	core "github.com/goliatone/go-datagrid/components/dashboard"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// Stack exposes the wired dashboard page and traffic grid services.
type Stack = core.Stack

// Options re-export for convenience.
type Options = core.BootstrapOptions

// Source re-export for data providers living outside the module.
type Source = core.Source

// GridService exposes the underlying components/datagrid.Service type.
type GridService = datagrid.Service

// New proxies to the internal bootstrap.
func New(opts Options) (*Stack, error) {
	return core.Bootstrap(opts)
}
