package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
)

type cli struct {
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`

	Serve    serveCmd    `cmd:"" help:"Serve the traffic dashboard and grid endpoints."`
	Export   exportCmd   `cmd:"" help:"Export a dataset grid as CSV or PDF."`
	Inspect  inspectCmd  `cmd:"" help:"Print the first page of a dataset grid."`
	Manifest manifestCmd `cmd:"" help:"Scaffold a grid manifest from a dataset."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("gridctl"),
		kong.Description("Data grid tooling: serve the dashboard, export and inspect grids."),
		kong.UsageOnError(),
	)
	logger := newLogger(app.LogLevel)
	ctx.Bind(logger)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Str("app", "gridctl").Logger()
}
