package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// TrafficGridName names the traffic report grid in manifests and logs.
const TrafficGridName = "traffic"

var errMissingSource = errors.New("dashboard: dataset source is required")

// ServiceOptions configures the dashboard service.
type ServiceOptions struct {
	Source    Source
	Charts    *ChartRenderer
	Telemetry datagrid.Telemetry
	// BarMax clips the traffic bar chart; DefaultBarMax when zero.
	BarMax float64
	// Now is the clock used for the ads window.
	Now func() time.Time
}

// Service assembles dashboard pages from a dataset source.
type Service struct {
	opts ServiceOptions
}

// NewService builds a Service with safe defaults.
func NewService(opts ServiceOptions) *Service {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{opts: opts}
}

// TrafficSection holds both traffic charts, as models and rendered HTML.
type TrafficSection struct {
	Bar      BarChartModel  `json:"bar"`
	Line     LineChartModel `json:"line"`
	BarHTML  string         `json:"bar_html"`
	LineHTML string         `json:"line_html"`
}

// Page is the whole dashboard for one ads interval.
type Page struct {
	Traffic TrafficSection `json:"traffic"`
	Ads     AdsOverview    `json:"ads"`
	Summary NetworkSummary `json:"summary"`
}

// Page loads every dataset and builds the dashboard. Failures of individual
// sections are joined so one broken feed reports alongside the others.
func (s *Service) Page(ctx context.Context, interval int) (Page, error) {
	if s.opts.Source == nil {
		return Page{}, errMissingSource
	}
	var (
		page Page
		errs []error
	)
	if section, err := s.traffic(ctx); err != nil {
		errs = append(errs, err)
	} else {
		page.Traffic = section
	}
	if ads, err := s.opts.Source.Ads(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dashboard: load ads: %w", err))
	} else {
		page.Ads = Overview(ads, interval, s.opts.Now())
	}
	if metrics, err := s.opts.Source.Networks(ctx); err != nil {
		errs = append(errs, fmt.Errorf("dashboard: load networks: %w", err))
	} else {
		page.Summary = Summarize(metrics)
	}
	if err := errors.Join(errs...); err != nil {
		s.record(ctx, "dashboard.page.error", map[string]any{"error": err.Error()})
		return Page{}, err
	}
	s.record(ctx, "dashboard.page", map[string]any{
		"interval": page.Ads.Interval,
		"ads":      len(page.Ads.Items),
		"metrics":  len(page.Summary.Bars),
	})
	return page, nil
}

func (s *Service) traffic(ctx context.Context) (TrafficSection, error) {
	data, err := s.opts.Source.Traffic(ctx)
	if err != nil {
		return TrafficSection{}, fmt.Errorf("dashboard: load traffic: %w", err)
	}
	section := TrafficSection{
		Bar:  TrafficBarChart(data.BarMetrics, s.opts.BarMax),
		Line: TrafficLineChart(data.DateMetrics),
	}
	if section.BarHTML, err = s.opts.Charts.RenderBar(section.Bar); err != nil {
		return TrafficSection{}, err
	}
	if section.LineHTML, err = s.opts.Charts.RenderLine(section.Line); err != nil {
		return TrafficSection{}, err
	}
	return section, nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	if s.opts.Telemetry != nil {
		s.opts.Telemetry.Record(ctx, event, payload)
	}
}

// TrafficFactory opens traffic report grids for datagrid sessions. The report
// is reloaded for every session; manifest may be nil to derive one from the
// dataset.
func TrafficFactory(source Source, manifest *datagrid.Manifest) datagrid.Factory {
	return func(ctx context.Context, opts ...datagrid.Option) (*datagrid.Grid, error) {
		if source == nil {
			return nil, errMissingSource
		}
		data, err := source.Traffic(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: load traffic report: %w", err)
		}
		doc := manifest
		if doc == nil {
			doc = datagrid.ManifestFor(TrafficGridName, data.Report)
		}
		return doc.Build(data.Report, opts...)
	}
}
