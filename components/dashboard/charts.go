package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer renders server-side chart HTML with go-echarts.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// ChartOption customizes renderer behavior.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = ensureTrailingSlash(host)
	}
}

// WithChartHeight overrides the container height.
func WithChartHeight(height string) ChartOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewChartRenderer builds a renderer. Assets default to DefaultEChartsAssetsHost.
func NewChartRenderer(opts ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:      sharedChartCache,
		theme:      types.ThemeWesteros,
		assetsHost: DefaultEChartsAssetsHost(),
		height:     defaultChartHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBar draws the model as a horizontal bar chart with the x axis fixed to
// [0, Max]. Bar names carry the raw value so tooltips show unclipped numbers.
func (r *ChartRenderer) RenderBar(model BarChartModel) (string, error) {
	return r.cached("bar", model, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(append(r.globalOptions(model.Title, model.Subtitle, false),
			charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: model.Max, SplitNumber: splitCount(model.Max, 50)}),
		)...)
		bar.SetXAxis(model.Labels)
		data := make([]opts.BarData, len(model.Values))
		for i, v := range model.Values {
			data[i] = opts.BarData{
				Name:  fmt.Sprintf("Traffic: %s", formatPlain(model.Raw[i])),
				Value: v,
			}
		}
		bar.AddSeries("Traffic", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: BarColor}))
		bar.XYReversal()
		return renderChart(bar)
	})
}

// RenderLine draws the normalized traffic series on a 0..100 y axis.
func (r *ChartRenderer) RenderLine(model LineChartModel) (string, error) {
	return r.cached("line", model, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(append(r.globalOptions("", model.Subtitle, true),
			charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, SplitNumber: 10}),
		)...)
		line.SetXAxis(model.Labels)
		for _, s := range model.Series {
			data := make([]opts.LineData, len(s.Points))
			for i, p := range s.Points {
				data[i] = opts.LineData{
					Name:  fmt.Sprintf("%s: %s", s.Name, formatPlain(p.Original)),
					Value: p.Y,
				}
			}
			line.AddSeries(s.Name, data,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: 2}),
			)
		}
		return renderChart(line)
	})
}

func (r *ChartRenderer) cached(kind string, model any, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", kind, r.theme, modelHash(model))
	return r.cache.GetOrRender(key, render)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title, subtitle string, legend bool) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func splitCount(max, step float64) int {
	if step <= 0 || max <= 0 {
		return 5
	}
	return int(max / step)
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
