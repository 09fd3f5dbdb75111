package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultBarMax clips the traffic bar chart.
	DefaultBarMax = 500
	// BarColor fills every traffic bar.
	BarColor = "#2ccce4"

	BarChartTitle     = "Users by Session default channel group"
	LineChartSubtitle = "Users by Session default channel group over time"

	dateLabelLayout = "Jan 2"
)

// SeriesColors cycles over line series.
var SeriesColors = []string{"#2ccce4", "#7f3fbf", "#e84393", "#27ae60", "#f1c40f"}

// BarChartModel is a horizontal bar chart whose plotted values are clipped at
// Max while Raw keeps the source values for labels and tooltips.
type BarChartModel struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Max      float64   `json:"max"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Raw      []float64 `json:"raw"`
}

// TrafficBarChart clips each metric at maxValue (DefaultBarMax when <= 0).
func TrafficBarChart(metrics []DimensionMetric, maxValue float64) BarChartModel {
	if maxValue <= 0 {
		maxValue = DefaultBarMax
	}
	model := BarChartModel{
		Title:    BarChartTitle,
		Subtitle: "Clipped at " + formatPlain(maxValue),
		Max:      maxValue,
		Labels:   make([]string, len(metrics)),
		Values:   make([]float64, len(metrics)),
		Raw:      make([]float64, len(metrics)),
	}
	for i, m := range metrics {
		model.Labels[i] = m.Dimension
		model.Values[i] = math.Min(m.Value, maxValue)
		model.Raw[i] = m.Value
	}
	return model
}

// LinePoint is one plotted sample: Y is the value as a percentage of the
// largest value across all series, Original the source value.
type LinePoint struct {
	Label    string  `json:"x"`
	Y        float64 `json:"y"`
	Original float64 `json:"original"`
}

// LineSeries is one channel group on the line chart.
type LineSeries struct {
	Name   string      `json:"label"`
	Color  string      `json:"color"`
	Points []LinePoint `json:"data"`
}

// LineChartModel is the traffic-over-time chart on a 0..100 scale.
type LineChartModel struct {
	Subtitle string       `json:"subtitle"`
	Labels   []string     `json:"labels"`
	Series   []LineSeries `json:"series"`
}

type dayKey struct {
	month time.Month
	day   int
}

// TrafficLineChart merges the dates of every series into one axis of "Jan 2"
// labels in calendar order. Missing samples plot as 0. Samples whose date does
// not parse are skipped.
func TrafficLineChart(series []DateSeries) LineChartModel {
	model := LineChartModel{Subtitle: LineChartSubtitle}

	days := map[dayKey]string{}
	globalMax := math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			if t, ok := parseSampleDate(p.Date); ok {
				days[dayKey{t.Month(), t.Day()}] = t.Format(dateLabelLayout)
			}
			globalMax = math.Max(globalMax, p.Value)
		}
	}
	keys := make([]dayKey, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].day < keys[j].day
	})
	for _, k := range keys {
		model.Labels = append(model.Labels, days[k])
	}

	for idx, s := range series {
		line := LineSeries{
			Name:   s.Dimension,
			Color:  SeriesColors[idx%len(SeriesColors)],
			Points: make([]LinePoint, len(model.Labels)),
		}
		for i, label := range model.Labels {
			point := LinePoint{Label: label}
			if value, ok := firstSample(s.Points, label); ok {
				point.Original = value
				if globalMax > 0 {
					point.Y = value / globalMax * 100
				}
			}
			line.Points[i] = point
		}
		model.Series = append(model.Series, line)
	}
	return model
}

func firstSample(points []DatePoint, label string) (float64, bool) {
	for _, p := range points {
		if t, ok := parseSampleDate(p.Date); ok && t.Format(dateLabelLayout) == label {
			return p.Value, true
		}
	}
	return 0, false
}

var sampleDateLayouts = []string{time.DateOnly, "20060102", time.RFC3339}

func parseSampleDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range sampleDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
