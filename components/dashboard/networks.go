package dashboard

import (
	"math"
	"slices"

	"github.com/dustin/go-humanize"
)

// NetworkKey identifies an ad network.
type NetworkKey string

const (
	NetworkSearch         NetworkKey = "search"
	NetworkSearchPartners NetworkKey = "search_partners"
	NetworkContent        NetworkKey = "content"
	NetworkYouTube        NetworkKey = "youtube"
	NetworkMixed          NetworkKey = "mixed"
)

// MinSegmentPercent is the narrowest width a non-empty segment is drawn with.
const MinSegmentPercent = 1.0

// SummaryTitle heads the network summary card.
const SummaryTitle = "Summary of how your ads are performing on these networks"

// NetworkMeta is the legend label and color of a network.
type NetworkMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var networkMeta = map[NetworkKey]NetworkMeta{
	NetworkSearch:         {Label: "Google search", Color: "#4285F4"},
	NetworkSearchPartners: {Label: "Search partners", Color: "#9B59B6"},
	NetworkContent:        {Label: "Content", Color: "#F39C12"},
	NetworkYouTube:        {Label: "YouTube", Color: "#E74C3C"},
	NetworkMixed:          {Label: "Cross-network", Color: "#27AE60"},
}

// NetworkOrder is the legend order.
func NetworkOrder() []NetworkKey {
	return []NetworkKey{NetworkSearch, NetworkSearchPartners, NetworkContent, NetworkYouTube, NetworkMixed}
}

// MetaFor returns the label and color of key. Unknown networks get a grey
// chip labelled with the raw key.
func MetaFor(key NetworkKey) NetworkMeta {
	if meta, ok := networkMeta[key]; ok {
		return meta
	}
	return NetworkMeta{Label: string(key), Color: "#999999"}
}

// Segment is one colored slice of a metric bar.
type Segment struct {
	Network NetworkKey `json:"network"`
	Label   string     `json:"label"`
	Color   string     `json:"color"`
	Raw     float64    `json:"raw"`
	Percent float64    `json:"percent"`
	Width   float64    `json:"width"`
}

// Chip is the value badge rendered under a metric bar.
type Chip struct {
	Network NetworkKey `json:"network"`
	Color   string     `json:"color"`
	Value   string     `json:"value"`
}

// MetricBar is the rendered distribution of one metric across networks.
type MetricBar struct {
	Title    string    `json:"title"`
	Segments []Segment `json:"segments"`
	Chips    []Chip    `json:"chips"`
}

// NetworkSummary is the legend plus one bar per metric.
type NetworkSummary struct {
	Title  string        `json:"title"`
	Legend []NetworkMeta `json:"legend"`
	Bars   []MetricBar   `json:"bars"`
}

// Summarize builds the network summary, keeping metric order.
func Summarize(metrics []NetworkMetric) NetworkSummary {
	summary := NetworkSummary{Title: SummaryTitle}
	for _, key := range NetworkOrder() {
		summary.Legend = append(summary.Legend, MetaFor(key))
	}
	for _, metric := range metrics {
		summary.Bars = append(summary.Bars, BuildMetricBar(metric))
	}
	return summary
}

// BuildMetricBar normalizes each network value to a percentage of the metric
// total. A zero total is treated as 1 so every percentage is 0. Segments at or
// below 0% are left out; chips are kept for every network.
func BuildMetricBar(metric NetworkMetric) MetricBar {
	bar := MetricBar{Title: metric.Name}
	keys := metricKeys(metric)
	total := 0.0
	for _, key := range keys {
		total += metric.Values[key]
	}
	if total == 0 {
		total = 1
	}
	for _, key := range keys {
		raw := metric.Values[key]
		meta := MetaFor(key)
		bar.Chips = append(bar.Chips, Chip{Network: key, Color: meta.Color, Value: humanize.Commaf(raw)})
		percent := raw / total * 100
		if percent <= 0 || math.IsNaN(percent) {
			continue
		}
		bar.Segments = append(bar.Segments, Segment{
			Network: key,
			Label:   meta.Label,
			Color:   meta.Color,
			Raw:     raw,
			Percent: percent,
			Width:   math.Max(percent, MinSegmentPercent),
		})
	}
	return bar
}

// metricKeys lists the known networks in legend order followed by any unknown
// keys in lexical order.
func metricKeys(metric NetworkMetric) []NetworkKey {
	keys := make([]NetworkKey, 0, len(metric.Values))
	seen := make(map[NetworkKey]bool, len(metric.Values))
	for _, key := range NetworkOrder() {
		if _, ok := metric.Values[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []NetworkKey
	for key := range metric.Values {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
