package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricBarNormalizes(t *testing.T) {
	bar := BuildMetricBar(NetworkMetric{
		Name: "Impressions",
		Values: map[NetworkKey]float64{
			NetworkSearch:         300,
			NetworkSearchPartners: 100,
			NetworkContent:        0,
			NetworkYouTube:        100,
			NetworkMixed:          0,
		},
	})

	assert.Equal(t, "Impressions", bar.Title)
	require.Len(t, bar.Segments, 3)
	assert.Equal(t, NetworkSearch, bar.Segments[0].Network)
	assert.InDelta(t, 60.0, bar.Segments[0].Percent, 1e-9)
	assert.Equal(t, "Google search", bar.Segments[0].Label)
	assert.Equal(t, "#4285F4", bar.Segments[0].Color)
	assert.InDelta(t, 20.0, bar.Segments[2].Percent, 1e-9)
	assert.Equal(t, NetworkYouTube, bar.Segments[2].Network)

	require.Len(t, bar.Chips, 5)
	assert.Equal(t, "300", bar.Chips[0].Value)
	assert.Equal(t, NetworkMixed, bar.Chips[4].Network)
}

func TestBuildMetricBarZeroTotalAndMinWidth(t *testing.T) {
	zero := BuildMetricBar(NetworkMetric{Name: "Clicks", Values: map[NetworkKey]float64{NetworkSearch: 0, NetworkYouTube: 0}})
	assert.Empty(t, zero.Segments)
	assert.Len(t, zero.Chips, 2)

	tiny := BuildMetricBar(NetworkMetric{Name: "Conversions", Values: map[NetworkKey]float64{NetworkSearch: 999, NetworkYouTube: 1}})
	require.Len(t, tiny.Segments, 2)
	assert.InDelta(t, 0.1, tiny.Segments[1].Percent, 1e-9)
	assert.Equal(t, MinSegmentPercent, tiny.Segments[1].Width)
}

func TestBuildMetricBarUnknownNetwork(t *testing.T) {
	bar := BuildMetricBar(NetworkMetric{Name: "Views", Values: map[NetworkKey]float64{"zeta": 1, "alpha": 1, NetworkContent: 2}})
	require.Len(t, bar.Segments, 3)
	assert.Equal(t, []NetworkKey{NetworkContent, "alpha", "zeta"}, []NetworkKey{bar.Segments[0].Network, bar.Segments[1].Network, bar.Segments[2].Network})
	assert.Equal(t, "alpha", bar.Segments[1].Label)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]NetworkMetric{
		{Name: "Impressions", Values: map[NetworkKey]float64{NetworkSearch: 1}},
		{Name: "Clicks", Values: map[NetworkKey]float64{NetworkSearch: 1}},
	})
	assert.Equal(t, SummaryTitle, summary.Title)
	require.Len(t, summary.Legend, 5)
	assert.Equal(t, "Cross-network", summary.Legend[4].Label)
	require.Len(t, summary.Bars, 2)
	assert.Equal(t, "Clicks", summary.Bars[1].Title)
}
