package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

const trafficFixture = `{
  "data": {
    "trafficBarMetrics": [
      {"dimensionValue": "Organic Search", "metricValue": 620},
      {"dimensionValue": "Direct", "metricValue": 150}
    ],
    "trafficDateMetrics": [
      {"dimensionValue": "Organic Search", "metricValue": [
        {"date": "2024-05-02", "value": 40},
        {"date": "2024-05-01", "value": 20}
      ]},
      {"dimensionValue": "Direct", "metricValue": [
        {"date": "2024-05-01", "value": 10}
      ]}
    ],
    "reportMetrics": {
      "columns": [
        {"name": "channel", "label": "Session default channel group", "options": {"filter": true, "sort": true, "display": true}},
        {"name": "users", "label": "Users", "options": {"filter": true, "sort": true, "display": true}},
        {"name": "engagement", "label": "Engagement Rate", "options": {"filter": false, "sort": true, "display": false}}
      ],
      "rows": [
        ["Organic Search", 620, 51.25],
        ["Direct", 150, null],
        ["Referral", 80, 12]
      ]
    }
  }
}`

const adsFixture = `{"data": {"data": [
  {"adName": "Spring sale", "dateStart": "2024-05-01", "dateStop": "2024-05-20", "spend": "1234.5", "impressions": "1500000"},
  {"adName": "Winter promo", "dateStart": "2023-12-01", "dateStop": "2024-01-15", "spend": "90", "impressions": "800"}
]}}`

const networksFixture = `{"data": [{"networkMetrics": {
  "Impressions": {"search": 300, "search_partners": 100, "content": 0, "youtube": 100, "mixed": 0},
  "Clicks": {"search": 0, "search_partners": 0, "content": 0, "youtube": 0, "mixed": 0},
  "Conversions": {"search": 999, "youtube": 1}
}}]}`

func TestDecodeTraffic(t *testing.T) {
	traffic, err := DecodeTraffic(strings.NewReader(trafficFixture), datagrid.NewJSONSchemaValidator())
	require.NoError(t, err)

	require.Len(t, traffic.BarMetrics, 2)
	assert.Equal(t, "Organic Search", traffic.BarMetrics[0].Dimension)
	assert.Equal(t, 620.0, traffic.BarMetrics[0].Value)
	require.Len(t, traffic.DateMetrics, 2)
	assert.Len(t, traffic.DateMetrics[0].Points, 2)

	report := traffic.Report
	require.Len(t, report.Columns, 3)
	assert.Equal(t, "channel", report.Columns[0].ID)
	assert.False(t, report.Columns[2].VisibleByDefault)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, datagrid.KindEmpty, report.Rows[1][2].Kind)
}

func TestDecodeTrafficRejectsRaggedReport(t *testing.T) {
	payload := `{"data": {"reportMetrics": {"columns": [{"name": "a"}, {"name": "b"}], "rows": [["x"]]}}}`
	_, err := DecodeTraffic(strings.NewReader(payload), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, datagrid.ErrRowWidth)
}

func TestDecodeAds(t *testing.T) {
	ads, err := DecodeAds(strings.NewReader(adsFixture))
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, "Spring sale", ads[0].Name)
	assert.Equal(t, "1500000", ads[0].Impressions)
}

func TestDecodeNetworksKeepsMetricOrder(t *testing.T) {
	metrics, err := DecodeNetworks(strings.NewReader(networksFixture))
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	assert.Equal(t, []string{"Impressions", "Clicks", "Conversions"}, []string{metrics[0].Name, metrics[1].Name, metrics[2].Name})
	assert.Equal(t, 300.0, metrics[0].Values[NetworkSearch])
}

func TestDecodeNetworksErrors(t *testing.T) {
	_, err := DecodeNetworks(strings.NewReader(`{"data": []}`))
	assert.ErrorIs(t, err, errEmptyNetworks)

	_, err = DecodeNetworks(strings.NewReader(`{"data": [{"networkMetrics": []}]}`))
	assert.Error(t, err)
}
