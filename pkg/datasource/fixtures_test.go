package datasource

const trafficJSON = `{"data": {
  "trafficBarMetrics": [{"dimensionValue": "Direct", "metricValue": 620}],
  "trafficDateMetrics": [{"dimensionValue": "Direct", "metricValue": [{"date": "2024-05-01", "value": 10}]}],
  "reportMetrics": {
    "columns": [{"name": "channel", "label": "Channel", "options": {"filter": true, "sort": true, "display": true}}],
    "rows": [["Direct"], ["Referral"]]
  }
}}`

const adsJSON = `{"data": {"data": [{"adName": "Spring sale", "dateStart": "2024-05-01", "dateStop": "2024-05-20", "spend": "10", "impressions": "100"}]}}`

const networksJSON = `{"data": [{"networkMetrics": {"Clicks": {"search": 3, "youtube": 1}}}]}`

var fixtures = map[string]string{
	TrafficFile:  trafficJSON,
	AdsFile:      adsJSON,
	NetworksFile: networksJSON,
}
