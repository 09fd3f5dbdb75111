package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

// DimensionMetric is one bar of the traffic bar chart.
type DimensionMetric struct {
	Dimension string  `json:"dimensionValue"`
	Value     float64 `json:"metricValue"`
}

// DatePoint is one dated sample in a traffic series.
type DatePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DateSeries is the traffic of one channel group over time.
type DateSeries struct {
	Dimension string      `json:"dimensionValue"`
	Points    []DatePoint `json:"metricValue"`
}

// Traffic is the traffic acquisition dataset: bar metrics, dated series and
// the report table handed to the data grid.
type Traffic struct {
	BarMetrics  []DimensionMetric
	DateMetrics []DateSeries
	Report      datagrid.Dataset
}

// Ad is one entry of the ads overview. Numeric fields arrive as strings.
type Ad struct {
	Name        string `json:"adName"`
	DateStart   string `json:"dateStart"`
	DateStop    string `json:"dateStop"`
	Spend       string `json:"spend"`
	Impressions string `json:"impressions"`
}

// NetworkMetric holds the per-network values of one metric, e.g. "Clicks".
type NetworkMetric struct {
	Name   string
	Values map[NetworkKey]float64
}

// Source loads the three dashboard datasets.
type Source interface {
	Traffic(ctx context.Context) (Traffic, error)
	Ads(ctx context.Context) ([]Ad, error)
	Networks(ctx context.Context) ([]NetworkMetric, error)
}

var errEmptyNetworks = errors.New("dashboard: network dataset has no entries")

// DecodeTraffic parses the traffic acquisition payload
// {"data": {"trafficBarMetrics", "trafficDateMetrics", "reportMetrics"}}. The
// report table goes through validator before it becomes a grid dataset.
func DecodeTraffic(r io.Reader, validator datagrid.DatasetValidator) (Traffic, error) {
	var doc struct {
		Data struct {
			BarMetrics  []DimensionMetric `json:"trafficBarMetrics"`
			DateMetrics []DateSeries      `json:"trafficDateMetrics"`
			Report      json.RawMessage   `json:"reportMetrics"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Traffic{}, fmt.Errorf("dashboard: decode traffic: %w", err)
	}
	out := Traffic{
		BarMetrics:  doc.Data.BarMetrics,
		DateMetrics: doc.Data.DateMetrics,
	}
	if len(doc.Data.Report) > 0 {
		report, err := datagrid.DecodeDataset(bytes.NewReader(doc.Data.Report), validator)
		if err != nil {
			return Traffic{}, fmt.Errorf("dashboard: traffic report: %w", err)
		}
		out.Report = report
	}
	return out, nil
}

// DecodeAds parses {"data": {"data": [ad, ...]}}.
func DecodeAds(r io.Reader) ([]Ad, error) {
	var doc struct {
		Data struct {
			Data []Ad `json:"data"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dashboard: decode ads: %w", err)
	}
	return doc.Data.Data, nil
}

// DecodeNetworks parses {"data": [{"networkMetrics": {metric: {network: value}}}]}
// keeping the metric order of the payload.
func DecodeNetworks(r io.Reader) ([]NetworkMetric, error) {
	var doc struct {
		Data []struct {
			NetworkMetrics json.RawMessage `json:"networkMetrics"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dashboard: decode networks: %w", err)
	}
	if len(doc.Data) == 0 {
		return nil, errEmptyNetworks
	}
	metrics, err := decodeOrderedMetrics(doc.Data[0].NetworkMetrics)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode networks: %w", err)
	}
	return metrics, nil
}

func decodeOrderedMetrics(raw json.RawMessage) ([]NetworkMetric, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("networkMetrics must be an object")
	}
	var out []NetworkMetric
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var values map[NetworkKey]json.Number
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("metric %q: %w", name, err)
		}
		metric := NetworkMetric{Name: name, Values: make(map[NetworkKey]float64, len(values))}
		for key, num := range values {
			f, err := strconv.ParseFloat(num.String(), 64)
			if err != nil {
				return nil, fmt.Errorf("metric %q network %s: %w", name, key, err)
			}
			metric.Values[key] = f
		}
		out = append(out, metric)
	}
	return out, nil
}
