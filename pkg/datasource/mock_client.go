package datasource

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-datagrid/components/dashboard"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// MockData seeds deterministic datasets for tests or local demos.
type MockData struct {
	Traffic  dashboard.Traffic
	Ads      []dashboard.Ad
	Networks []dashboard.NetworkMetric
}

// MockSource implements dashboard.Source using in-memory fixtures.
type MockSource struct {
	data MockData
	mu   sync.RWMutex
}

var _ dashboard.Source = (*MockSource)(nil)

// NewMockSource builds a mock source from the provided fixtures.
func NewMockSource(data MockData) *MockSource {
	return &MockSource{data: data}
}

// Set replaces the fixtures.
func (s *MockSource) Set(data MockData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Traffic returns a copy of the traffic fixture.
func (s *MockSource) Traffic(context.Context) (dashboard.Traffic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTraffic(s.data.Traffic), nil
}

// Ads returns a copy of the ads fixture.
func (s *MockSource) Ads(context.Context) ([]dashboard.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dashboard.Ad(nil), s.data.Ads...), nil
}

// Networks returns a copy of the network fixture.
func (s *MockSource) Networks(context.Context) ([]dashboard.NetworkMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dashboard.NetworkMetric, len(s.data.Networks))
	for i, metric := range s.data.Networks {
		out[i] = dashboard.NetworkMetric{Name: metric.Name, Values: maps.Clone(metric.Values)}
	}
	return out, nil
}

func cloneTraffic(t dashboard.Traffic) dashboard.Traffic {
	out := dashboard.Traffic{
		BarMetrics:  append([]dashboard.DimensionMetric(nil), t.BarMetrics...),
		DateMetrics: make([]dashboard.DateSeries, len(t.DateMetrics)),
		Report: datagrid.Dataset{
			Columns: append([]datagrid.ColumnSpec(nil), t.Report.Columns...),
			Rows:    make([]datagrid.Row, len(t.Report.Rows)),
		},
	}
	for i, series := range t.DateMetrics {
		out.DateMetrics[i] = dashboard.DateSeries{
			Dimension: series.Dimension,
			Points:    append([]dashboard.DatePoint(nil), series.Points...),
		}
	}
	for i, row := range t.Report.Rows {
		out.Report.Rows[i] = append(datagrid.Row(nil), row...)
	}
	return out
}
