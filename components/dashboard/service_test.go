package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-datagrid/components/datagrid"
)

type stubSource struct {
	traffic    Traffic
	ads        []Ad
	networks   []NetworkMetric
	trafficErr error
	adsErr     error
	calls      int
}

func (s *stubSource) Traffic(context.Context) (Traffic, error) {
	s.calls++
	return s.traffic, s.trafficErr
}

func (s *stubSource) Ads(context.Context) ([]Ad, error) { return s.ads, s.adsErr }

func (s *stubSource) Networks(context.Context) ([]NetworkMetric, error) { return s.networks, nil }

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func fixtureSource(t *testing.T) *stubSource {
	t.Helper()
	traffic, err := DecodeTraffic(strings.NewReader(trafficFixture), nil)
	require.NoError(t, err)
	networks, err := DecodeNetworks(strings.NewReader(networksFixture))
	require.NoError(t, err)
	return &stubSource{traffic: traffic, ads: fixtureAds(), networks: networks}
}

func newTestService(source Source, telemetry datagrid.Telemetry) *Service {
	return NewService(ServiceOptions{
		Source:    source,
		Charts:    NewChartRenderer(WithChartCache(nil)),
		Telemetry: telemetry,
		Now:       func() time.Time { return day("2024-05-10") },
	})
}

func TestServicePage(t *testing.T) {
	telemetry := &recordingTelemetry{}
	page, err := newTestService(fixtureSource(t), telemetry).Page(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, []float64{500, 150}, page.Traffic.Bar.Values)
	assert.Equal(t, []string{"May 1", "May 2"}, page.Traffic.Line.Labels)
	assert.NotEmpty(t, page.Traffic.BarHTML)
	assert.NotEmpty(t, page.Traffic.LineHTML)
	require.Len(t, page.Ads.Items, 1)
	assert.Equal(t, "Spring sale", page.Ads.Items[0].Name)
	assert.Len(t, page.Summary.Bars, 3)
	assert.Equal(t, []string{"dashboard.page"}, telemetry.events)
}

func TestServicePageJoinsErrors(t *testing.T) {
	source := fixtureSource(t)
	source.trafficErr = errors.New("traffic down")
	source.adsErr = errors.New("ads down")
	telemetry := &recordingTelemetry{}

	_, err := newTestService(source, telemetry).Page(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traffic down")
	assert.Contains(t, err.Error(), "ads down")
	assert.Equal(t, []string{"dashboard.page.error"}, telemetry.events)

	_, err = NewService(ServiceOptions{}).Page(context.Background(), 7)
	assert.ErrorIs(t, err, errMissingSource)
}

func TestTrafficFactoryOpensReportGrid(t *testing.T) {
	source := fixtureSource(t)
	grids := datagrid.NewService(datagrid.ServiceOptions{Factory: TrafficFactory(source, nil)})
	ctx := context.Background()

	id, err := grids.Open(ctx)
	require.NoError(t, err)
	defer grids.Close(ctx, id)

	view, err := grids.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "1-3 of 3", view.Pagination.Summary)
	assert.Equal(t, 1, source.calls)

	payload, err := grids.Export(ctx, id, datagrid.FormatCSV)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload.Data, []byte("Session default channel group;Users\r\n")))

	_, err = TrafficFactory(nil, nil)(ctx)
	assert.ErrorIs(t, err, errMissingSource)
}
