package datasource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-datagrid/components/dashboard"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// HTTPConfig configures the HTTP dataset source.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Validator  datagrid.DatasetValidator
}

// HTTPSource fetches the dashboard datasets from a remote endpoint serving the
// same file names as FileSource.
type HTTPSource struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	validator datagrid.DatasetValidator
}

var _ dashboard.Source = (*HTTPSource)(nil)

// NewHTTPSource builds a source backed by live HTTP endpoints.
func NewHTTPSource(cfg HTTPConfig) (*HTTPSource, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("datasource: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		client:    httpClient,
		validator: cfg.Validator,
	}, nil
}

// Traffic implements dashboard.Source.
func (c *HTTPSource) Traffic(ctx context.Context) (dashboard.Traffic, error) {
	var out dashboard.Traffic
	err := c.get(ctx, TrafficFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeTraffic(r, c.validator)
		return err
	})
	return out, err
}

// Ads implements dashboard.Source.
func (c *HTTPSource) Ads(ctx context.Context) ([]dashboard.Ad, error) {
	var out []dashboard.Ad
	err := c.get(ctx, AdsFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeAds(r)
		return err
	})
	return out, err
}

// Networks implements dashboard.Source.
func (c *HTTPSource) Networks(ctx context.Context) ([]dashboard.NetworkMetric, error) {
	var out []dashboard.NetworkMetric
	err := c.get(ctx, NetworksFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeNetworks(r)
		return err
	})
	return out, err
}

func (c *HTTPSource) get(ctx context.Context, name string, decode func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+name, nil)
	if err != nil {
		return fmt.Errorf("datasource: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("datasource: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("datasource: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("datasource: %s: %w", name, err)
	}
	return nil
}
