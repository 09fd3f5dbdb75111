package datasource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-datagrid/components/dashboard"
	"github.com/goliatone/go-datagrid/components/datagrid"
)

// Dataset file names, shared by the directory and HTTP sources.
const (
	TrafficFile  = "Traffic_acquisition.json"
	AdsFile      = "ads_overview.json"
	NetworksFile = "performing_networks.json"
)

// FileSource reads the dashboard datasets from a directory.
type FileSource struct {
	dir       string
	validator datagrid.DatasetValidator
}

var _ dashboard.Source = (*FileSource)(nil)

// NewFileSource builds a source over dir. The traffic report table is checked
// with validator when non-nil.
func NewFileSource(dir string, validator datagrid.DatasetValidator) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("datasource: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("datasource: %s is not a directory", dir)
	}
	return &FileSource{dir: dir, validator: validator}, nil
}

// Traffic implements dashboard.Source.
func (s *FileSource) Traffic(ctx context.Context) (dashboard.Traffic, error) {
	var out dashboard.Traffic
	err := s.open(ctx, TrafficFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeTraffic(r, s.validator)
		return err
	})
	return out, err
}

// Ads implements dashboard.Source.
func (s *FileSource) Ads(ctx context.Context) ([]dashboard.Ad, error) {
	var out []dashboard.Ad
	err := s.open(ctx, AdsFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeAds(r)
		return err
	})
	return out, err
}

// Networks implements dashboard.Source.
func (s *FileSource) Networks(ctx context.Context) ([]dashboard.NetworkMetric, error) {
	var out []dashboard.NetworkMetric
	err := s.open(ctx, NetworksFile, func(r io.Reader) (err error) {
		out, err = dashboard.DecodeNetworks(r)
		return err
	})
	return out, err
}

func (s *FileSource) open(ctx context.Context, name string, decode func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("datasource: open %s: %w", path, err)
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("datasource: %s: %w", name, err)
	}
	return nil
}
