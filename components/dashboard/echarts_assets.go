package dashboard

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsCDN is the public CDN serving the ECharts runtime.
	DefaultEChartsCDN = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// envEChartsCDN overrides the assets host (e.g. a self-hosted bucket).
	envEChartsCDN = "GO_DATAGRID_ECHARTS_CDN"
)

// DefaultEChartsAssetsHost returns the assets host, respecting
// GO_DATAGRID_ECHARTS_CDN if set.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsCDN
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
