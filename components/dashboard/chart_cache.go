package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultChartCacheSize = 128

// RenderCache memoizes rendered chart HTML keyed by chart kind, theme and model.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is a bounded in-memory TTL cache for rendered charts.
type ChartCache struct {
	entries *expirable.LRU[string, string]
}

// NewChartCache builds a cache with the provided TTL. A TTL <= 0 disables it.
func NewChartCache(ttl time.Duration) *ChartCache {
	if ttl <= 0 {
		return &ChartCache{}
	}
	return &ChartCache{entries: expirable.NewLRU[string, string](defaultChartCacheSize, nil, ttl)}
}

// GetOrRender returns a live entry or renders and stores a new one. Render
// errors are returned and never cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.entries == nil {
		return render()
	}
	if html, ok := c.entries.Get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.entries.Add(key, html)
	return html, nil
}

// Len reports the number of live entries.
func (c *ChartCache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// modelHash returns a deterministic hash of a chart model.
func modelHash(model any) string {
	b, err := json.Marshal(model)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
