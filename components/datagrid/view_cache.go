package datagrid

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultViewCacheSize = 64

// ViewCache memoizes computed views by the structural hash of their inputs.
type ViewCache interface {
	GetOrCompute(key string, compute func() View) View
}

// LRUViewCache keeps the most recently used views in memory.
type LRUViewCache struct {
	entries *lru.Cache[string, View]
}

// NewLRUViewCache builds a cache holding up to size views.
func NewLRUViewCache(size int) *LRUViewCache {
	if size <= 0 {
		size = defaultViewCacheSize
	}
	entries, err := lru.New[string, View](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &LRUViewCache{entries: entries}
}

// GetOrCompute returns the cached view for key or computes and stores it.
func (c *LRUViewCache) GetOrCompute(key string, compute func() View) View {
	if c == nil || c.entries == nil {
		return compute()
	}
	if view, ok := c.entries.Get(key); ok {
		return view
	}
	view := compute()
	c.entries.Add(key, view)
	return view
}

// Len returns the number of cached views.
func (c *LRUViewCache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

type viewKey struct {
	Filters  FilterSet `json:"f"`
	Search   string    `json:"q"`
	Hidden   []string  `json:"h"`
	Sort     SortState `json:"s"`
	Page     int       `json:"p"`
	PageSize int       `json:"n"`
	Format   uint64    `json:"v"`
}

// inputHash returns a deterministic hash of the mutable grid inputs, including
// the formatter registry version. Rows and columns are fixed per grid and are
// not part of the key.
func inputHash(in Input) string {
	b, err := json.Marshal(viewKey{
		Filters:  in.Filters,
		Search:   in.Search,
		Hidden:   in.visibility().hidden(),
		Sort:     in.Sort,
		Page:     in.Page.Current,
		PageSize: in.Page.Size,
		Format:   in.Formatters.Version(),
	})
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
