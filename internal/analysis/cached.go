package analysis

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tabnote/internal/dataset"
)

// Cached memoizes provider results keyed by dataset fingerprint and kind.
// Datasets are immutable, so a fingerprint hit is always current.
type Cached struct {
	origin Provider
	cache  *expirable.LRU[string, *Result]
}

func NewCached(origin Provider, maxEntries int, ttl time.Duration) *Cached {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cached{
		origin: origin,
		cache:  expirable.NewLRU[string, *Result](maxEntries, nil, ttl),
	}
}

func (c *Cached) Name() string { return c.origin.Name() + "+cache" }

func (c *Cached) Analyze(ctx context.Context, ds *dataset.Dataset, kind Kind) (*Result, error) {
	key := ds.Fingerprint() + "|" + string(kind)
	if res, ok := c.cache.Get(key); ok {
		return res, nil
	}
	res, err := c.origin.Analyze(ctx, ds, kind)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, res)
	return res, nil
}
