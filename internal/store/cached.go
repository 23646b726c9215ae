package store

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"

	"github.com/sells-group/investor-profile/internal/model"
)

const defaultCacheSize = 1024

// CachedStore wraps a Store with an LRU cache of each user's latest report.
// Cached reports are shared between callers and must not be modified.
type CachedStore struct {
	Store
	latest *lru.Cache[string, *model.StoredReport]
}

// NewCachedStore wraps inner. size <= 0 uses a default of 1024 users.
func NewCachedStore(inner Store, size int) (*CachedStore, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *model.StoredReport](size)
	if err != nil {
		return nil, eris.Wrap(err, "store: create cache")
	}
	return &CachedStore{Store: inner, latest: cache}, nil
}

// SaveReport writes through and refreshes the user's cached latest report.
func (c *CachedStore) SaveReport(ctx context.Context, r *model.StoredReport) error {
	if err := c.Store.SaveReport(ctx, r); err != nil {
		return err
	}
	if cur, ok := c.latest.Get(r.UserID); !ok || !r.GeneratedAt.Before(cur.GeneratedAt) {
		c.latest.Add(r.UserID, r)
	}
	return nil
}

// LatestReport serves from cache, falling back to the wrapped store.
// Misses are not cached.
func (c *CachedStore) LatestReport(ctx context.Context, userID string) (*model.StoredReport, error) {
	if r, ok := c.latest.Get(userID); ok {
		return r, nil
	}
	r, err := c.Store.LatestReport(ctx, userID)
	if err != nil || r == nil {
		return r, err
	}
	c.latest.Add(userID, r)
	return r, nil
}

// DeleteReportsBefore deletes through and drops the cache.
func (c *CachedStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := c.Store.DeleteReportsBefore(ctx, cutoff)
	if n > 0 || err != nil {
		c.latest.Purge()
	}
	return n, err
}

// Len returns the number of cached users.
func (c *CachedStore) Len() int {
	return c.latest.Len()
}

// Ping checks the wrapped store when it supports it.
func (c *CachedStore) Ping(ctx context.Context) error {
	if p, ok := c.Store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
