package cache

import (
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// SummaryCache memoises dashboard overviews per ledger version and
// reference date. A new ledger version never hits an entry computed for an
// older one, so mutations need no explicit invalidation.
type SummaryCache struct {
	lru    *LRUCache[core.Overview]
	group  singleflight.Group
	logger *applog.Logger
}

func NewSummaryCache(size int, ttl time.Duration, logger *applog.Logger) *SummaryCache {
	if logger == nil {
		logger = applog.Discard()
	}
	return &SummaryCache{
		lru:    NewLRUCache[core.Overview](size, ttl),
		logger: logger.WithComponent(applog.ComponentCache),
	}
}

func summaryKey(version uint64, ref core.Date) string {
	return strconv.FormatUint(version, 10) + ":" + ref.String()
}

// Get returns the cached overview or computes it. Concurrent misses for the
// same key share one computation.
func (c *SummaryCache) Get(version uint64, ref core.Date, compute func() core.Overview) core.Overview {
	key := summaryKey(version, ref)
	if o, ok := c.lru.Get(key); ok {
		return o
	}

	v, _, shared := c.group.Do(key, func() (interface{}, error) {
		if o, ok := c.lru.Get(key); ok {
			return o, nil
		}
		o := compute()
		c.lru.Set(key, o)
		return o, nil
	})
	c.logger.Debug("Summary cache miss", applog.FieldVersion, version, "ref", ref.String(), "shared", shared)
	return v.(core.Overview)
}

func (c *SummaryCache) CleanExpired() int {
	return c.lru.CleanExpired()
}

func (c *SummaryCache) Size() int {
	return c.lru.Size()
}

func (c *SummaryCache) Stats() (hits, misses uint64) {
	return c.lru.Stats()
}
