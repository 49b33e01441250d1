package registration

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"musicreg/pkg/models"
)

const (
	DefaultCacheTTL      = 5 * time.Minute
	defaultCleanupPeriod = 10 * time.Minute
)

// readCache holds single registrations by id. Writes invalidate their entry.
type readCache struct {
	cache *gocache.Cache
}

func newReadCache(ttl time.Duration) *readCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &readCache{cache: gocache.New(ttl, defaultCleanupPeriod)}
}

func cacheKey(id int64) string { return "reg:" + strconv.FormatInt(id, 10) }

func (c *readCache) get(id int64) (models.Registration, bool) {
	v, found := c.cache.Get(cacheKey(id))
	if !found {
		return models.Registration{}, false
	}
	reg, ok := v.(models.Registration)
	return reg, ok
}

func (c *readCache) set(reg models.Registration) {
	c.cache.SetDefault(cacheKey(reg.ID), reg)
}

func (c *readCache) invalidate(id int64) {
	c.cache.Delete(cacheKey(id))
}

func (c *readCache) len() int { return c.cache.ItemCount() }
