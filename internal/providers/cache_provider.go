package providers

import (
	"strconv"
	"unsafe"

	"github.com/coocood/freecache"

	"fittrack/internal/structures"
)

const defaultCacheTTL = 600

// CacheProviderInterface stores rendered JSON views. Catalog views live until
// they expire. Progress views are keyed by civil date and store revision, so a
// store change makes them unreachable; Purge releases them early.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Purge()
	Len() int64
}

// ViewKey builds the cache key of a progress view as of date and revision.
func ViewKey(view, date string, revision uint64) string {
	return view + "@" + date + "#" + strconv.FormatUint(revision, 10)
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "View cache disabled")
		return &noopCache{}
	}

	ttl := int(conf.Cache.TTL.Seconds())
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	logger.Infof(TypeApp, "View cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

// keyBytes avoids a copy per lookup; freecache copies keys it stores.
func keyBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set(keyBytes(key), value, c.ttl)
}

func (c *CacheProvider) Purge() {
	c.cache.Clear()
}

func (c *CacheProvider) Len() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Purge()                      {}
func (n *noopCache) Len() int64                  { return 0 }
