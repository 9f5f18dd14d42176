package cache

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	DeletePrefix(prefix string) int
	Flush()
}

// DefaultExpiration tells Set to use the cache's default TTL.
const DefaultExpiration = cache.DefaultExpiration

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a new Cache instance with default expiration and cleanup interval
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{
		internal: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

// DeletePrefix removes every key starting with prefix and reports how many
// were removed.
func (c *goCache) DeletePrefix(prefix string) int {
	removed := 0
	for key := range c.internal.Items() {
		if strings.HasPrefix(key, prefix) {
			c.internal.Delete(key)
			removed++
		}
	}
	return removed
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

// GetAs fetches key and asserts it to T. A missing key or a value of another
// type both report false.
func GetAs[T any](c Cache, key string) (T, bool) {
	val, found := c.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	typedVal, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typedVal, true
}
