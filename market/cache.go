package market

import (
	"sync"
	"time"
)

// 单次运行内的响应缓存，避免同一个批量接口被重复请求
const defaultCacheTTL = 120 * time.Second

type cacheEntry struct {
	data    []byte
	savedAt time.Time
}

type ttlCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]cacheEntry
}

func newTTLCache(ttl time.Duration) *ttlCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ttlCache{ttl: ttl, items: make(map[string]cacheEntry)}
}

func (c *ttlCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.savedAt) > c.ttl {
		delete(c.items, key)
		return nil, false
	}
	return entry.data, true
}

func (c *ttlCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{data: data, savedAt: time.Now()}
}
