package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"kms.GO/config"
)

// Cache is a thread-safe key-value store with TTLs and tag invalidation.
// Byte-slice values are mirrored to Redis when a client is configured, so
// restarts and sibling processes share warm entries; everything else stays
// in-process.
type Cache struct {
	m sync.Map
	// tagIndex maps tag string to a set of keys
	tagIndex sync.Map // map[string]*sync.Map
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{}
}

type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // unix nanoseconds; 0 means no expiration
}

// Set stores a value with an optional TTL in seconds (0 = no expiry) and
// optional tags.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
	if b, ok := value.([]byte); ok {
		remoteSet(key, b, ttl)
	}
}

// Get returns (value, true) for a live entry. Expired entries are evicted
// on read. Misses fall through to Redis for mirrored byte values.
func (c *Cache) Get(key string) (interface{}, bool) {
	if v, ok := c.m.Load(key); ok {
		item := v.(cacheItem)
		if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
			c.m.Delete(key)
		} else {
			return item.Value, true
		}
	}
	if b, ok := remoteGet(key); ok {
		return b, true
	}
	return nil, false
}

func (c *Cache) Delete(key string) {
	c.m.Delete(key)
	remoteDelete(key)
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN and GetN address entries by composite key parts.
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl int64, tags []string) {
	c.Set(makeCompositeKey(keys...), value, ttl, tags)
}

func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}

// TagKey assigns tags to a cache key.
func (c *Cache) TagKey(key string, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		km := val.(*sync.Map)
		km.Store(key, struct{}{})
	}
	remoteTag(key, tags)
}

// DeleteByTag invalidates every entry carrying the tag. Called after each
// write path so stale query results never outlive a mutation.
func (c *Cache) DeleteByTag(tag string) {
	if val, ok := c.tagIndex.Load(tag); ok {
		km := val.(*sync.Map)
		km.Range(func(key, _ interface{}) bool {
			c.m.Delete(key)
			remoteDelete(key.(string))
			km.Delete(key)
			return true
		})
		c.tagIndex.Delete(tag)
	}
	remoteDeleteByTag(tag)
}

// --- Redis mirror ---

const remotePrefix = "kms:cache:"

func remoteSet(key string, value []byte, ttl int64) {
	client := config.RedisClient
	if client == nil {
		return
	}
	client.Set(config.RedisCtx(), remotePrefix+key, value, time.Duration(ttl)*time.Second)
}

func remoteGet(key string) ([]byte, bool) {
	client := config.RedisClient
	if client == nil {
		return nil, false
	}
	b, err := client.Get(config.RedisCtx(), remotePrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func remoteDelete(key string) {
	if client := config.RedisClient; client != nil {
		client.Del(config.RedisCtx(), remotePrefix+key)
	}
}

func remoteTag(key string, tags []string) {
	client := config.RedisClient
	if client == nil {
		return
	}
	ctx := config.RedisCtx()
	for _, tag := range tags {
		client.SAdd(ctx, remotePrefix+"tag:"+tag, key)
	}
}

func remoteDeleteByTag(tag string) {
	client := config.RedisClient
	if client == nil {
		return
	}
	ctx := config.RedisCtx()
	setKey := remotePrefix + "tag:" + tag
	keys, err := client.SMembers(ctx, setKey).Result()
	if err != nil {
		return
	}
	for _, key := range keys {
		client.Del(ctx, remotePrefix+key)
	}
	client.Del(ctx, setKey)
}
