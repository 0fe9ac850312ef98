package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache implementation
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value []byte, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) ([]byte, bool) {
	val, found := cs.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}

// ItemCount returns the number of cached entries, including expired ones not yet cleaned up.
func (cs *CacheService) ItemCount() int {
	return cs.cache.ItemCount()
}
