package common

import "time"

// CacheInterface defines the contract for cache implementations.
// Values are opaque bytes so that in-memory and Redis caches round-trip the same documents.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value []byte, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) ([]byte, bool)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
