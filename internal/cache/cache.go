package cache

import "time"

// Cache defines the interface for caching enriched records
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds the cache key for a digits-only registry identifier
func Key(cnpj string) string {
	return "discovery:v1:" + cnpj
}
