package cache

import "time"

// Cache stores decoded search responses for the duration of a run
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}
