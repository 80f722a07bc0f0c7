package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for knowledge-base lookup memoization
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a lookup kind and term. Lookups are pure
// functions of the term, so the key carries no other state.
func Key(kind, term string) string {
	hash := sha256.Sum256([]byte(kind + "\x00" + term))
	return "veritas:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
