package identity

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/timereg/sendtime/internal/models"
)

// Cache stores resolved identities between requests. Implementations must
// be safe for concurrent Get/Add; racing misses on the same key are
// acceptable and need no serialization — losing an entry only costs a
// re-resolution, never correctness.
type Cache interface {
	// Get returns the cached identity for an external login, if present.
	Get(externalID string) (models.Identity, bool)
	// Add stores the identity under the external login.
	Add(externalID string, id models.Identity)
}

// cacheSize bounds the number of cached identities; enough for every user
// of an internal tool.
const cacheSize = 1024

// lruCache is the production Cache: a process-local expirable LRU.
type lruCache struct {
	lru *expirable.LRU[string, models.Identity]
}

// NewLRUCache returns a concurrent-safe cache whose entries expire after ttl.
func NewLRUCache(ttl time.Duration) Cache {
	return &lruCache{lru: expirable.NewLRU[string, models.Identity](cacheSize, nil, ttl)}
}

func (c *lruCache) Get(externalID string) (models.Identity, bool) {
	return c.lru.Get(externalID)
}

func (c *lruCache) Add(externalID string, id models.Identity) {
	c.lru.Add(externalID, id)
}
