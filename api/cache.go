package api

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
)

// responseCache caches per-user GET responses. Keys embed a per-user
// generation counter, so invalidating a user is a counter bump and the
// stale entries age out on their TTL.
type responseCache struct {
	store *persist.MemoryStore

	mu   sync.Mutex
	gens map[string]uint64
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		store: persist.NewMemoryStore(ttl),
		gens:  make(map[string]uint64),
	}
}

func (rc *responseCache) generation(userID string) uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.gens[userID]
}

// Invalidate makes every cached response of the user stale. Called
// after each mutation, the moral equivalent of a path revalidation.
func (rc *responseCache) Invalidate(userID string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gens[userID]++
}

// cacheFor caches responses of the wrapped handler for sec seconds,
// keyed by user, generation and request URI. Must run after the session
// middleware.
func (rc *responseCache) cacheFor(sec int) gin.HandlerFunc {
	ttl := time.Second * time.Duration(sec)

	return cache.Cache(rc.store, ttl, cache.WithCacheStrategyByRequest(
		func(c *gin.Context) (bool, cache.Strategy) {
			userID := c.GetString("userID")

			return true, cache.Strategy{
				CacheKey: fmt.Sprintf("%s:%d:%s", userID, rc.generation(userID), c.Request.RequestURI),
			}
		},
	))
}
