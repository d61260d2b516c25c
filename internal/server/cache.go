package server

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// responseCache reuses successful use case results and coalesces concurrent
// requests for the same key into a single execution.
type responseCache struct {
	store *cache.Cache
	group singleflight.Group
}

func newResponseCache(ttl time.Duration) *responseCache {
	rc := &responseCache{}
	if ttl > 0 {
		rc.store = cache.New(ttl, ttl*2)
	}
	return rc
}

// do returns the cached value for key or runs fn. The value is returned even
// when fn fails, so callers can report partial results; only successes are stored.
func (rc *responseCache) do(key string, fn func() (any, error)) (v any, hit bool, err error) {
	if rc.store != nil {
		if cached, ok := rc.store.Get(key); ok {
			return cached, true, nil
		}
	}
	v, err, _ = rc.group.Do(key, func() (any, error) {
		v, err := fn()
		if err == nil && rc.store != nil {
			rc.store.Set(key, v, cache.DefaultExpiration)
		}
		return v, err
	})
	return v, false, err
}
