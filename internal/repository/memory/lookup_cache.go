package memory

import (
	"fmt"
	"strings"
	"time"

	"mdt-records-be/pkg/reactive"

	"github.com/patrickmn/go-cache"
)

// LookupCache holds recent lookup results per kind. Keystroke lookups repeat
// a lot (backspace, retype), so a short TTL saves most database round trips.
type LookupCache struct {
	cache *cache.Cache
}

func NewLookupCache(ttl time.Duration) *LookupCache {
	return &LookupCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func cacheKey(kind, query string, limit int) string {
	return fmt.Sprintf("%s|%d|%s", kind, limit, strings.ToLower(query))
}

func (r *LookupCache) Save(kind, query string, limit int, candidates []reactive.Candidate) {
	r.cache.Set(cacheKey(kind, query, limit), candidates, cache.DefaultExpiration)
}

func (r *LookupCache) Get(kind, query string, limit int) ([]reactive.Candidate, bool) {
	if x, found := r.cache.Get(cacheKey(kind, query, limit)); found {
		return x.([]reactive.Candidate), true
	}
	return nil, false
}

// Flush drops every cached result of one kind.
func (r *LookupCache) Flush(kind string) int {
	prefix := kind + "|"
	n := 0
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
			n++
		}
	}
	return n
}

func (r *LookupCache) Len() int {
	return r.cache.ItemCount()
}
