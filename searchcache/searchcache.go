// Package searchcache keeps recent quick-search results so repeated searches
// over the same filters skip the upstream API.
package searchcache

import (
	"encoding/json"
	"sync"
	"time"

	"planet-explorer/planet"

	log "github.com/sirupsen/logrus"
)

const (
	// History is how long a cached result set stays valid. New scenes are
	// published continuously, so entries go stale quickly.
	History = 10 * time.Minute
)

type entry struct {
	features []*planet.Feature
	added    time.Time
}

type Cache struct {
	history time.Duration

	mu sync.Mutex
	m  map[string]*entry
}

func New() *Cache {
	return &Cache{
		history: History,
		m:       make(map[string]*entry),
	}
}

// key derives the cache key from the upstream request body.
func key(req interface{}) string {
	j, err := json.Marshal(req)
	if err != nil {
		panic(err)
	}
	return string(j)
}

// Get returns the cached features for the request, if still fresh.
func (c *Cache) Get(req interface{}) ([]*planet.Feature, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key(req)]
	if !ok {
		return nil, false
	}
	if time.Since(e.added) > c.history {
		delete(c.m, key(req))
		return nil, false
	}
	return e.features, true
}

// Put stores the features for the request and drops expired entries.
func (c *Cache) Put(req interface{}, features []*planet.Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.m {
		if time.Since(e.added) > c.history {
			delete(c.m, k)
		}
	}
	c.m[key(req)] = &entry{
		features: features,
		added:    time.Now(),
	}
	log.Debugf("Search cache has %d entries", len(c.m))
}
